package actions

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

type actionStore interface {
	Create(ctx context.Context, action *models.Action) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Action, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Decide(ctx context.Context, id uuid.UUID, status enums.ActionStatus, grant *MembershipGrant) error
	ListInvitesForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Action, error)
	ListJoinRequestsForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Action, error)
	ListInvitesForCompany(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]models.Action, error)
	ListJoinRequestsForCompany(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]models.Action, error)
	ListInvitedUsers(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]models.User, error)
}

type companyReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type userReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type accessPolicy interface {
	RequireAuthenticated(actor *models.User) error
	CanManageCompany(ctx context.Context, actor *models.User, companyID uuid.UUID) error
}

// InvitedUserResponse is the trimmed user shape for pending-invite rosters.
type InvitedUserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Service implements the invite and join-request workflows. Both run
// through the same action record, and the company side settles both.
type Service struct {
	actions   actionStore
	companies companyReader
	users     userReader
	policy    accessPolicy
	log       *logger.Logger
}

func NewService(actions actionStore, companies companyReader, users userReader, policy accessPolicy, log *logger.Logger) *Service {
	return &Service{actions: actions, companies: companies, users: users, policy: policy, log: log}
}

// CreateInvite sends an invite from the company to the user. No duplicate
// suppression and no membership screening: repeat invites and invites to
// existing members are recorded as-is, and acceptance stays idempotent on
// the membership side.
func (s *Service) CreateInvite(ctx context.Context, actor *models.User, companyID, recipientID uuid.UUID) (ActionResponse, error) {
	if err := s.policy.CanManageCompany(ctx, actor, companyID); err != nil {
		return ActionResponse{}, err
	}
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return ActionResponse{}, err
	}
	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		return ActionResponse{}, err
	}

	action := models.NewInvite(companyID, actor.ID, recipientID)
	if err := s.actions.Create(ctx, action); err != nil {
		return ActionResponse{}, err
	}
	action.Company = company
	action.Initiator = actor
	if s.log != nil {
		s.log.Info(s.log.WithCompanyID(ctx, companyID.String()), "invite sent")
	}
	return ToActionResponse(action), nil
}

// CreateJoinRequest files the actor's request to join the company. The
// record is a self-action: the actor sits on both sides of it.
func (s *Service) CreateJoinRequest(ctx context.Context, actor *models.User, companyID uuid.UUID) (ActionResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return ActionResponse{}, err
	}
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return ActionResponse{}, err
	}

	action := models.NewJoinRequest(companyID, actor.ID)
	if err := s.actions.Create(ctx, action); err != nil {
		return ActionResponse{}, err
	}
	action.Company = company
	action.Initiator = actor
	return ToActionResponse(action), nil
}

// Cancel removes an action of either kind. Only the company side (owner or
// superuser) may cancel. Settled actions can be removed too.
func (s *Service) Cancel(ctx context.Context, actor *models.User, actionID uuid.UUID) error {
	action, err := s.actions.FindByID(ctx, actionID)
	if err != nil {
		return err
	}
	if err := s.policy.CanManageCompany(ctx, actor, action.CompanyID); err != nil {
		return err
	}
	return s.actions.Delete(ctx, actionID)
}

// Respond settles a pending action of either kind. Only the company side
// (owner or superuser) may decide. Accepting grants the counterparty
// membership atomically with the status change.
func (s *Service) Respond(ctx context.Context, actor *models.User, actionID uuid.UUID, accept bool) (ActionResponse, error) {
	action, err := s.actions.FindByID(ctx, actionID)
	if err != nil {
		return ActionResponse{}, err
	}
	if err := s.policy.CanManageCompany(ctx, actor, action.CompanyID); err != nil {
		return ActionResponse{}, err
	}

	status := enums.ActionStatusRejected
	var grant *MembershipGrant
	if accept {
		status = enums.ActionStatusAccepted
		grant = &MembershipGrant{CompanyID: action.CompanyID, UserID: action.CounterpartyID}
	}

	if err := s.actions.Decide(ctx, actionID, status, grant); err != nil {
		return ActionResponse{}, err
	}

	action.Status = status
	if s.log != nil {
		s.log.Info(s.log.WithCompanyID(ctx, action.CompanyID.String()), "action settled")
	}
	return ToActionResponse(action), nil
}

// MyInvites lists the invites addressed to the actor.
func (s *Service) MyInvites(ctx context.Context, actor *models.User, page pagination.Params) ([]ActionResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	list, err := s.actions.ListInvitesForUser(ctx, actor.ID, page)
	if err != nil {
		return nil, err
	}
	return ToActionResponses(list), nil
}

// MyJoinRequests lists the join requests the actor has sent.
func (s *Service) MyJoinRequests(ctx context.Context, actor *models.User, page pagination.Params) ([]ActionResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	list, err := s.actions.ListJoinRequestsForUser(ctx, actor.ID, page)
	if err != nil {
		return nil, err
	}
	return ToActionResponses(list), nil
}

// CompanyInvites lists the invites a company has sent.
func (s *Service) CompanyInvites(ctx context.Context, actor *models.User, companyID uuid.UUID, page pagination.Params) ([]ActionResponse, error) {
	if err := s.policy.CanManageCompany(ctx, actor, companyID); err != nil {
		return nil, err
	}
	list, err := s.actions.ListInvitesForCompany(ctx, companyID, page)
	if err != nil {
		return nil, err
	}
	return ToActionResponses(list), nil
}

// CompanyJoinRequests lists the join requests addressed to a company.
func (s *Service) CompanyJoinRequests(ctx context.Context, actor *models.User, companyID uuid.UUID, page pagination.Params) ([]ActionResponse, error) {
	if err := s.policy.CanManageCompany(ctx, actor, companyID); err != nil {
		return nil, err
	}
	list, err := s.actions.ListJoinRequestsForCompany(ctx, companyID, page)
	if err != nil {
		return nil, err
	}
	return ToActionResponses(list), nil
}

// InvitedUsers lists users holding a pending invite from the company.
func (s *Service) InvitedUsers(ctx context.Context, actor *models.User, companyID uuid.UUID, page pagination.Params) ([]InvitedUserResponse, error) {
	if err := s.policy.CanManageCompany(ctx, actor, companyID); err != nil {
		return nil, err
	}
	users, err := s.actions.ListInvitedUsers(ctx, companyID, page)
	if err != nil {
		return nil, err
	}
	out := make([]InvitedUserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, InvitedUserResponse{ID: user.ID, Username: user.Username, Email: user.Email})
	}
	return out, nil
}
