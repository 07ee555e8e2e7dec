package companies

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

type companyStore interface {
	Create(ctx context.Context, company *models.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListVisible(ctx context.Context, page pagination.Params) ([]models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, companyID, userID uuid.UUID, role enums.MemberRole) error
	RemoveRole(ctx context.Context, companyID, userID uuid.UUID, role enums.MemberRole) error
	RemoveAllRoles(ctx context.Context, companyID, userID uuid.UUID) error
	ListByRole(ctx context.Context, companyID uuid.UUID, role enums.MemberRole, page pagination.Params) ([]models.User, error)
	UserHasRole(ctx context.Context, companyID, userID uuid.UUID, role enums.MemberRole) (bool, error)
}

type accessPolicy interface {
	RequireAuthenticated(actor *models.User) error
	CanManageCompany(ctx context.Context, actor *models.User, companyID uuid.UUID) error
}

// Service implements tenant management: company lifecycle, visibility, and
// the member/admin rosters.
type Service struct {
	companies companyStore
	policy    accessPolicy
	log       *logger.Logger
}

func NewService(companies companyStore, policy accessPolicy, log *logger.Logger) *Service {
	return &Service{companies: companies, policy: policy, log: log}
}

// Create registers a company owned by the actor.
func (s *Service) Create(ctx context.Context, actor *models.User, req CreateCompanyRequest) (CompanyResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return CompanyResponse{}, err
	}

	company := &models.Company{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     actor.ID,
		Visible:     true,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return CompanyResponse{}, err
	}
	if s.log != nil {
		s.log.Info(s.log.WithCompanyID(ctx, company.ID.String()), "company created")
	}
	return ToCompanyResponse(company), nil
}

// Get returns the company by id. Hidden companies stay reachable here even
// though listings exclude them.
func (s *Service) Get(ctx context.Context, actor *models.User, id uuid.UUID) (CompanyResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return CompanyResponse{}, err
	}
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	return ToCompanyResponse(company), nil
}

// List returns visible companies, paginated.
func (s *Service) List(ctx context.Context, actor *models.User, page pagination.Params) ([]CompanyResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	list, err := s.companies.ListVisible(ctx, page)
	if err != nil {
		return nil, err
	}
	return ToCompanyResponses(list), nil
}

func (s *Service) Update(ctx context.Context, actor *models.User, id uuid.UUID, req UpdateCompanyRequest) (CompanyResponse, error) {
	if err := s.policy.CanManageCompany(ctx, actor, id); err != nil {
		return CompanyResponse{}, err
	}

	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if err := s.companies.Update(ctx, company); err != nil {
		return CompanyResponse{}, err
	}
	return ToCompanyResponse(company), nil
}

// SetVisibility toggles whether the company shows up in listings.
func (s *Service) SetVisibility(ctx context.Context, actor *models.User, id uuid.UUID, visible bool) (CompanyResponse, error) {
	if err := s.policy.CanManageCompany(ctx, actor, id); err != nil {
		return CompanyResponse{}, err
	}

	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	company.Visible = visible
	if err := s.companies.Update(ctx, company); err != nil {
		return CompanyResponse{}, err
	}
	return ToCompanyResponse(company), nil
}

func (s *Service) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	if err := s.policy.CanManageCompany(ctx, actor, id); err != nil {
		return err
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	if s.log != nil {
		s.log.Info(s.log.WithCompanyID(ctx, id.String()), "company deleted")
	}
	return nil
}

// ListMembers returns the member roster.
func (s *Service) ListMembers(ctx context.Context, actor *models.User, id uuid.UUID, page pagination.Params) ([]MemberResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if _, err := s.companies.FindByID(ctx, id); err != nil {
		return nil, err
	}
	users, err := s.companies.ListByRole(ctx, id, enums.MemberRoleMember, page)
	if err != nil {
		return nil, err
	}
	return ToMemberResponses(users), nil
}

// ListAdmins returns the admin roster.
func (s *Service) ListAdmins(ctx context.Context, actor *models.User, id uuid.UUID, page pagination.Params) ([]MemberResponse, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if _, err := s.companies.FindByID(ctx, id); err != nil {
		return nil, err
	}
	users, err := s.companies.ListByRole(ctx, id, enums.MemberRoleAdmin, page)
	if err != nil {
		return nil, err
	}
	return ToMemberResponses(users), nil
}

// RemoveMember drops every role the user holds in the company. Removing a
// user who holds none is a silent no-op.
func (s *Service) RemoveMember(ctx context.Context, actor *models.User, companyID, userID uuid.UUID) error {
	if err := s.policy.CanManageCompany(ctx, actor, companyID); err != nil {
		return err
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return err
	}
	return s.companies.RemoveAllRoles(ctx, companyID, userID)
}

// AssignAdmin grants the admin role to an existing member.
func (s *Service) AssignAdmin(ctx context.Context, actor *models.User, companyID, userID uuid.UUID) error {
	if err := s.policy.CanManageCompany(ctx, actor, companyID); err != nil {
		return err
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return err
	}

	isMember, err := s.companies.UserHasRole(ctx, companyID, userID, enums.MemberRoleMember)
	if err != nil {
		return err
	}
	if !isMember {
		return errs.New(errs.CodeValidation, "only members can be appointed admin")
	}
	return s.companies.AddMember(ctx, companyID, userID, enums.MemberRoleAdmin)
}

// RevokeAdmin drops the admin role. Revoking from a non-admin is a silent
// no-op; the member role is untouched.
func (s *Service) RevokeAdmin(ctx context.Context, actor *models.User, companyID, userID uuid.UUID) error {
	if err := s.policy.CanManageCompany(ctx, actor, companyID); err != nil {
		return err
	}
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return err
	}
	return s.companies.RemoveRole(ctx, companyID, userID, enums.MemberRoleAdmin)
}

// Leave removes the actor's own roles in the company. The owner cannot
// leave; they must delete the company or transfer it first.
func (s *Service) Leave(ctx context.Context, actor *models.User, companyID uuid.UUID) error {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return err
	}
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company.OwnerID == actor.ID {
		return errs.New(errs.CodeConflict, "the owner cannot leave their company")
	}
	return s.companies.RemoveAllRoles(ctx, companyID, actor.ID)
}
