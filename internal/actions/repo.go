package actions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizhubhq/quizhub-backend/internal/companies"
	"github.com/quizhubhq/quizhub-backend/pkg/db"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// MembershipGrant is the side effect of accepting an action: the
// counterparty of an invite, or the initiator of a join request, becomes a
// member of the company.
type MembershipGrant struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
}

// Repo persists workflow actions.
type Repo struct {
	client      *db.Client
	memberships *companies.Repo
}

func NewRepo(client *db.Client, memberships *companies.Repo) *Repo {
	return &Repo{client: client, memberships: memberships}
}

func (r *Repo) Create(ctx context.Context, action *models.Action) error {
	if err := r.client.DB().WithContext(ctx).Create(action).Error; err != nil {
		return errs.Wrap(errs.CodeInternal, err, "creating action")
	}
	return nil
}

// FindByID loads the action with the company and sender rows the response
// shape flattens into names.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.Action, error) {
	var action models.Action
	err := r.client.DB().WithContext(ctx).
		Preload("Company").
		Preload("Initiator").
		First(&action, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errs.New(errs.CodeNotFound, "action not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, err, "loading action")
	}
	return &action, nil
}

// Delete removes the action regardless of its status.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.client.DB().WithContext(ctx).Delete(&models.Action{}, "id = ?", id)
	if result.Error != nil {
		return errs.Wrap(errs.CodeInternal, result.Error, "deleting action")
	}
	if result.RowsAffected == 0 {
		return errs.New(errs.CodeNotFound, "action not found")
	}
	return nil
}

// Decide settles a pending action and, on acceptance, grants membership in
// the same transaction. The status update is a compare-and-swap against the
// sent state: whichever of two concurrent decisions commits first wins and
// the other observes a state conflict.
func (r *Repo) Decide(ctx context.Context, id uuid.UUID, status enums.ActionStatus, grant *MembershipGrant) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Action{}).
			Where("id = ? AND status = ?", id, enums.ActionStatusSent).
			Update("status", status)
		if result.Error != nil {
			return errs.Wrap(errs.CodeInternal, result.Error, "updating action status")
		}
		if result.RowsAffected == 0 {
			return errs.New(errs.CodeStateConflict, "action has already been settled")
		}
		if grant != nil {
			return r.memberships.AddMemberTx(tx, grant.CompanyID, grant.UserID, enums.MemberRoleMember)
		}
		return nil
	})
}

func (r *Repo) listPage(ctx context.Context, page pagination.Params, conds ...any) ([]models.Action, error) {
	var list []models.Action
	query := r.client.DB().WithContext(ctx).
		Preload("Company").
		Preload("Initiator").
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit())
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing actions")
	}
	return list, nil
}

// ListInvitesForUser returns the invites addressed to the user.
func (r *Repo) ListInvitesForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Action, error) {
	return r.listPage(ctx, page, "kind = ? AND counterparty_id = ?", enums.ActionKindInvite, userID)
}

// ListJoinRequestsForUser returns the join requests the user has sent.
func (r *Repo) ListJoinRequestsForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Action, error) {
	return r.listPage(ctx, page, "kind = ? AND initiator_id = ?", enums.ActionKindJoinRequest, userID)
}

// ListInvitesForCompany returns the invites a company has sent.
func (r *Repo) ListInvitesForCompany(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]models.Action, error) {
	return r.listPage(ctx, page, "kind = ? AND company_id = ?", enums.ActionKindInvite, companyID)
}

// ListJoinRequestsForCompany returns the join requests addressed to a company.
func (r *Repo) ListJoinRequestsForCompany(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]models.Action, error) {
	return r.listPage(ctx, page, "kind = ? AND company_id = ?", enums.ActionKindJoinRequest, companyID)
}

// ListInvitedUsers returns the users holding a pending invite from the
// company, in invite order.
func (r *Repo) ListInvitedUsers(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]models.User, error) {
	var users []models.User
	err := r.client.DB().WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN actions ON actions.counterparty_id = users.id").
		Where("actions.company_id = ? AND actions.kind = ? AND actions.status = ?",
			companyID, enums.ActionKindInvite, enums.ActionStatusSent).
		Order("actions.created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&users).Error
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing invited users")
	}
	return users, nil
}
