package companies

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quizhubhq/quizhub-backend/pkg/db"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// Repo persists companies and their membership edges.
type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Create(ctx context.Context, company *models.Company) error {
	if err := r.client.DB().WithContext(ctx).Create(company).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_companies_name") {
			return errs.New(errs.CodeConflict, "a company with this name already exists")
		}
		return errs.Wrap(errs.CodeInternal, err, "creating company")
	}
	return nil
}

// FindByID loads the company regardless of visibility. Hidden companies are
// excluded from listings but remain reachable by id.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.client.DB().WithContext(ctx).First(&company, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errs.New(errs.CodeNotFound, "company not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, err, "loading company")
	}
	return &company, nil
}

// ListVisible returns visible companies in insertion order, paginated.
func (r *Repo) ListVisible(ctx context.Context, page pagination.Params) ([]models.Company, error) {
	var companies []models.Company
	err := r.client.DB().WithContext(ctx).
		Where("visible = ?", true).
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&companies).Error
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing companies")
	}
	return companies, nil
}

func (r *Repo) Update(ctx context.Context, company *models.Company) error {
	if err := r.client.DB().WithContext(ctx).Save(company).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_companies_name") {
			return errs.New(errs.CodeConflict, "a company with this name already exists")
		}
		return errs.Wrap(errs.CodeInternal, err, "updating company")
	}
	return nil
}

// Delete removes the company and its dependents in one transaction. The
// explicit child deletes keep the sqlite path correct where cascade
// constraints are not enforced by default.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var quizIDs []uuid.UUID
		if err := tx.Model(&models.Quiz{}).Where("company_id = ?", id).
			Pluck("id", &quizIDs).Error; err != nil {
			return errs.Wrap(errs.CodeInternal, err, "listing company quizzes")
		}
		if len(quizIDs) > 0 {
			var questionIDs []uuid.UUID
			if err := tx.Model(&models.Question{}).Where("quiz_id IN ?", quizIDs).
				Pluck("id", &questionIDs).Error; err != nil {
				return errs.Wrap(errs.CodeInternal, err, "listing quiz questions")
			}
			if len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).
					Delete(&models.Answer{}).Error; err != nil {
					return errs.Wrap(errs.CodeInternal, err, "deleting answers")
				}
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).
				Delete(&models.Question{}).Error; err != nil {
				return errs.Wrap(errs.CodeInternal, err, "deleting questions")
			}
			if err := tx.Where("company_id = ?", id).
				Delete(&models.Quiz{}).Error; err != nil {
				return errs.Wrap(errs.CodeInternal, err, "deleting quizzes")
			}
		}

		if err := tx.Where("company_id = ?", id).Delete(&models.Action{}).Error; err != nil {
			return errs.Wrap(errs.CodeInternal, err, "deleting company actions")
		}
		if err := tx.Where("company_id = ?", id).Delete(&models.CompanyMembership{}).Error; err != nil {
			return errs.Wrap(errs.CodeInternal, err, "deleting company memberships")
		}

		result := tx.Delete(&models.Company{}, "id = ?", id)
		if result.Error != nil {
			return errs.Wrap(errs.CodeInternal, result.Error, "deleting company")
		}
		if result.RowsAffected == 0 {
			return errs.New(errs.CodeNotFound, "company not found")
		}
		return nil
	})
}

// AddMember grants the role. The ON CONFLICT clause makes repeated grants a
// no-op, which is what keeps accepted-invite replays harmless.
func (r *Repo) AddMember(ctx context.Context, companyID, userID uuid.UUID, role enums.MemberRole) error {
	return r.AddMemberTx(r.client.DB().WithContext(ctx), companyID, userID, role)
}

// AddMemberTx is AddMember running inside an existing transaction.
func (r *Repo) AddMemberTx(tx *gorm.DB, companyID, userID uuid.UUID, role enums.MemberRole) error {
	membership := &models.CompanyMembership{
		CompanyID: companyID,
		UserID:    userID,
		Role:      role,
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(membership).Error
	if err != nil {
		// sqlite reports the conflict instead of swallowing it.
		if db.IsUniqueViolation(err, "idx_membership_edge") {
			return nil
		}
		return errs.Wrap(errs.CodeInternal, err, "adding member")
	}
	return nil
}

// RemoveRole drops a single role edge. Removing an absent role is a no-op.
func (r *Repo) RemoveRole(ctx context.Context, companyID, userID uuid.UUID, role enums.MemberRole) error {
	err := r.client.DB().WithContext(ctx).
		Where("company_id = ? AND user_id = ? AND role = ?", companyID, userID, role).
		Delete(&models.CompanyMembership{}).Error
	if err != nil {
		return errs.Wrap(errs.CodeInternal, err, "removing role")
	}
	return nil
}

// RemoveAllRoles drops every role the user holds in the company.
func (r *Repo) RemoveAllRoles(ctx context.Context, companyID, userID uuid.UUID) error {
	err := r.client.DB().WithContext(ctx).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Delete(&models.CompanyMembership{}).Error
	if err != nil {
		return errs.Wrap(errs.CodeInternal, err, "removing membership")
	}
	return nil
}

// ListByRole returns the users holding the role, in grant order.
func (r *Repo) ListByRole(ctx context.Context, companyID uuid.UUID, role enums.MemberRole, page pagination.Params) ([]models.User, error) {
	var users []models.User
	err := r.client.DB().WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN company_memberships ON company_memberships.user_id = users.id").
		Where("company_memberships.company_id = ? AND company_memberships.role = ?", companyID, role).
		Order("company_memberships.created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&users).Error
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing members")
	}
	return users, nil
}

// IsOwner reports whether the user owns the company.
func (r *Repo) IsOwner(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ? AND owner_id = ?", companyID, userID).
		Count(&count).Error
	if err != nil {
		return false, errs.Wrap(errs.CodeInternal, err, "checking ownership")
	}
	return count > 0, nil
}

// UserHasRole reports whether the membership edge exists.
func (r *Repo) UserHasRole(ctx context.Context, companyID, userID uuid.UUID, role enums.MemberRole) (bool, error) {
	var count int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.CompanyMembership{}).
		Where("company_id = ? AND user_id = ? AND role = ?", companyID, userID, role).
		Count(&count).Error
	if err != nil {
		return false, errs.Wrap(errs.CodeInternal, err, "checking role")
	}
	return count > 0, nil
}
