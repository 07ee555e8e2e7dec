package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizhubhq/quizhub-backend/pkg/db"
	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

// Repo persists user accounts.
type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{client: client}
}

// Create inserts the user, mapping a duplicate email to a conflict.
func (r *Repo) Create(ctx context.Context, user *models.User) error {
	if err := r.client.DB().WithContext(ctx).Create(user).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return errs.New(errs.CodeConflict, "a user with this email already exists")
		}
		return errs.Wrap(errs.CodeInternal, err, "creating user")
	}
	return nil
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.client.DB().WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errs.New(errs.CodeNotFound, "user not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, err, "loading user")
	}
	return &user, nil
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.client.DB().WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errs.New(errs.CodeNotFound, "user not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, err, "loading user by email")
	}
	return &user, nil
}

// List returns users in insertion order, paginated.
func (r *Repo) List(ctx context.Context, page pagination.Params) ([]models.User, error) {
	var users []models.User
	err := r.client.DB().WithContext(ctx).
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&users).Error
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing users")
	}
	return users, nil
}

func (r *Repo) Update(ctx context.Context, user *models.User) error {
	if err := r.client.DB().WithContext(ctx).Save(user).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return errs.New(errs.CodeConflict, "a user with this email already exists")
		}
		return errs.Wrap(errs.CodeInternal, err, "updating user")
	}
	return nil
}

// Delete removes the user together with their actions and membership rows.
// Deletion is refused while the user still owns companies; the caller must
// delete or transfer those first.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&models.Company{}).Where("owner_id = ?", id).Count(&owned).Error; err != nil {
			return errs.Wrap(errs.CodeInternal, err, "counting owned companies")
		}
		if owned > 0 {
			return errs.New(errs.CodeConflict, "user still owns companies")
		}

		if err := tx.Where("initiator_id = ? OR counterparty_id = ?", id, id).
			Delete(&models.Action{}).Error; err != nil {
			return errs.Wrap(errs.CodeInternal, err, "deleting user actions")
		}
		if err := tx.Where("user_id = ?", id).
			Delete(&models.CompanyMembership{}).Error; err != nil {
			return errs.Wrap(errs.CodeInternal, err, "deleting user memberships")
		}

		result := tx.Delete(&models.User{}, "id = ?", id)
		if result.Error != nil {
			return errs.Wrap(errs.CodeInternal, result.Error, "deleting user")
		}
		if result.RowsAffected == 0 {
			return errs.New(errs.CodeNotFound, "user not found")
		}
		return nil
	})
}
