// Package permissions centralizes the authorization rules. Services ask the
// evaluator before mutating anything; a denial is a FORBIDDEN error the API
// layer maps to 403.
package permissions

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
)

// MembershipReader is the membership lookup surface the evaluator needs.
// The companies repo satisfies it.
type MembershipReader interface {
	IsOwner(ctx context.Context, companyID, userID uuid.UUID) (bool, error)
	UserHasRole(ctx context.Context, companyID, userID uuid.UUID, role enums.MemberRole) (bool, error)
}

// Evaluator answers authorization questions. Superusers pass every check.
type Evaluator struct {
	memberships MembershipReader
}

func NewEvaluator(memberships MembershipReader) *Evaluator {
	return &Evaluator{memberships: memberships}
}

// CanManageSelf allows a user to act on their own account, or a superuser
// to act on anyone's.
func (e *Evaluator) CanManageSelf(actor *models.User, targetID uuid.UUID) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	if actor.IsSuperuser || actor.ID == targetID {
		return nil
	}
	return errs.New(errs.CodeForbidden, "not allowed to manage this account")
}

// CanManageCompany allows the company owner (or a superuser) to administer
// the company: settings, members, admins, invites, and join requests.
func (e *Evaluator) CanManageCompany(ctx context.Context, actor *models.User, companyID uuid.UUID) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	if actor.IsSuperuser {
		return nil
	}
	owner, err := e.memberships.IsOwner(ctx, companyID, actor.ID)
	if err != nil {
		return err
	}
	if owner {
		return nil
	}
	return errs.New(errs.CodeForbidden, "only the company owner may do this")
}

// CanAuthorQuiz allows the owner or an admin of the company (or a
// superuser) to create and edit quiz content.
func (e *Evaluator) CanAuthorQuiz(ctx context.Context, actor *models.User, companyID uuid.UUID) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	if actor.IsSuperuser {
		return nil
	}
	owner, err := e.memberships.IsOwner(ctx, companyID, actor.ID)
	if err != nil {
		return err
	}
	if owner {
		return nil
	}
	admin, err := e.memberships.UserHasRole(ctx, companyID, actor.ID, enums.MemberRoleAdmin)
	if err != nil {
		return err
	}
	if admin {
		return nil
	}
	return errs.New(errs.CodeForbidden, "only the owner or an admin may author quizzes")
}

// RequireAuthenticated is the baseline check for operations any signed-in
// user may perform.
func (e *Evaluator) RequireAuthenticated(actor *models.User) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	return nil
}
