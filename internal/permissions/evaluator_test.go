package permissions

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
)

type stubMemberships struct {
	owners map[uuid.UUID]uuid.UUID
	roles  map[string]bool
}

func roleKey(companyID, userID uuid.UUID, role enums.MemberRole) string {
	return companyID.String() + "|" + userID.String() + "|" + role.String()
}

func (s *stubMemberships) IsOwner(_ context.Context, companyID, userID uuid.UUID) (bool, error) {
	return s.owners[companyID] == userID, nil
}

func (s *stubMemberships) UserHasRole(_ context.Context, companyID, userID uuid.UUID, role enums.MemberRole) (bool, error) {
	return s.roles[roleKey(companyID, userID, role)], nil
}

func TestCanManageSelf(t *testing.T) {
	evaluator := NewEvaluator(&stubMemberships{})
	self := &models.User{ID: uuid.New()}
	other := uuid.New()
	super := &models.User{ID: uuid.New(), IsSuperuser: true}

	if err := evaluator.CanManageSelf(self, self.ID); err != nil {
		t.Errorf("expected self-management to be allowed, got %v", err)
	}
	if err := evaluator.CanManageSelf(self, other); !errs.HasCode(err, errs.CodeForbidden) {
		t.Errorf("expected FORBIDDEN for other account, got %v", err)
	}
	if err := evaluator.CanManageSelf(super, other); err != nil {
		t.Errorf("expected superuser override, got %v", err)
	}
	if err := evaluator.CanManageSelf(nil, other); !errs.HasCode(err, errs.CodeUnauthorized) {
		t.Errorf("expected UNAUTHORIZED for missing actor, got %v", err)
	}
}

func TestCompanyPermissionMatrix(t *testing.T) {
	companyID := uuid.New()
	owner := &models.User{ID: uuid.New()}
	admin := &models.User{ID: uuid.New()}
	member := &models.User{ID: uuid.New()}
	outsider := &models.User{ID: uuid.New()}
	super := &models.User{ID: uuid.New(), IsSuperuser: true}

	memberships := &stubMemberships{
		owners: map[uuid.UUID]uuid.UUID{companyID: owner.ID},
		roles: map[string]bool{
			roleKey(companyID, admin.ID, enums.MemberRoleAdmin):   true,
			roleKey(companyID, admin.ID, enums.MemberRoleMember):  true,
			roleKey(companyID, member.ID, enums.MemberRoleMember): true,
		},
	}
	evaluator := NewEvaluator(memberships)

	cases := []struct {
		name         string
		actor        *models.User
		manageOK     bool
		authorQuizOK bool
	}{
		{"owner", owner, true, true},
		{"admin", admin, false, true},
		{"member", member, false, false},
		{"outsider", outsider, false, false},
		{"superuser", super, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := evaluator.CanManageCompany(context.Background(), tc.actor, companyID)
			if tc.manageOK && err != nil {
				t.Errorf("expected manage to be allowed, got %v", err)
			}
			if !tc.manageOK && !errs.HasCode(err, errs.CodeForbidden) {
				t.Errorf("expected FORBIDDEN for manage, got %v", err)
			}

			err = evaluator.CanAuthorQuiz(context.Background(), tc.actor, companyID)
			if tc.authorQuizOK && err != nil {
				t.Errorf("expected quiz authoring to be allowed, got %v", err)
			}
			if !tc.authorQuizOK && !errs.HasCode(err, errs.CodeForbidden) {
				t.Errorf("expected FORBIDDEN for quiz authoring, got %v", err)
			}
		})
	}
}

func TestRequireAuthenticated(t *testing.T) {
	evaluator := NewEvaluator(&stubMemberships{})
	if err := evaluator.RequireAuthenticated(&models.User{ID: uuid.New()}); err != nil {
		t.Errorf("expected signed-in actor to pass, got %v", err)
	}
	if err := evaluator.RequireAuthenticated(nil); !errs.HasCode(err, errs.CodeUnauthorized) {
		t.Errorf("expected UNAUTHORIZED, got %v", err)
	}
}
