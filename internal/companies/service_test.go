package companies

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
	errs "github.com/quizhubhq/quizhub-backend/pkg/errors"
	"github.com/quizhubhq/quizhub-backend/pkg/pagination"
)

type membershipEdge struct {
	companyID uuid.UUID
	userID    uuid.UUID
	role      enums.MemberRole
}

type stubCompanyStore struct {
	byID    map[uuid.UUID]*models.Company
	edges   []membershipEdge
	deleted []uuid.UUID
}

func newStubCompanyStore(companies ...*models.Company) *stubCompanyStore {
	s := &stubCompanyStore{byID: map[uuid.UUID]*models.Company{}}
	for _, c := range companies {
		s.byID[c.ID] = c
	}
	return s
}

func (s *stubCompanyStore) Create(_ context.Context, company *models.Company) error {
	for _, existing := range s.byID {
		if existing.Name == company.Name {
			return errs.New(errs.CodeConflict, "a company with this name already exists")
		}
	}
	company.ID = uuid.New()
	s.byID[company.ID] = company
	return nil
}

func (s *stubCompanyStore) FindByID(_ context.Context, id uuid.UUID) (*models.Company, error) {
	company, ok := s.byID[id]
	if !ok {
		return nil, errs.New(errs.CodeNotFound, "company not found")
	}
	return company, nil
}

func (s *stubCompanyStore) ListVisible(_ context.Context, _ pagination.Params) ([]models.Company, error) {
	var out []models.Company
	for _, c := range s.byID {
		if c.Visible {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCompanyStore) Update(_ context.Context, company *models.Company) error {
	s.byID[company.ID] = company
	return nil
}

func (s *stubCompanyStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return errs.New(errs.CodeNotFound, "company not found")
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCompanyStore) AddMember(_ context.Context, companyID, userID uuid.UUID, role enums.MemberRole) error {
	for _, e := range s.edges {
		if e.companyID == companyID && e.userID == userID && e.role == role {
			return nil
		}
	}
	s.edges = append(s.edges, membershipEdge{companyID, userID, role})
	return nil
}

func (s *stubCompanyStore) RemoveRole(_ context.Context, companyID, userID uuid.UUID, role enums.MemberRole) error {
	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.companyID == companyID && e.userID == userID && e.role == role {
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
	return nil
}

func (s *stubCompanyStore) RemoveAllRoles(_ context.Context, companyID, userID uuid.UUID) error {
	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.companyID == companyID && e.userID == userID {
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
	return nil
}

func (s *stubCompanyStore) ListByRole(_ context.Context, companyID uuid.UUID, role enums.MemberRole, _ pagination.Params) ([]models.User, error) {
	var out []models.User
	for _, e := range s.edges {
		if e.companyID == companyID && e.role == role {
			out = append(out, models.User{ID: e.userID})
		}
	}
	return out, nil
}

func (s *stubCompanyStore) UserHasRole(_ context.Context, companyID, userID uuid.UUID, role enums.MemberRole) (bool, error) {
	for _, e := range s.edges {
		if e.companyID == companyID && e.userID == userID && e.role == role {
			return true, nil
		}
	}
	return false, nil
}

// ownerPolicy grants management to the stored owner and superusers.
type ownerPolicy struct {
	store *stubCompanyStore
}

func (p ownerPolicy) RequireAuthenticated(actor *models.User) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	return nil
}

func (p ownerPolicy) CanManageCompany(_ context.Context, actor *models.User, companyID uuid.UUID) error {
	if actor == nil {
		return errs.New(errs.CodeUnauthorized, "authentication required")
	}
	if actor.IsSuperuser {
		return nil
	}
	company, ok := p.store.byID[companyID]
	if ok && company.OwnerID == actor.ID {
		return nil
	}
	return errs.New(errs.CodeForbidden, "only the company owner may do this")
}

func testService(companies ...*models.Company) (*Service, *stubCompanyStore) {
	store := newStubCompanyStore(companies...)
	return NewService(store, ownerPolicy{store: store}, nil), store
}

func TestCreateSetsOwnerAndVisibility(t *testing.T) {
	service, store := testService()
	actor := &models.User{ID: uuid.New()}

	resp, err := service.Create(context.Background(), actor, CreateCompanyRequest{Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.OwnerID != actor.ID {
		t.Errorf("expected creator to own the company, got %s", resp.OwnerID)
	}
	if !resp.Visible {
		t.Error("expected new companies to be visible")
	}
	if len(store.byID) != 1 {
		t.Fatalf("expected one stored company, got %d", len(store.byID))
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	owner := &models.User{ID: uuid.New()}
	stranger := &models.User{ID: uuid.New()}
	company := &models.Company{ID: uuid.New(), Name: "Acme", OwnerID: owner.ID, Visible: true}
	service, _ := testService(company)

	name := "Renamed"
	if _, err := service.Update(context.Background(), stranger, company.ID, UpdateCompanyRequest{Name: &name}); !errs.HasCode(err, errs.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for non-owner, got %v", err)
	}

	resp, err := service.Update(context.Background(), owner, company.ID, UpdateCompanyRequest{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Name != "Renamed" {
		t.Errorf("expected renamed company, got %q", resp.Name)
	}
}

func TestSetVisibilityHidesFromListings(t *testing.T) {
	owner := &models.User{ID: uuid.New()}
	company := &models.Company{ID: uuid.New(), Name: "Acme", OwnerID: owner.ID, Visible: true}
	service, _ := testService(company)

	if _, err := service.SetVisibility(context.Background(), owner, company.ID, false); err != nil {
		t.Fatalf("hide: %v", err)
	}

	list, err := service.List(context.Background(), owner, pagination.Params{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected hidden company out of listings, got %d", len(list))
	}

	// Direct fetch still works.
	if _, err := service.Get(context.Background(), owner, company.ID); err != nil {
		t.Fatalf("expected hidden company to be fetchable, got %v", err)
	}
}

func TestAssignAdminRequiresMembership(t *testing.T) {
	owner := &models.User{ID: uuid.New()}
	outsider := uuid.New()
	company := &models.Company{ID: uuid.New(), Name: "Acme", OwnerID: owner.ID, Visible: true}
	service, store := testService(company)

	if err := service.AssignAdmin(context.Background(), owner, company.ID, outsider); !errs.HasCode(err, errs.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for non-member, got %v", err)
	}

	if err := store.AddMember(context.Background(), company.ID, outsider, enums.MemberRoleMember); err != nil {
		t.Fatalf("seeding member: %v", err)
	}
	if err := service.AssignAdmin(context.Background(), owner, company.ID, outsider); err != nil {
		t.Fatalf("assign admin: %v", err)
	}

	has, _ := store.UserHasRole(context.Background(), company.ID, outsider, enums.MemberRoleAdmin)
	if !has {
		t.Fatal("expected admin role to be granted")
	}
}

func TestRevokeAdminKeepsMemberRole(t *testing.T) {
	owner := &models.User{ID: uuid.New()}
	userID := uuid.New()
	company := &models.Company{ID: uuid.New(), Name: "Acme", OwnerID: owner.ID, Visible: true}
	service, store := testService(company)

	_ = store.AddMember(context.Background(), company.ID, userID, enums.MemberRoleMember)
	_ = store.AddMember(context.Background(), company.ID, userID, enums.MemberRoleAdmin)

	if err := service.RevokeAdmin(context.Background(), owner, company.ID, userID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	hasAdmin, _ := store.UserHasRole(context.Background(), company.ID, userID, enums.MemberRoleAdmin)
	hasMember, _ := store.UserHasRole(context.Background(), company.ID, userID, enums.MemberRoleMember)
	if hasAdmin || !hasMember {
		t.Fatalf("expected admin gone and member kept, got admin=%v member=%v", hasAdmin, hasMember)
	}

	// Revoking again is silent.
	if err := service.RevokeAdmin(context.Background(), owner, company.ID, userID); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
}

func TestLeaveBlocksOwner(t *testing.T) {
	owner := &models.User{ID: uuid.New()}
	member := &models.User{ID: uuid.New()}
	company := &models.Company{ID: uuid.New(), Name: "Acme", OwnerID: owner.ID, Visible: true}
	service, store := testService(company)
	_ = store.AddMember(context.Background(), company.ID, member.ID, enums.MemberRoleMember)

	if err := service.Leave(context.Background(), owner, company.ID); !errs.HasCode(err, errs.CodeConflict) {
		t.Fatalf("expected CONFLICT for owner leave, got %v", err)
	}
	if err := service.Leave(context.Background(), member, company.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}
	hasMember, _ := store.UserHasRole(context.Background(), company.ID, member.ID, enums.MemberRoleMember)
	if hasMember {
		t.Fatal("expected membership to be removed")
	}
}
