package companies

import (
	"time"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
)

type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type VisibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

type MemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Visible     bool      `json:"visible"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// MemberResponse is the trimmed user shape returned by member listings.
type MemberResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func ToCompanyResponse(company *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		OwnerID:     company.OwnerID,
		Visible:     company.Visible,
		Created:     company.CreatedAt,
		Updated:     company.UpdatedAt,
	}
}

func ToCompanyResponses(list []models.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(list))
	for i := range list {
		out = append(out, ToCompanyResponse(&list[i]))
	}
	return out
}

func ToMemberResponses(list []models.User) []MemberResponse {
	out := make([]MemberResponse, 0, len(list))
	for _, user := range list {
		out = append(out, MemberResponse{ID: user.ID, Username: user.Username, Email: user.Email})
	}
	return out
}
