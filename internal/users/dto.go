package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
)

// UserResponse is the public representation of an account. The password
// hash never leaves the service.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Phones      []string  `json:"phones"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	Status      string    `json:"status"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// UpdateUserRequest carries the mutable profile fields. Pointers distinguish
// "leave unchanged" from an explicit new value.
type UpdateUserRequest struct {
	Username *string   `json:"username" validate:"omitempty,min=1,max=120"`
	Password *string   `json:"password" validate:"omitempty,min=8"`
	Phones   *[]string `json:"phones" validate:"omitempty,dive,min=3"`
}

// ToUserResponse maps the persisted model to its API shape.
func ToUserResponse(user *models.User) UserResponse {
	phones := []string(user.Phones)
	if phones == nil {
		phones = []string{}
	}
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Phones:      phones,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		Status:      user.Status,
		Created:     user.CreatedAt,
		Updated:     user.UpdatedAt,
	}
}

// ToUserResponses maps a page of users.
func ToUserResponses(list []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for i := range list {
		out = append(out, ToUserResponse(&list[i]))
	}
	return out
}
