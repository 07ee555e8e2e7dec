package actions

import (
	"time"

	"github.com/google/uuid"

	"github.com/quizhubhq/quizhub-backend/pkg/db/models"
	"github.com/quizhubhq/quizhub-backend/pkg/enums"
)

type InviteRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type DecisionRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

// ActionResponse flattens the company and sender into names so clients can
// render a workflow item without extra lookups.
type ActionResponse struct {
	ID           uuid.UUID          `json:"id"`
	TypeAction   enums.ActionKind   `json:"type_action"`
	Company      string             `json:"company"`
	Sender       string             `json:"sender"`
	StatusAction enums.ActionStatus `json:"status_action"`
	Created      time.Time          `json:"created"`
	Updated      time.Time          `json:"updated"`
}

func ToActionResponse(action *models.Action) ActionResponse {
	resp := ActionResponse{
		ID:           action.ID,
		TypeAction:   action.Kind,
		StatusAction: action.Status,
		Created:      action.CreatedAt,
		Updated:      action.UpdatedAt,
	}
	if action.Company != nil {
		resp.Company = action.Company.Name
	}
	if action.Initiator != nil {
		resp.Sender = action.Initiator.Username
	}
	return resp
}

func ToActionResponses(list []models.Action) []ActionResponse {
	out := make([]ActionResponse, 0, len(list))
	for i := range list {
		out = append(out, ToActionResponse(&list[i]))
	}
	return out
}
