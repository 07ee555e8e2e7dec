package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizhubhq/quizhub-backend/pkg/enums"
)

// Action is the unified invite/join-request workflow record. For invites the
// initiator is the inviting owner and the counterparty the invited user; a
// join request is a self-action where both sides are the requesting user.
type Action struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Kind           enums.ActionKind   `gorm:"column:kind;type:text;not null;index"`
	CompanyID      uuid.UUID          `gorm:"column:company_id;type:uuid;not null;index"`
	InitiatorID    uuid.UUID          `gorm:"column:initiator_id;type:uuid;not null;index"`
	CounterpartyID uuid.UUID          `gorm:"column:counterparty_id;type:uuid;not null;index"`
	Status         enums.ActionStatus `gorm:"column:status;type:text;not null;default:sent;index"`
	Company        *Company           `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Initiator      *User              `gorm:"foreignKey:InitiatorID"`
	Counterparty   *User              `gorm:"foreignKey:CounterpartyID"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// NewInvite builds a sent invite from a company actor to the recipient.
func NewInvite(companyID, senderID, recipientID uuid.UUID) *Action {
	return &Action{
		Kind:           enums.ActionKindInvite,
		CompanyID:      companyID,
		InitiatorID:    senderID,
		CounterpartyID: recipientID,
		Status:         enums.ActionStatusSent,
	}
}

// NewJoinRequest builds a sent join request. The self-action encoding
// (initiator == counterparty) is deliberate so both workflows share one
// table and one transition path.
func NewJoinRequest(companyID, userID uuid.UUID) *Action {
	return &Action{
		Kind:           enums.ActionKindJoinRequest,
		CompanyID:      companyID,
		InitiatorID:    userID,
		CounterpartyID: userID,
		Status:         enums.ActionStatusSent,
	}
}

// IsSelfAction reports whether both sides of the action are the same user.
// Holds for every join request.
func (a *Action) IsSelfAction() bool {
	return a.InitiatorID == a.CounterpartyID
}

func (a *Action) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = enums.ActionStatusSent
	}
	return nil
}
