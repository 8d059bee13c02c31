package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the back-office lifecycle of a transfer order.
//
//	PENDING_CONFIRMATION -> SUBMITTED -> IN_PROGRESS -> COMPLETED | REJECTED
//	                            |  \______________________/
//	                            +-> CANCELLED
//
// COMPLETED, CANCELLED and REJECTED are terminal.
type OrderStatus string

const (
	OrderStatusPendingConfirmation OrderStatus = "PENDING_CONFIRMATION"
	OrderStatusSubmitted           OrderStatus = "SUBMITTED"
	OrderStatusInProgress          OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted           OrderStatus = "COMPLETED"
	OrderStatusCancelled           OrderStatus = "CANCELLED"
	OrderStatusRejected            OrderStatus = "REJECTED"
)

// ValidTransitions maps a status to the statuses an admin may move it to.
var ValidTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingConfirmation: {OrderStatusSubmitted},
	OrderStatusSubmitted:           {OrderStatusInProgress, OrderStatusCompleted, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusInProgress:          {OrderStatusCompleted, OrderStatusRejected},
	OrderStatusCompleted:           {},
	OrderStatusCancelled:           {},
	OrderStatusRejected:            {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := ValidTransitions[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled || s == OrderStatusRejected
}

// CanTransitionTo reports whether moving from s to target is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return slices.Contains(ValidTransitions[s], target)
}

// TransferOrder is created once per successful confirm.
type TransferOrder struct {
	ID               string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber      string          `gorm:"uniqueIndex;not null" json:"orderNumber"`
	FromMethodID     string          `gorm:"type:uuid;not null" json:"fromMethodId"`
	ToMethodID       string          `gorm:"type:uuid;not null" json:"toMethodId"`
	FeeRuleID        *string         `gorm:"type:uuid" json:"feeRuleId"`
	Amount           decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Fee              decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"fee"`
	Total            decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total"`
	BenefitType      BenefitType     `gorm:"not null" json:"benefitType"`
	Status           OrderStatus     `gorm:"not null;index" json:"status"`
	CustomerName     string          `json:"customerName,omitempty"`
	CustomerPhone    string          `gorm:"index" json:"customerPhone,omitempty"`
	CustomerWhatsapp string          `json:"customerWhatsapp,omitempty"`
	AdminNotes       string          `json:"adminNotes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`

	FromMethod *TransferMethod `gorm:"foreignKey:FromMethodID" json:"-"`
	ToMethod   *TransferMethod `gorm:"foreignKey:ToMethodID" json:"-"`
}

func (o *TransferOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
