package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FeeType selects how FeeValue is applied to the amount.
type FeeType string

const (
	FeeTypePercent FeeType = "PERCENT"
	FeeTypeFixed   FeeType = "FIXED"
)

func (t FeeType) IsValid() bool {
	return t == FeeTypePercent || t == FeeTypeFixed
}

// BenefitType says who receives the computed value: the broker (FEE) or the
// customer (CASHBACK).
type BenefitType string

const (
	BenefitTypeFee      BenefitType = "FEE"
	BenefitTypeCashback BenefitType = "CASHBACK"
)

func (b BenefitType) IsValid() bool {
	return b == BenefitTypeFee || b == BenefitTypeCashback
}

// TransferFeeRule prices one ordered method pair. Lower Priority is evaluated first.
type TransferFeeRule struct {
	ID           string           `gorm:"type:uuid;primaryKey" json:"id"`
	FromMethodID string           `gorm:"type:uuid;not null;index:idx_fee_rule_route" json:"fromMethodId"`
	ToMethodID   string           `gorm:"type:uuid;not null;index:idx_fee_rule_route" json:"toMethodId"`
	FeeType      FeeType          `gorm:"not null" json:"feeType"`
	FeeValue     decimal.Decimal  `gorm:"type:numeric(18,4);not null" json:"feeValue"`
	BenefitType  BenefitType      `gorm:"not null;default:'FEE'" json:"benefitType"`
	MinAmount    *decimal.Decimal `gorm:"type:numeric(18,2)" json:"minAmount"`
	MaxAmount    *decimal.Decimal `gorm:"type:numeric(18,2)" json:"maxAmount"`
	Enabled      bool             `gorm:"not null" json:"enabled"`
	Priority     int              `gorm:"not null" json:"priority"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`

	FromMethod *TransferMethod `gorm:"foreignKey:FromMethodID" json:"-"`
	ToMethod   *TransferMethod `gorm:"foreignKey:ToMethodID" json:"-"`
}

func (r *TransferFeeRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Contains reports whether amount lies within the rule's bounds. Nil bounds are open.
func (r *TransferFeeRule) Contains(amount decimal.Decimal) bool {
	if r.MinAmount != nil && amount.LessThan(*r.MinAmount) {
		return false
	}
	if r.MaxAmount != nil && amount.GreaterThan(*r.MaxAmount) {
		return false
	}
	return true
}
