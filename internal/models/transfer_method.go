package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MethodCategory groups payment rails for display.
type MethodCategory string

const (
	MethodCategoryWallet MethodCategory = "WALLET"
	MethodCategoryBank   MethodCategory = "BANK"
	MethodCategoryCash   MethodCategory = "CASH"
	MethodCategoryOther  MethodCategory = "OTHER"
)

// IsValid reports whether c is one of the known categories.
func (c MethodCategory) IsValid() bool {
	switch c {
	case MethodCategoryWallet, MethodCategoryBank, MethodCategoryCash, MethodCategoryOther:
		return true
	}
	return false
}

// TransferMethod is a payment rail money can be moved from or to.
type TransferMethod struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`
	Category  MethodCategory `gorm:"not null;default:'OTHER'" json:"category"`
	Enabled   bool           `gorm:"not null" json:"enabled"`
	SortOrder int            `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (m *TransferMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Code = NormalizeCode(m.Code)
	return nil
}

// NormalizeCode upper-cases a method code and trims surrounding spaces.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
