package validation

import (
	"wasit/internal/models"

	"github.com/shopspring/decimal"
)

// Method validates a transfer method before it is saved.
func (v *Validator) Method(m *models.TransferMethod) {
	v.Required("name", m.Name)
	v.MaxLength("name", m.Name, MaxMethodNameLength)
	v.Code("code", models.NormalizeCode(m.Code))
	v.Check(m.Category.IsValid(), "category", "must be WALLET, BANK, CASH or OTHER")
	v.Check(m.SortOrder >= 0, "sortOrder", "must not be negative")
}

// FeeRule validates a fee rule before it is saved.
func (v *Validator) FeeRule(r *models.TransferFeeRule) {
	v.Required("fromMethodId", r.FromMethodID)
	v.Required("toMethodId", r.ToMethodID)
	v.Check(r.FromMethodID == "" || r.FromMethodID != r.ToMethodID, "toMethodId", "must differ from fromMethodId")
	v.Check(r.FeeType.IsValid(), "feeType", "must be PERCENT or FIXED")
	v.Check(r.BenefitType.IsValid(), "benefitType", "must be FEE or CASHBACK")
	v.NonNegative("feeValue", r.FeeValue)
	if r.FeeType == models.FeeTypePercent {
		v.Check(r.FeeValue.LessThanOrEqual(decimal.NewFromInt(MaxPercentFee)), "feeValue", "must not exceed 100 percent")
	}
	if r.MinAmount != nil {
		v.NonNegative("minAmount", *r.MinAmount)
	}
	if r.MaxAmount != nil {
		v.Positive("maxAmount", *r.MaxAmount)
	}
	if r.MinAmount != nil && r.MaxAmount != nil {
		v.Check(r.MinAmount.LessThanOrEqual(*r.MaxAmount), "maxAmount", "must not be less than minAmount")
	}
	v.Check(r.Priority >= 0, "priority", "must not be negative")
}

// Customer validates the optional contact fields submitted with an order.
func (v *Validator) Customer(name, phone, whatsapp string) {
	v.MaxLength("customerName", name, MaxNameLength)
	if phone != "" {
		v.Phone("customerPhone", phone)
	}
	if whatsapp != "" {
		v.Phone("customerWhatsapp", whatsapp)
	}
}
