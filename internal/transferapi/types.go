// Package transferapi defines the JSON contract of the /transfer endpoints. The
// server renders these types and the Go client decodes them.
package transferapi

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money travels as bare JSON numbers: {"amount":500}.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	BenefitFee      = "FEE"
	BenefitCashback = "CASHBACK"
)

type Method struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Category  string `json:"category"`
	Enabled   bool   `json:"enabled"`
	SortOrder int    `json:"sortOrder"`
}

type QuoteRequest struct {
	FromMethodID string          `json:"fromMethodId"`
	ToMethodID   string          `json:"toMethodId"`
	Amount       decimal.Decimal `json:"amount"`
}

// Quote is a priced proposal. Fee is signed: negative for cashback, so
// Total == Amount + Fee.
type Quote struct {
	Available   bool             `json:"available"`
	FromMethod  MethodRef        `json:"fromMethod"`
	ToMethod    MethodRef        `json:"toMethod"`
	Amount      decimal.Decimal  `json:"amount"`
	Fee         decimal.Decimal  `json:"fee"`
	Total       decimal.Decimal  `json:"total"`
	BenefitType string           `json:"benefitType,omitempty"`
	MinAmount   *decimal.Decimal `json:"minAmount"`
	MaxAmount   *decimal.Decimal `json:"maxAmount"`
	FeeRuleID   *string          `json:"feeRuleId"`
	Message     string           `json:"message,omitempty"`
}

// IsCashback reports whether the quote pays the customer instead of charging them.
func (q Quote) IsCashback() bool {
	return q.BenefitType == BenefitCashback
}

type ConfirmRequest struct {
	FromMethodID     string          `json:"fromMethodId"`
	ToMethodID       string          `json:"toMethodId"`
	Amount           decimal.Decimal `json:"amount"`
	CustomerName     string          `json:"customerName,omitempty"`
	CustomerPhone    string          `json:"customerPhone,omitempty"`
	CustomerWhatsapp string          `json:"customerWhatsapp,omitempty"`
}

type Order struct {
	ID               string          `json:"id"`
	OrderNumber      string          `json:"orderNumber"`
	FromMethodID     string          `json:"fromMethodId"`
	ToMethodID       string          `json:"toMethodId"`
	FromMethod       MethodRef       `json:"fromMethod"`
	ToMethod         MethodRef       `json:"toMethod"`
	FeeRuleID        *string         `json:"feeRuleId,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Fee              decimal.Decimal `json:"fee"`
	Total            decimal.Decimal `json:"total"`
	BenefitType      string          `json:"benefitType"`
	Status           string          `json:"status"`
	CustomerName     string          `json:"customerName,omitempty"`
	CustomerPhone    string          `json:"customerPhone,omitempty"`
	CustomerWhatsapp string          `json:"customerWhatsapp,omitempty"`
	AdminNotes       string          `json:"adminNotes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Handoff is the broker message built by the server. The client never edits it.
type Handoff struct {
	MessageText    string `json:"messageText"`
	EncodedMessage string `json:"encodedMessage"`
	WhatsappURL    string `json:"whatsappUrl"`
	BrokerPhone    string `json:"brokerPhone"`
}

type ConfirmResponse struct {
	Order    Order   `json:"order"`
	WhatsApp Handoff `json:"whatsapp"`
}

type OrdersQuery struct {
	Phone  string
	Status string
	Page   int
	Limit  int
}

type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int64 `json:"total_pages"`
}

type OrdersPage struct {
	Data []Order  `json:"data"`
	Meta PageMeta `json:"meta"`
}

// ErrorBody is returned with every non-2xx status.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
