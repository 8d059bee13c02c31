package transfer

import (
	"context"

	"wasit/internal/models"
	"wasit/internal/repositories"
	"wasit/internal/services/fee"
	"wasit/internal/transferapi"
	"wasit/internal/utils"

	"github.com/shopspring/decimal"
)

// Evaluator prices a route.
type Evaluator interface {
	Evaluate(ctx context.Context, fromRef, toRef string, amount decimal.Decimal) (*fee.Result, error)
}

// OrderStore is the part of the order repository the transfer service writes to.
type OrderStore interface {
	Create(ctx context.Context, order *models.TransferOrder) error
	List(ctx context.Context, filter repositories.OrderFilter) ([]models.TransferOrder, int64, error)
}

type QuoteInput struct {
	FromMethodID string
	ToMethodID   string
	Amount       decimal.Decimal
}

type ConfirmInput struct {
	QuoteInput
	CustomerName     string
	CustomerPhone    string
	CustomerWhatsapp string
}

type ConfirmResult struct {
	Order   *models.TransferOrder
	Handoff transferapi.Handoff
}

type OrdersInput struct {
	Phone  string
	Status string
	Page   int
	Limit  int
}

type OrdersResult struct {
	Orders     []models.TransferOrder
	Total      int64
	Pagination utils.Pagination
}

// Service handles the customer side of a transfer: quote, confirm, and "my orders".
type Service interface {
	Quote(ctx context.Context, in QuoteInput) (*fee.Result, error)
	Confirm(ctx context.Context, in ConfirmInput) (*ConfirmResult, error)
	ListOrders(ctx context.Context, in OrdersInput) (*OrdersResult, error)
}
