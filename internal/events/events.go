// Package events publishes order lifecycle events for downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type           string          `json:"type"`
	OrderID        string          `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previous_status,omitempty"`
	FromMethodCode string          `json:"from_method_code,omitempty"`
	ToMethodCode   string          `json:"to_method_code,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Fee            decimal.Decimal `json:"fee"`
	Total          decimal.Decimal `json:"total"`
	BenefitType    string          `json:"benefit_type"`
	Currency       string          `json:"currency"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// Publisher delivers order events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishOrder(ctx context.Context, event OrderEvent) error
	Close() error
}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrder(context.Context, OrderEvent) error { return nil }
func (NoopPublisher) Close() error                                   { return nil }
