package events

import (
	"time"

	"wasit/internal/models"
)

// NewOrderEvent snapshots order for publishing. previous is empty for order.created.
func NewOrderEvent(typ string, order *models.TransferOrder, previous models.OrderStatus, currency string, at time.Time) OrderEvent {
	event := OrderEvent{
		Type:           typ,
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         string(order.Status),
		PreviousStatus: string(previous),
		Amount:         order.Amount,
		Fee:            order.Fee,
		Total:          order.Total,
		BenefitType:    string(order.BenefitType),
		Currency:       currency,
		OccurredAt:     at.UTC(),
	}
	if order.FromMethod != nil {
		event.FromMethodCode = order.FromMethod.Code
	}
	if order.ToMethod != nil {
		event.ToMethodCode = order.ToMethod.Code
	}
	return event
}
