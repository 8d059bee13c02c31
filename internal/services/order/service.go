// Package order is the back-office view of transfer orders: listing, lookup and
// status changes along the allowed transitions.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "wasit/internal/errors"
	"wasit/internal/events"
	"wasit/internal/metrics"
	"wasit/internal/models"
	"wasit/internal/repositories"
	"wasit/internal/utils"
	"wasit/internal/validation"

	"go.uber.org/zap"
)

type ListInput struct {
	Phone       string
	Status      string
	OrderNumber string
	Page        int
	Limit       int
}

type ListResult struct {
	Orders     []models.TransferOrder
	Total      int64
	Pagination utils.Pagination
}

// UpdateInput changes the status, the admin notes, or both.
type UpdateInput struct {
	Status     *models.OrderStatus
	AdminNotes *string
}

type Service interface {
	List(ctx context.Context, in ListInput) (*ListResult, error)
	Get(ctx context.Context, id string) (*models.TransferOrder, error)
	Update(ctx context.Context, id string, in UpdateInput) (*models.TransferOrder, error)
}

type service struct {
	repo      repositories.OrderRepository
	publisher events.Publisher
	metrics   metrics.Collector
	currency  string
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo repositories.OrderRepository, publisher events.Publisher, m metrics.Collector, currency string, logger *zap.Logger) Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if m == nil {
		m = metrics.NoopCollector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		currency:  currency,
		logger:    logger.With(zap.String("component", "order_service")),
		now:       time.Now,
	}
}

func (s *service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	status := models.OrderStatus(in.Status)
	if status != "" && !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	p := utils.NewPagination(in.Page, in.Limit)
	orders, total, err := s.repo.List(ctx, repositories.OrderFilter{
		Phone:       validation.NormalizePhone(in.Phone),
		Status:      status,
		OrderNumber: in.OrderNumber,
		Offset:      p.Offset,
		Limit:       p.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return &ListResult{Orders: orders, Total: total, Pagination: p}, nil
}

// Get accepts either the order id or its order number.
func (s *service) Get(ctx context.Context, id string) (*models.TransferOrder, error) {
	order, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*models.TransferOrder, error) {
	if in.Status == nil && in.AdminNotes == nil {
		return nil, apperrors.ErrInvalidRequest.WithMessage("status or adminNotes is required")
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	to := from
	if in.Status != nil {
		to = *in.Status
		if !to.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		if to != from && !from.CanTransitionTo(to) {
			return nil, apperrors.ErrIllegalTransition.WithMessage("cannot move order from %s to %s", from, to)
		}
	}

	var notes *string
	if in.AdminNotes != nil {
		clean := validation.SanitizeText(*in.AdminNotes)
		v := validation.New()
		v.MaxLength("adminNotes", clean, validation.MaxNotesLength)
		if !v.Valid() {
			return nil, apperrors.ErrInvalidRequest.WithMessage("%s", v.Error())
		}
		notes = &clean
	}

	// The repository only updates while the status is still from, so a
	// concurrent change surfaces as ErrNotFound here.
	if err := s.repo.UpdateStatus(ctx, order.ID, from, to, notes); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrIllegalTransition.WithMessage("order %s changed concurrently", order.OrderNumber)
		}
		return nil, fmt.Errorf("update order: %w", err)
	}

	order.Status = to
	if notes != nil {
		order.AdminNotes = *notes
	}
	order.UpdatedAt = s.now()

	if to != from {
		s.metrics.RecordStatusChange(string(from), string(to))
		event := events.NewOrderEvent(events.TypeOrderStatusChanged, order, from, s.currency, s.now())
		if err := s.publisher.PublishOrder(ctx, event); err != nil {
			s.metrics.RecordError("publish", "kafka")
			s.logger.Warn("status event not published", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
		s.logger.Info("order status changed",
			zap.String("order_number", order.OrderNumber),
			zap.String("from", string(from)),
			zap.String("to", string(to)))
	}
	return order, nil
}
