package transfer

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
	"wasit/internal/services/fee"
	"wasit/internal/utils"
	"wasit/internal/validation"

	nanoid "github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
)

const (
	orderNumberPrefix = "TR-"
	// No 0/O or 1/I so numbers survive being read out over the phone.
	orderNumberAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	orderNumberLength   = 8
	orderNumberAttempts = 3
)

type Config struct {
	BrokerPhone   string
	RequireReview bool
	Currency      string
}

// service implements the transfer Service interface.
type service struct {
	evaluator Evaluator
	orders    OrderStore
	publisher events.Publisher
	metrics   metrics.Collector
	cfg       Config
	logger    *zap.Logger

	newNumber func() string
	now       func() time.Time
}

// NewService creates a new transfer service instance.
func NewService(evaluator Evaluator, orders OrderStore, publisher events.Publisher, m metrics.Collector, cfg Config, logger *zap.Logger) (Service, error) {
	gen, err := nanoid.CustomASCII(orderNumberAlphabet, orderNumberLength)
	if err != nil {
		return nil, fmt.Errorf("order number generator: %w", err)
	}
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
		evaluator: evaluator,
		orders:    orders,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
		logger:    logger.With(zap.String("component", "transfer_service")),
		newNumber: func() string { return orderNumberPrefix + gen() },
		now:       time.Now,
	}, nil
}

func (s *service) Quote(ctx context.Context, in QuoteInput) (*fee.Result, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("quote", time.Since(start)) }()

	res, err := s.evaluator.Evaluate(ctx, in.FromMethodID, in.ToMethodID, in.Amount)
	if err != nil {
		s.recordFailure("quote", err)
		return nil, err
	}
	if res.Available {
		s.metrics.RecordQuote(metrics.QuoteAvailable)
	} else {
		s.metrics.RecordQuote(metrics.QuoteUnavailable)
	}
	return res, nil
}

// Confirm re-prices the route and creates the order. The client's earlier quote
// is never trusted.
func (s *service) Confirm(ctx context.Context, in ConfirmInput) (*ConfirmResult, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("confirm", time.Since(start)) }()

	name := validation.SanitizeText(in.CustomerName)
	phone := validation.NormalizePhone(validation.SanitizeText(in.CustomerPhone))
	whatsapp := validation.NormalizePhone(validation.SanitizeText(in.CustomerWhatsapp))

	v := validation.New()
	v.Customer(name, phone, whatsapp)
	if !v.Valid() {
		s.metrics.RecordError("confirm", "validation")
		return nil, apperrors.ErrInvalidRequest.WithMessage("%s", v.Error())
	}

	res, err := s.evaluator.Evaluate(ctx, in.FromMethodID, in.ToMethodID, in.Amount)
	if err != nil {
		s.recordFailure("confirm", err)
		return nil, err
	}
	if !res.Available {
		s.metrics.RecordQuote(metrics.QuoteRejected)
		return nil, apperrors.ErrQuoteUnavailable.WithMessage("%s", res.Message)
	}

	status := models.OrderStatusSubmitted
	if s.cfg.RequireReview {
		status = models.OrderStatusPendingConfirmation
	}

	order := &models.TransferOrder{
		FromMethodID:     res.From.ID,
		ToMethodID:       res.To.ID,
		FeeRuleID:        &res.Rule.ID,
		Amount:           res.Amount,
		Fee:              res.Fee,
		Total:            res.Total,
		BenefitType:      res.BenefitType,
		Status:           status,
		CustomerName:     name,
		CustomerPhone:    phone,
		CustomerWhatsapp: whatsapp,
	}
	if err := s.create(ctx, order); err != nil {
		s.metrics.RecordError("confirm", "db")
		return nil, err
	}
	order.FromMethod, order.ToMethod = res.From, res.To

	handoff := BuildHandoff(order, s.cfg.BrokerPhone, s.cfg.Currency)

	amount, _ := order.Amount.Float64()
	feeAmount, _ := order.Fee.Float64()
	s.metrics.RecordOrderCreated(string(order.Status), string(order.BenefitType), amount, feeAmount)

	s.publishCreated(ctx, order)

	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("from", res.From.Code),
		zap.String("to", res.To.Code),
		zap.String("amount", order.Amount.String()),
		zap.String("status", string(order.Status)))

	return &ConfirmResult{Order: order, Handoff: handoff}, nil
}

// create assigns a fresh order number, retrying on the rare collision.
func (s *service) create(ctx context.Context, order *models.TransferOrder) error {
	var err error
	for i := 0; i < orderNumberAttempts; i++ {
		order.OrderNumber = s.newNumber()
		err = s.orders.Create(ctx, order)
		if !errors.Is(err, repositories.ErrDuplicate) {
			break
		}
		s.logger.Warn("order number collision", zap.String("order_number", order.OrderNumber))
	}
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (s *service) ListOrders(ctx context.Context, in OrdersInput) (*OrdersResult, error) {
	phone := validation.NormalizePhone(in.Phone)
	if phone == "" {
		return nil, apperrors.ErrPhoneRequired
	}

	status := models.OrderStatus(in.Status)
	if status != "" && !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	p := utils.NewPagination(in.Page, in.Limit)
	orders, total, err := s.orders.List(ctx, repositories.OrderFilter{
		Phone:  phone,
		Status: status,
		Offset: p.Offset,
		Limit:  p.Limit,
	})
	if err != nil {
		s.metrics.RecordError("list_orders", "db")
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return &OrdersResult{Orders: orders, Total: total, Pagination: p}, nil
}

func (s *service) publishCreated(ctx context.Context, order *models.TransferOrder) {
	event := events.NewOrderEvent(events.TypeOrderCreated, order, "", s.cfg.Currency, s.now())

	// The order is already stored; a lost event must not fail the confirm.
	if err := s.publisher.PublishOrder(ctx, event); err != nil {
		s.metrics.RecordError("publish", "kafka")
		s.logger.Warn("order event not published",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}
}

func (s *service) recordFailure(op string, err error) {
	if _, ok := apperrors.As(err); ok {
		s.metrics.RecordQuote(metrics.QuoteRejected)
		return
	}
	s.metrics.RecordError(op, "internal")
	s.logger.Error(op+" failed", zap.Error(err))
}
