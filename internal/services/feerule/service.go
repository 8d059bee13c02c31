// Package feerule manages the fee rules that price each transfer route.
package feerule

import (
	"context"
	"errors"
	"fmt"

	apperrors "wasit/internal/errors"
	"wasit/internal/models"
	"wasit/internal/repositories"
	"wasit/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultPriority = 100

// Input is a full rule definition; Update replaces every field. Method refs may
// be ids or codes.
type Input struct {
	FromMethod  string
	ToMethod    string
	FeeType     models.FeeType
	FeeValue    decimal.Decimal
	BenefitType models.BenefitType
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	Enabled     *bool
	Priority    *int
}

type Service interface {
	List(ctx context.Context, filter repositories.FeeRuleFilter) ([]models.TransferFeeRule, error)
	Get(ctx context.Context, id string) (*models.TransferFeeRule, error)
	Create(ctx context.Context, in Input) (*models.TransferFeeRule, error)
	Update(ctx context.Context, id string, in Input) (*models.TransferFeeRule, error)
	Delete(ctx context.Context, id string) error
}

// MethodLookup resolves method refs.
type MethodLookup interface {
	GetByRef(ctx context.Context, ref string) (*models.TransferMethod, error)
}

type service struct {
	rules   repositories.FeeRuleRepository
	methods MethodLookup
	logger  *zap.Logger
}

func NewService(rules repositories.FeeRuleRepository, methods MethodLookup, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		rules:   rules,
		methods: methods,
		logger:  logger.With(zap.String("component", "fee_rule_service")),
	}
}

// List accepts method refs in the filter and resolves them to ids.
func (s *service) List(ctx context.Context, filter repositories.FeeRuleFilter) ([]models.TransferFeeRule, error) {
	for _, ref := range []*string{&filter.FromMethodID, &filter.ToMethodID} {
		if *ref == "" {
			continue
		}
		m, err := s.method(ctx, *ref)
		if err != nil {
			return nil, err
		}
		*ref = m.ID
	}

	rules, err := s.rules.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list fee rules: %w", err)
	}
	if rules == nil {
		rules = []models.TransferFeeRule{}
	}
	return rules, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.TransferFeeRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.ErrFeeRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get fee rule: %w", err)
	}
	return rule, nil
}

func (s *service) Create(ctx context.Context, in Input) (*models.TransferFeeRule, error) {
	rule := &models.TransferFeeRule{}
	if err := s.apply(ctx, rule, in); err != nil {
		return nil, err
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("create fee rule: %w", err)
	}
	s.logger.Info("fee rule created",
		zap.String("id", rule.ID),
		zap.String("from", rule.FromMethod.Code),
		zap.String("to", rule.ToMethod.Code))
	return rule, nil
}

func (s *service) Update(ctx context.Context, id string, in Input) (*models.TransferFeeRule, error) {
	rule, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, rule, in); err != nil {
		return nil, err
	}

	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("update fee rule: %w", err)
	}
	return rule, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	err := s.rules.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.ErrFeeRuleNotFound
	}
	if err != nil {
		return fmt.Errorf("delete fee rule: %w", err)
	}
	return nil
}

func (s *service) apply(ctx context.Context, rule *models.TransferFeeRule, in Input) error {
	if in.FromMethod == "" || in.ToMethod == "" {
		return apperrors.ErrMissingMethod
	}
	from, err := s.method(ctx, in.FromMethod)
	if err != nil {
		return err
	}
	to, err := s.method(ctx, in.ToMethod)
	if err != nil {
		return err
	}

	rule.FromMethodID, rule.ToMethodID = from.ID, to.ID
	rule.FromMethod, rule.ToMethod = from, to
	rule.FeeType = in.FeeType
	rule.FeeValue = in.FeeValue
	rule.BenefitType = in.BenefitType
	if rule.BenefitType == "" {
		rule.BenefitType = models.BenefitTypeFee
	}
	rule.MinAmount, rule.MaxAmount = in.MinAmount, in.MaxAmount

	rule.Enabled = true
	if in.Enabled != nil {
		rule.Enabled = *in.Enabled
	}
	rule.Priority = DefaultPriority
	if in.Priority != nil {
		rule.Priority = *in.Priority
	}

	v := validation.New()
	v.FeeRule(rule)
	if !v.Valid() {
		if _, same := v.Errors["toMethodId"]; same && from.ID == to.ID {
			return apperrors.ErrSameMethod
		}
		return apperrors.ErrInvalidFeeRule.WithMessage("%s", v.Error())
	}
	return nil
}

func (s *service) method(ctx context.Context, ref string) (*models.TransferMethod, error) {
	m, err := s.methods.GetByRef(ctx, ref)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.ErrMethodNotFound.WithMessage("transfer method %q not found", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve method: %w", err)
	}
	return m, nil
}
