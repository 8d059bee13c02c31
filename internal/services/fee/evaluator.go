// Package fee prices a transfer between two methods from the configured fee rules.
package fee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "wasit/internal/errors"
	"wasit/internal/models"
	"wasit/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Unavailable reasons returned in Result.Message.
const (
	MsgMethodNotAvailable = "method not available"
	MsgRouteNotSupported  = "route not supported"
)

var hundred = decimal.NewFromInt(100)

// MethodLookup resolves a method from its id or code.
type MethodLookup interface {
	GetByRef(ctx context.Context, ref string) (*models.TransferMethod, error)
}

// RuleSource lists the enabled rules of a route in evaluation order.
type RuleSource interface {
	ListForRoute(ctx context.Context, fromMethodID, toMethodID string) ([]models.TransferFeeRule, error)
}

// Result is a priced (or refused) transfer. Fee is signed, so Total == Amount + Fee.
type Result struct {
	Available   bool
	From        *models.TransferMethod
	To          *models.TransferMethod
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	Total       decimal.Decimal
	BenefitType models.BenefitType
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	Rule        *models.TransferFeeRule
	Message     string
}

type Evaluator struct {
	methods MethodLookup
	rules   RuleSource
	logger  *zap.Logger
}

func NewEvaluator(methods MethodLookup, rules RuleSource, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		methods: methods,
		rules:   rules,
		logger:  logger.With(zap.String("component", "fee_evaluator")),
	}
}

// Evaluate prices amount for the route fromRef -> toRef. Invalid input is an
// error; an unpriceable route is a Result with Available=false.
func (e *Evaluator) Evaluate(ctx context.Context, fromRef, toRef string, amount decimal.Decimal) (*Result, error) {
	fromRef, toRef = strings.TrimSpace(fromRef), strings.TrimSpace(toRef)
	if fromRef == "" || toRef == "" {
		return nil, apperrors.ErrMissingMethod
	}
	if strings.EqualFold(fromRef, toRef) {
		return nil, apperrors.ErrSameMethod
	}
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	res := &Result{Amount: amount, Fee: decimal.Zero, Total: amount}

	from, err := e.resolve(ctx, fromRef)
	if err != nil {
		return nil, err
	}
	to, err := e.resolve(ctx, toRef)
	if err != nil {
		return nil, err
	}
	res.From, res.To = from, to

	if from != nil && to != nil && from.ID == to.ID {
		return nil, apperrors.ErrSameMethod
	}
	if from == nil || !from.Enabled || to == nil || !to.Enabled {
		res.Message = MsgMethodNotAvailable
		return res, nil
	}

	rules, err := e.rules.ListForRoute(ctx, from.ID, to.ID)
	if err != nil {
		return nil, fmt.Errorf("list fee rules: %w", err)
	}
	if len(rules) == 0 {
		res.Message = MsgRouteNotSupported
		return res, nil
	}

	rule := Select(rules, amount)
	if rule == nil {
		top := rules[0]
		res.MinAmount, res.MaxAmount = top.MinAmount, top.MaxAmount
		res.Message = boundsMessage(&top, amount)
		e.logger.Debug("no rule matched amount",
			zap.String("from", from.Code),
			zap.String("to", to.Code),
			zap.String("amount", amount.String()))
		return res, nil
	}

	res.Available = true
	res.Rule = rule
	res.BenefitType = rule.BenefitType
	res.MinAmount, res.MaxAmount = rule.MinAmount, rule.MaxAmount
	res.Fee, res.Total = Compute(rule, amount)
	return res, nil
}

func (e *Evaluator) resolve(ctx context.Context, ref string) (*models.TransferMethod, error) {
	m, err := e.methods.GetByRef(ctx, ref)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve method %q: %w", ref, err)
	}
	return m, nil
}

// Select returns the first rule whose bounds contain amount. rules must already
// be in evaluation order.
func Select(rules []models.TransferFeeRule, amount decimal.Decimal) *models.TransferFeeRule {
	for i := range rules {
		if rules[i].Enabled && rules[i].Contains(amount) {
			return &rules[i]
		}
	}
	return nil
}

// Compute applies rule to amount. The fee is rounded to 2 places half away from
// zero and negated for cashback.
func Compute(rule *models.TransferFeeRule, amount decimal.Decimal) (fee, total decimal.Decimal) {
	switch rule.FeeType {
	case models.FeeTypePercent:
		fee = amount.Mul(rule.FeeValue).Div(hundred)
	default:
		fee = rule.FeeValue
	}
	fee = fee.Round(2)
	if rule.BenefitType == models.BenefitTypeCashback {
		fee = fee.Neg()
	}
	return fee, amount.Add(fee)
}

func boundsMessage(rule *models.TransferFeeRule, amount decimal.Decimal) string {
	if rule.MinAmount != nil && amount.LessThan(*rule.MinAmount) {
		return "minimum amount is " + rule.MinAmount.String()
	}
	if rule.MaxAmount != nil && amount.GreaterThan(*rule.MaxAmount) {
		return "maximum amount is " + rule.MaxAmount.String()
	}
	return MsgRouteNotSupported
}
