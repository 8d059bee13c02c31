package fee

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "wasit/internal/errors"
	"wasit/internal/models"
	"wasit/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMethods struct {
	mock.Mock
}

func (m *MockMethods) GetByRef(ctx context.Context, ref string) (*models.TransferMethod, error) {
	args := m.Called(ref)
	if v := args.Get(0); v != nil {
		return v.(*models.TransferMethod), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRules struct {
	mock.Mock
}

func (m *MockRules) ListForRoute(ctx context.Context, from, to string) ([]models.TransferFeeRule, error) {
	args := m.Called(from, to)
	if v := args.Get(0); v != nil {
		return v.([]models.TransferFeeRule), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	vfCash     = &models.TransferMethod{ID: "m-vf", Code: "VF_CASH", Name: "Vodafone Cash", Enabled: true}
	orangeCash = &models.TransferMethod{ID: "m-or", Code: "ORANGE_CASH", Name: "Orange Cash", Enabled: true}
	instapay   = &models.TransferMethod{ID: "m-ip", Code: "INSTAPAY", Name: "InstaPay", Enabled: false}
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func rule(id string, feeType models.FeeType, value string, benefit models.BenefitType, lo, hi *decimal.Decimal) models.TransferFeeRule {
	return models.TransferFeeRule{
		ID: id, FromMethodID: vfCash.ID, ToMethodID: orangeCash.ID,
		FeeType: feeType, FeeValue: d(value), BenefitType: benefit,
		MinAmount: lo, MaxAmount: hi, Enabled: true, Priority: 100,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newEvaluator(rules []models.TransferFeeRule) (*Evaluator, *MockMethods, *MockRules) {
	methods := new(MockMethods)
	methods.On("GetByRef", "VF_CASH").Return(vfCash, nil).Maybe()
	methods.On("GetByRef", "ORANGE_CASH").Return(orangeCash, nil).Maybe()
	methods.On("GetByRef", "INSTAPAY").Return(instapay, nil).Maybe()
	methods.On("GetByRef", "PIGEON").Return(nil, repositories.ErrNotFound).Maybe()

	rs := new(MockRules)
	rs.On("ListForRoute", vfCash.ID, orangeCash.ID).Return(rules, nil).Maybe()
	return NewEvaluator(methods, rs, nil), methods, rs
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		rules     []models.TransferFeeRule
		from, to  string
		amount    string
		available bool
		fee       string
		total     string
		message   string
	}{
		{
			name:  "percent fee",
			rules: []models.TransferFeeRule{rule("r1", models.FeeTypePercent, "5", models.BenefitTypeFee, nil, nil)},
			from:  "VF_CASH", to: "ORANGE_CASH", amount: "1000",
			available: true, fee: "50", total: "1050",
		},
		{
			name:  "fixed cashback",
			rules: []models.TransferFeeRule{rule("r1", models.FeeTypeFixed, "30", models.BenefitTypeCashback, nil, nil)},
			from:  "VF_CASH", to: "ORANGE_CASH", amount: "1000",
			available: true, fee: "-30", total: "970",
		},
		{
			name:  "percent rounds half away from zero",
			rules: []models.TransferFeeRule{rule("r1", models.FeeTypePercent, "0.5", models.BenefitTypeFee, nil, nil)},
			from:  "VF_CASH", to: "ORANGE_CASH", amount: "101",
			available: true, fee: "0.51", total: "101.51",
		},
		{
			name: "first matching bracket wins",
			rules: []models.TransferFeeRule{
				rule("r1", models.FeeTypeFixed, "5", models.BenefitTypeFee, dp("0"), dp("499.99")),
				rule("r2", models.FeeTypePercent, "5", models.BenefitTypeFee, dp("500"), dp("5000")),
			},
			from: "VF_CASH", to: "ORANGE_CASH", amount: "500",
			available: true, fee: "25", total: "525",
		},
		{
			name:  "below minimum",
			rules: []models.TransferFeeRule{rule("r1", models.FeeTypePercent, "5", models.BenefitTypeFee, dp("100"), dp("5000"))},
			from:  "VF_CASH", to: "ORANGE_CASH", amount: "50",
			available: false, fee: "0", total: "50", message: "minimum amount is 100",
		},
		{
			name:  "above maximum",
			rules: []models.TransferFeeRule{rule("r1", models.FeeTypePercent, "5", models.BenefitTypeFee, dp("100"), dp("5000"))},
			from:  "VF_CASH", to: "ORANGE_CASH", amount: "6000",
			available: false, fee: "0", total: "6000", message: "maximum amount is 5000",
		},
		{
			name: "no rules",
			from: "VF_CASH", to: "ORANGE_CASH", amount: "100",
			available: false, fee: "0", total: "100", message: MsgRouteNotSupported,
		},
		{
			name: "disabled method",
			from: "VF_CASH", to: "INSTAPAY", amount: "100",
			available: false, fee: "0", total: "100", message: MsgMethodNotAvailable,
		},
		{
			name: "unknown method",
			from: "PIGEON", to: "ORANGE_CASH", amount: "100",
			available: false, fee: "0", total: "100", message: MsgMethodNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, _, _ := newEvaluator(tt.rules)

			res, err := ev.Evaluate(context.Background(), tt.from, tt.to, d(tt.amount))
			require.NoError(t, err)

			assert.Equal(t, tt.available, res.Available)
			assert.True(t, d(tt.fee).Equal(res.Fee), "fee %s", res.Fee)
			assert.True(t, d(tt.total).Equal(res.Total), "total %s", res.Total)
			assert.True(t, res.Total.Equal(res.Amount.Add(res.Fee)))
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestEvaluateUnavailableCarriesTopBounds(t *testing.T) {
	ev, _, _ := newEvaluator([]models.TransferFeeRule{
		rule("r1", models.FeeTypePercent, "5", models.BenefitTypeFee, dp("100"), dp("5000")),
	})

	res, err := ev.Evaluate(context.Background(), "VF_CASH", "ORANGE_CASH", d("10"))
	require.NoError(t, err)
	require.NotNil(t, res.MinAmount)
	assert.Equal(t, "100", res.MinAmount.String())
	assert.Equal(t, "5000", res.MaxAmount.String())
	assert.Nil(t, res.Rule)
}

func TestEvaluateInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		amount   string
		want     error
	}{
		{"missing from", "", "ORANGE_CASH", "10", apperrors.ErrMissingMethod},
		{"same method", "VF_CASH", "vf_cash", "10", apperrors.ErrSameMethod},
		{"zero amount", "VF_CASH", "ORANGE_CASH", "0", apperrors.ErrInvalidAmount},
		{"negative amount", "VF_CASH", "ORANGE_CASH", "-5", apperrors.ErrInvalidAmount},
		{"rounds to zero", "VF_CASH", "ORANGE_CASH", "0.001", apperrors.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, methods, rs := newEvaluator(nil)

			_, err := ev.Evaluate(context.Background(), tt.from, tt.to, d(tt.amount))
			assert.ErrorIs(t, err, tt.want)
			methods.AssertNotCalled(t, "GetByRef", mock.Anything)
			rs.AssertNotCalled(t, "ListForRoute", mock.Anything, mock.Anything)
		})
	}
}

func TestEvaluateSameMethodByIDAndCode(t *testing.T) {
	methods := new(MockMethods)
	methods.On("GetByRef", "VF_CASH").Return(vfCash, nil)
	methods.On("GetByRef", "m-vf").Return(vfCash, nil)

	ev := NewEvaluator(methods, new(MockRules), nil)
	_, err := ev.Evaluate(context.Background(), "VF_CASH", "m-vf", d("100"))
	assert.ErrorIs(t, err, apperrors.ErrSameMethod)
}

func TestEvaluateRepositoryError(t *testing.T) {
	methods := new(MockMethods)
	methods.On("GetByRef", "VF_CASH").Return(nil, errors.New("connection reset"))

	ev := NewEvaluator(methods, new(MockRules), nil)
	_, err := ev.Evaluate(context.Background(), "VF_CASH", "ORANGE_CASH", d("100"))
	assert.ErrorContains(t, err, "connection reset")
}

func TestSelectSkipsDisabled(t *testing.T) {
	off := rule("r1", models.FeeTypeFixed, "1", models.BenefitTypeFee, nil, nil)
	off.Enabled = false
	on := rule("r2", models.FeeTypeFixed, "2", models.BenefitTypeFee, nil, nil)

	got := Select([]models.TransferFeeRule{off, on}, d("10"))
	require.NotNil(t, got)
	assert.Equal(t, "r2", got.ID)
}
