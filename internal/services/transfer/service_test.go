package transfer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "wasit/internal/errors"
	"wasit/internal/events"
	"wasit/internal/models"
	"wasit/internal/repositories"
	"wasit/internal/services/fee"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, fromRef, toRef string, amount decimal.Decimal) (*fee.Result, error) {
	args := m.Called(fromRef, toRef, amount.String())
	if v := args.Get(0); v != nil {
		return v.(*fee.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Create(ctx context.Context, order *models.TransferOrder) error {
	args := m.Called(order)
	if args.Error(0) == nil && order.ID == "" {
		order.ID = "order-1"
	}
	return args.Error(0)
}

func (m *MockOrderStore) List(ctx context.Context, filter repositories.OrderFilter) ([]models.TransferOrder, int64, error) {
	args := m.Called(filter)
	if v := args.Get(0); v != nil {
		return v.([]models.TransferOrder), args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrder(ctx context.Context, event events.OrderEvent) error {
	return m.Called(event).Error(0)
}

func (m *MockPublisher) Close() error { return nil }

var (
	vfCash     = &models.TransferMethod{ID: "m-vf", Code: "VF_CASH", Name: "Vodafone Cash", Enabled: true}
	orangeCash = &models.TransferMethod{ID: "m-or", Code: "ORANGE_CASH", Name: "Orange Cash", Enabled: true}
)

func available(amount, feeAmount, total string, benefit models.BenefitType) *fee.Result {
	return &fee.Result{
		Available:   true,
		From:        vfCash,
		To:          orangeCash,
		Amount:      decimal.RequireFromString(amount),
		Fee:         decimal.RequireFromString(feeAmount),
		Total:       decimal.RequireFromString(total),
		BenefitType: benefit,
		Rule:        &models.TransferFeeRule{ID: "rule-1"},
	}
}

func newTestService(t *testing.T, ev Evaluator, store OrderStore, pub events.Publisher, cfg Config) *service {
	t.Helper()
	svc, err := NewService(ev, store, pub, nil, cfg, nil)
	require.NoError(t, err)
	s := svc.(*service)
	s.newNumber = func() string { return "TR-ABCD2345" }
	s.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Quote(t *testing.T) {
	ev := new(MockEvaluator)
	ev.On("Evaluate", "VF_CASH", "ORANGE_CASH", "500").Return(available("500", "25", "525", models.BenefitTypeFee), nil)

	s := newTestService(t, ev, new(MockOrderStore), nil, Config{})
	res, err := s.Quote(context.Background(), QuoteInput{
		FromMethodID: "VF_CASH", ToMethodID: "ORANGE_CASH", Amount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, "525", res.Total.String())
	ev.AssertExpectations(t)
}

func TestService_Confirm(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		in         ConfirmInput
		setupMock  func(*MockEvaluator, *MockOrderStore, *MockPublisher)
		wantStatus models.OrderStatus
		wantErr    error
	}{
		{
			name: "creates submitted order",
			cfg:  Config{BrokerPhone: "+20 100 000 0000", Currency: "EGP"},
			in: ConfirmInput{
				QuoteInput:    QuoteInput{FromMethodID: "VF_CASH", ToMethodID: "ORANGE_CASH", Amount: decimal.NewFromInt(1000)},
				CustomerName:  "  <b>Mona</b>  Ali ",
				CustomerPhone: "0100-123-4567",
			},
			setupMock: func(ev *MockEvaluator, store *MockOrderStore, pub *MockPublisher) {
				ev.On("Evaluate", "VF_CASH", "ORANGE_CASH", "1000").Return(available("1000", "50", "1050", models.BenefitTypeFee), nil)
				store.On("Create", mock.MatchedBy(func(o *models.TransferOrder) bool {
					return o.CustomerName == "Mona Ali" && o.CustomerPhone == "01001234567" &&
						o.Total.Equal(decimal.NewFromInt(1050)) && *o.FeeRuleID == "rule-1"
				})).Return(nil)
				pub.On("PublishOrder", mock.MatchedBy(func(e events.OrderEvent) bool {
					return e.Type == events.TypeOrderCreated && e.OrderNumber == "TR-ABCD2345" && e.FromMethodCode == "VF_CASH"
				})).Return(nil)
			},
			wantStatus: models.OrderStatusSubmitted,
		},
		{
			name: "review mode holds the order",
			cfg:  Config{BrokerPhone: "201000000000", RequireReview: true},
			in: ConfirmInput{
				QuoteInput: QuoteInput{FromMethodID: "VF_CASH", ToMethodID: "ORANGE_CASH", Amount: decimal.NewFromInt(1000)},
			},
			setupMock: func(ev *MockEvaluator, store *MockOrderStore, pub *MockPublisher) {
				ev.On("Evaluate", "VF_CASH", "ORANGE_CASH", "1000").Return(available("1000", "-30", "970", models.BenefitTypeCashback), nil)
				store.On("Create", mock.Anything).Return(nil)
				pub.On("PublishOrder", mock.Anything).Return(nil)
			},
			wantStatus: models.OrderStatusPendingConfirmation,
		},
		{
			name: "publish failure does not fail confirm",
			in: ConfirmInput{
				QuoteInput: QuoteInput{FromMethodID: "VF_CASH", ToMethodID: "ORANGE_CASH", Amount: decimal.NewFromInt(1000)},
			},
			setupMock: func(ev *MockEvaluator, store *MockOrderStore, pub *MockPublisher) {
				ev.On("Evaluate", "VF_CASH", "ORANGE_CASH", "1000").Return(available("1000", "50", "1050", models.BenefitTypeFee), nil)
				store.On("Create", mock.Anything).Return(nil)
				pub.On("PublishOrder", mock.Anything).Return(errors.New("broker down"))
			},
			wantStatus: models.OrderStatusSubmitted,
		},
		{
			name: "unavailable route",
			in: ConfirmInput{
				QuoteInput: QuoteInput{FromMethodID: "VF_CASH", ToMethodID: "ORANGE_CASH", Amount: decimal.NewFromInt(50)},
			},
			setupMock: func(ev *MockEvaluator, store *MockOrderStore, pub *MockPublisher) {
				ev.On("Evaluate", "VF_CASH", "ORANGE_CASH", "50").Return(&fee.Result{Message: "minimum amount is 100"}, nil)
			},
			wantErr: apperrors.ErrQuoteUnavailable,
		},
		{
			name: "invalid phone",
			in: ConfirmInput{
				QuoteInput:    QuoteInput{FromMethodID: "VF_CASH", ToMethodID: "ORANGE_CASH", Amount: decimal.NewFromInt(50)},
				CustomerPhone: "call me maybe",
			},
			wantErr: apperrors.ErrInvalidRequest,
		},
		{
			name: "same method",
			in: ConfirmInput{
				QuoteInput: QuoteInput{FromMethodID: "VF_CASH", ToMethodID: "VF_CASH", Amount: decimal.NewFromInt(50)},
			},
			setupMock: func(ev *MockEvaluator, store *MockOrderStore, pub *MockPublisher) {
				ev.On("Evaluate", "VF_CASH", "VF_CASH", "50").Return(nil, apperrors.ErrSameMethod)
			},
			wantErr: apperrors.ErrSameMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := new(MockEvaluator)
			store := new(MockOrderStore)
			pub := new(MockPublisher)
			if tt.setupMock != nil {
				tt.setupMock(ev, store, pub)
			}

			s := newTestService(t, ev, store, pub, tt.cfg)
			res, err := s.Confirm(context.Background(), tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				store.AssertNotCalled(t, "Create", mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantStatus, res.Order.Status)
				assert.Equal(t, "TR-ABCD2345", res.Order.OrderNumber)
				assert.True(t, strings.HasPrefix(res.Handoff.WhatsappURL, "https://wa.me/"))
				assert.Contains(t, res.Handoff.MessageText, "TR-ABCD2345")
			}

			ev.AssertExpectations(t)
			store.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestService_ConfirmRetriesOrderNumberCollision(t *testing.T) {
	ev := new(MockEvaluator)
	ev.On("Evaluate", "VF_CASH", "ORANGE_CASH", "1000").Return(available("1000", "50", "1050", models.BenefitTypeFee), nil)
	store := new(MockOrderStore)
	store.On("Create", mock.Anything).Return(repositories.ErrDuplicate).Once()
	store.On("Create", mock.Anything).Return(nil).Once()

	s := newTestService(t, ev, store, nil, Config{})
	n := 0
	s.newNumber = func() string {
		n++
		if n == 1 {
			return "TR-TAKEN222"
		}
		return "TR-FRESH333"
	}

	res, err := s.Confirm(context.Background(), ConfirmInput{
		QuoteInput: QuoteInput{FromMethodID: "VF_CASH", ToMethodID: "ORANGE_CASH", Amount: decimal.NewFromInt(1000)},
	})
	require.NoError(t, err)
	assert.Equal(t, "TR-FRESH333", res.Order.OrderNumber)
	store.AssertNumberOfCalls(t, "Create", 2)
}

func TestService_ListOrders(t *testing.T) {
	t.Run("phone required", func(t *testing.T) {
		s := newTestService(t, new(MockEvaluator), new(MockOrderStore), nil, Config{})
		_, err := s.ListOrders(context.Background(), OrdersInput{Phone: "  "})
		assert.ErrorIs(t, err, apperrors.ErrPhoneRequired)
	})

	t.Run("unknown status", func(t *testing.T) {
		s := newTestService(t, new(MockEvaluator), new(MockOrderStore), nil, Config{})
		_, err := s.ListOrders(context.Background(), OrdersInput{Phone: "0100", Status: "LOST"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	})

	t.Run("paginates with capped limit", func(t *testing.T) {
		store := new(MockOrderStore)
		store.On("List", repositories.OrderFilter{
			Phone: "01001234567", Status: models.OrderStatusSubmitted, Offset: 100, Limit: 100,
		}).Return([]models.TransferOrder{{OrderNumber: "TR-1"}}, int64(101), nil)

		s := newTestService(t, new(MockEvaluator), store, nil, Config{})
		res, err := s.ListOrders(context.Background(), OrdersInput{
			Phone: "0100 123 4567", Status: "SUBMITTED", Page: 2, Limit: 1000,
		})
		require.NoError(t, err)
		assert.Len(t, res.Orders, 1)
		assert.Equal(t, int64(2), res.Pagination.Meta(res.Total).TotalPages)
		store.AssertExpectations(t)
	})
}
