package handlers

import (
	"context"

	"wasit/internal/models"
	"wasit/internal/repositories"
	"wasit/internal/services/fee"
	"wasit/internal/services/feerule"
	"wasit/internal/services/method"
	"wasit/internal/services/order"
	"wasit/internal/services/transfer"

	"github.com/stretchr/testify/mock"
)

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Quote(ctx context.Context, in transfer.QuoteInput) (*fee.Result, error) {
	args := m.Called(in.FromMethodID, in.ToMethodID, in.Amount.String())
	if v := args.Get(0); v != nil {
		return v.(*fee.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransferService) Confirm(ctx context.Context, in transfer.ConfirmInput) (*transfer.ConfirmResult, error) {
	args := m.Called(in)
	if v := args.Get(0); v != nil {
		return v.(*transfer.ConfirmResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransferService) ListOrders(ctx context.Context, in transfer.OrdersInput) (*transfer.OrdersResult, error) {
	args := m.Called(in)
	if v := args.Get(0); v != nil {
		return v.(*transfer.OrdersResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMethodService struct {
	mock.Mock
}

func (m *MockMethodService) List(ctx context.Context, onlyEnabled bool) ([]models.TransferMethod, error) {
	args := m.Called(onlyEnabled)
	return args.Get(0).([]models.TransferMethod), args.Error(1)
}

func (m *MockMethodService) Get(ctx context.Context, ref string) (*models.TransferMethod, error) {
	args := m.Called(ref)
	if v := args.Get(0); v != nil {
		return v.(*models.TransferMethod), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMethodService) Create(ctx context.Context, in method.Input) (*models.TransferMethod, error) {
	args := m.Called(in)
	if v := args.Get(0); v != nil {
		return v.(*models.TransferMethod), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMethodService) Update(ctx context.Context, id string, in method.Input) (*models.TransferMethod, error) {
	args := m.Called(id, in)
	if v := args.Get(0); v != nil {
		return v.(*models.TransferMethod), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMethodService) SetEnabled(ctx context.Context, id string, enabled bool) (*models.TransferMethod, error) {
	args := m.Called(id, enabled)
	if v := args.Get(0); v != nil {
		return v.(*models.TransferMethod), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMethodService) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

type MockFeeRuleService struct {
	mock.Mock
}

func (m *MockFeeRuleService) List(ctx context.Context, filter repositories.FeeRuleFilter) ([]models.TransferFeeRule, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.TransferFeeRule), args.Error(1)
}

func (m *MockFeeRuleService) Get(ctx context.Context, id string) (*models.TransferFeeRule, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.TransferFeeRule), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFeeRuleService) Create(ctx context.Context, in feerule.Input) (*models.TransferFeeRule, error) {
	args := m.Called(in.FromMethod, in.ToMethod, in.FeeValue.String())
	if v := args.Get(0); v != nil {
		return v.(*models.TransferFeeRule), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFeeRuleService) Update(ctx context.Context, id string, in feerule.Input) (*models.TransferFeeRule, error) {
	args := m.Called(id, in.FromMethod, in.ToMethod, in.FeeValue.String())
	if v := args.Get(0); v != nil {
		return v.(*models.TransferFeeRule), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFeeRuleService) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) List(ctx context.Context, in order.ListInput) (*order.ListResult, error) {
	args := m.Called(in)
	if v := args.Get(0); v != nil {
		return v.(*order.ListResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id string) (*models.TransferOrder, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.TransferOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, id string, in order.UpdateInput) (*models.TransferOrder, error) {
	var status string
	if in.Status != nil {
		status = string(*in.Status)
	}
	args := m.Called(id, status)
	if v := args.Get(0); v != nil {
		return v.(*models.TransferOrder), args.Error(1)
	}
	return nil, args.Error(1)
}
