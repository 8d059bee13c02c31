package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaPublisher_PublishOrder(t *testing.T) {
	w := new(MockWriter)
	p := NewKafkaPublisherWithWriter(w, nil)

	event := OrderEvent{
		Type:        TypeOrderCreated,
		OrderID:     "0b7e",
		OrderNumber: "TR-AB12CD34",
		Status:      "SUBMITTED",
		Amount:      decimal.NewFromInt(1000),
		Fee:         decimal.NewFromInt(50),
		Total:       decimal.NewFromInt(1050),
		BenefitType: "FEE",
		Currency:    "EGP",
		OccurredAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	w.On("WriteMessages", mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 {
			return false
		}
		var got OrderEvent
		if err := json.Unmarshal(msgs[0].Value, &got); err != nil {
			return false
		}
		return string(msgs[0].Key) == "TR-AB12CD34" &&
			got.Type == TypeOrderCreated &&
			got.Total.Equal(decimal.NewFromInt(1050)) &&
			string(msgs[0].Headers[0].Value) == TypeOrderCreated
	})).Return(nil).Once()

	require.NoError(t, p.PublishOrder(context.Background(), event))
	w.AssertExpectations(t)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := new(MockWriter)
	w.On("WriteMessages", mock.Anything).Return(errors.New("broker down"))
	w.On("Close").Return(nil)

	p := NewKafkaPublisherWithWriter(w, nil)
	err := p.PublishOrder(context.Background(), OrderEvent{OrderNumber: "TR-1"})
	assert.ErrorContains(t, err, "broker down")
	assert.NoError(t, p.Close())
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishOrder(context.Background(), OrderEvent{}))
	assert.NoError(t, p.Close())
}
