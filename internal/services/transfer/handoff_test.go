package transfer

import (
	"net/url"
	"testing"

	"wasit/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHandoff(t *testing.T) {
	order := &models.TransferOrder{
		OrderNumber:   "TR-ABCD2345",
		FromMethod:    vfCash,
		ToMethod:      orangeCash,
		Amount:        decimal.NewFromInt(1000),
		Fee:           decimal.NewFromInt(-30),
		Total:         decimal.NewFromInt(970),
		BenefitType:   models.BenefitTypeCashback,
		CustomerName:  "Mona Ali",
		CustomerPhone: "01001234567",
	}

	h := BuildHandoff(order, "+20 100-000-0000", "EGP")

	want := "طلب تحويل جديد\n" +
		"رقم الطلب: TR-ABCD2345\n" +
		"من: Vodafone Cash\n" +
		"إلى: Orange Cash\n" +
		"المبلغ: 1000.00 EGP\n" +
		"كاش باك: 30.00 EGP\n" +
		"الإجمالي: 970.00 EGP\n" +
		"الاسم: Mona Ali\n" +
		"الهاتف: 01001234567"
	assert.Equal(t, want, h.MessageText)
	assert.Equal(t, "201000000000", h.BrokerPhone)
	assert.NotContains(t, h.EncodedMessage, "+")
	assert.NotContains(t, h.EncodedMessage, " ")
	assert.Contains(t, h.EncodedMessage, "%20")
	assert.Equal(t, "https://wa.me/201000000000?text="+h.EncodedMessage, h.WhatsappURL)

	u, err := url.Parse(h.WhatsappURL)
	require.NoError(t, err)
	assert.Equal(t, want, u.Query().Get("text"))
}

func TestEncodeMessage(t *testing.T) {
	assert.Equal(t, "a%20b%2Bc%26d%3De", EncodeMessage("a b+c&d=e"))
}
