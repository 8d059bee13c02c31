package transfer

import (
	"net/url"
	"strings"

	"wasit/internal/models"
	"wasit/internal/transferapi"

	"github.com/shopspring/decimal"
)

const waBaseURL = "https://wa.me/"

// BuildHandoff renders the message the customer sends to the broker over
// WhatsApp, and the wa.me link that pre-fills it.
func BuildHandoff(order *models.TransferOrder, brokerPhone, currency string) transferapi.Handoff {
	text := HandoffText(order, currency)
	encoded := EncodeMessage(text)
	phone := digitsOnly(brokerPhone)

	return transferapi.Handoff{
		MessageText:    text,
		EncodedMessage: encoded,
		WhatsappURL:    waBaseURL + phone + "?text=" + encoded,
		BrokerPhone:    phone,
	}
}

// HandoffText is the plain message body, one field per line.
func HandoffText(order *models.TransferOrder, currency string) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}

	b.WriteString("طلب تحويل جديد\n")
	line("رقم الطلب", order.OrderNumber)
	line("من", methodName(order.FromMethod, order.FromMethodID))
	line("إلى", methodName(order.ToMethod, order.ToMethodID))
	line("المبلغ", money(order.Amount, currency))
	if order.BenefitType == models.BenefitTypeCashback {
		line("كاش باك", money(order.Fee.Abs(), currency))
	} else {
		line("الرسوم", money(order.Fee, currency))
	}
	line("الإجمالي", money(order.Total, currency))
	if order.CustomerName != "" {
		line("الاسم", order.CustomerName)
	}
	if order.CustomerPhone != "" {
		line("الهاتف", order.CustomerPhone)
	}
	if order.CustomerWhatsapp != "" && order.CustomerWhatsapp != order.CustomerPhone {
		line("واتساب", order.CustomerWhatsapp)
	}
	return strings.TrimRight(b.String(), "\n")
}

// EncodeMessage percent-encodes text for a wa.me query. Spaces become %20, not
// '+', which some WhatsApp clients show literally.
func EncodeMessage(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func methodName(m *models.TransferMethod, fallback string) string {
	if m != nil && m.Name != "" {
		return m.Name
	}
	return fallback
}

func money(v decimal.Decimal, currency string) string {
	s := v.StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
