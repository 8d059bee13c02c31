// Package display turns transfer API payloads into presentation values. It does no
// arithmetic on money: every figure is the server's, only formatted.
package display

import (
	"strings"

	"wasit/internal/transferapi"

	"github.com/shopspring/decimal"
)

// Tone is the visual treatment a line should get.
type Tone string

const (
	ToneNeutral     Tone = "neutral"
	ToneFee         Tone = "fee"
	ToneCashback    Tone = "cashback"
	ToneUnavailable Tone = "unavailable"
	ToneSuccess     Tone = "success"
	ToneWarning     Tone = "warning"
	ToneDanger      Tone = "danger"
)

const (
	LabelFee      = "Fee"
	LabelCashback = "Cashback"
	// UnavailableText is shown when the server gives no reason.
	UnavailableText = "This transfer is not available"
)

// FeeSummary is the rendered form of a quote.
type FeeSummary struct {
	Available bool
	// Message is the server's text, verbatim. Only set when unavailable.
	Message string
	Route   string
	Amount  string
	// FeeLabel, Fee and FeeTone are empty when unavailable.
	FeeLabel string
	Fee      string
	FeeTone  Tone
	Total    string
	// MinAmount and MaxAmount are empty when the quote carries no bound.
	MinAmount string
	MaxAmount string
}

// Summarize renders q.
func Summarize(q transferapi.Quote) FeeSummary {
	s := FeeSummary{
		Available: q.Available,
		Route:     q.FromMethod.Label() + " → " + q.ToMethod.Label(),
		Amount:    Money(q.Amount),
		MinAmount: optionalMoney(q.MinAmount),
		MaxAmount: optionalMoney(q.MaxAmount),
	}

	if !q.Available {
		s.Message = q.Message
		if s.Message == "" {
			s.Message = UnavailableText
		}
		return s
	}

	s.Total = Money(q.Total)
	s.FeeLabel, s.Fee, s.FeeTone = FeeLine(q.BenefitType, q.Fee)
	return s
}

// FeeLine labels a signed fee. Cashback shows its magnitude with a minus sign,
// a fee shows as an addition.
func FeeLine(benefitType string, fee decimal.Decimal) (label, value string, tone Tone) {
	if benefitType == transferapi.BenefitCashback {
		return LabelCashback, "-" + Money(fee.Abs()), ToneCashback
	}
	return LabelFee, "+" + Money(fee), ToneFee
}

// Lines is the summary as label/value rows, in display order.
func (s FeeSummary) Lines() [][2]string {
	rows := [][2]string{{"Route", s.Route}, {"Amount", s.Amount}}
	if s.Available {
		rows = append(rows, [2]string{s.FeeLabel, s.Fee}, [2]string{"Total", s.Total})
	} else {
		rows = append(rows, [2]string{"Unavailable", s.Message})
	}
	if s.MinAmount != "" {
		rows = append(rows, [2]string{"Minimum", s.MinAmount})
	}
	if s.MaxAmount != "" {
		rows = append(rows, [2]string{"Maximum", s.MaxAmount})
	}
	return rows
}

func (s FeeSummary) String() string {
	var b strings.Builder
	for _, row := range s.Lines() {
		b.WriteString(row[0])
		b.WriteString(": ")
		b.WriteString(row[1])
		b.WriteByte('\n')
	}
	return b.String()
}

// Money formats a server amount without changing its value.
func Money(d decimal.Decimal) string {
	return d.String()
}

func optionalMoney(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return Money(*d)
}
