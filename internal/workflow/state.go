// Package workflow is the customer quote/confirm state machine. Reduce holds every
// transition; Workflow drives it against the API and guards in-flight requests.
package workflow

import (
	"strings"

	"wasit/internal/transferapi"

	"github.com/shopspring/decimal"
)

type Step int

const (
	StepForm Step = iota
	StepQuote
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepForm:
		return "form"
	case StepQuote:
		return "quote"
	case StepResult:
		return "result"
	}
	return "unknown"
}

// Inputs are the raw field values as typed.
type Inputs struct {
	FromMethodID     string
	ToMethodID       string
	Amount           string
	CustomerName     string
	CustomerPhone    string
	CustomerWhatsapp string
}

// State is one snapshot of a workflow instance.
type State struct {
	Step   Step
	Inputs Inputs
	Quote  *transferapi.Quote
	Result *transferapi.ConfirmResponse
	// Busy is set while a quote or confirm request is outstanding.
	Busy bool
	// Notice is the last user-visible error, cleared by the next request.
	Notice string
	// Generation changes whenever the inputs or the instance are invalidated.
	// A response tagged with an older generation is dropped.
	Generation uint64
}

const (
	MsgSelectMethods = "Choose both transfer methods"
	MsgSameMethod    = "Source and destination methods must differ"
	MsgInvalidAmount = "Enter an amount greater than zero"
	// MsgRequestFailed is shown when the server gives no message.
	MsgRequestFailed = "Something went wrong, please try again"
)

// Validate checks the quote preconditions and returns the parsed amount, or the
// message to show.
func Validate(in Inputs) (decimal.Decimal, string) {
	from, to := strings.TrimSpace(in.FromMethodID), strings.TrimSpace(in.ToMethodID)
	if from == "" || to == "" {
		return decimal.Zero, MsgSelectMethods
	}
	// Method codes are case-insensitive on the server.
	if strings.EqualFold(from, to) {
		return decimal.Zero, MsgSameMethod
	}
	// The server prices in whole cents, so anything that rounds to zero is out.
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil || !amount.Round(2).IsPositive() {
		return decimal.Zero, MsgInvalidAmount
	}
	return amount, ""
}

// QuoteRequest is the request body the current inputs produce. Only meaningful
// once Validate passes.
func (in Inputs) QuoteRequest() transferapi.QuoteRequest {
	amount, _ := Validate(in)
	return transferapi.QuoteRequest{
		FromMethodID: strings.TrimSpace(in.FromMethodID),
		ToMethodID:   strings.TrimSpace(in.ToMethodID),
		Amount:       amount,
	}
}

func (in Inputs) ConfirmRequest() transferapi.ConfirmRequest {
	q := in.QuoteRequest()
	return transferapi.ConfirmRequest{
		FromMethodID:     q.FromMethodID,
		ToMethodID:       q.ToMethodID,
		Amount:           q.Amount,
		CustomerName:     strings.TrimSpace(in.CustomerName),
		CustomerPhone:    strings.TrimSpace(in.CustomerPhone),
		CustomerWhatsapp: strings.TrimSpace(in.CustomerWhatsapp),
	}
}
