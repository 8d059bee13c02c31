package workflow

import (
	"testing"
	"time"

	"wasit/internal/transferapi"

	"github.com/stretchr/testify/assert"
)

const (
	testTimeout = 2 * time.Second
	testTick    = 5 * time.Millisecond
)

func TestReduce_TransitionTable(t *testing.T) {
	q := &transferapi.Quote{Available: true}
	form := State{Inputs: Inputs{FromMethodID: "A", ToMethodID: "B", Amount: "10"}}
	quoting := State{Inputs: form.Inputs, Busy: true}
	inQuote := State{Step: StepQuote, Inputs: form.Inputs, Quote: q}
	confirming := State{Step: StepQuote, Inputs: form.Inputs, Quote: q, Busy: true}
	done := State{Step: StepResult, Inputs: form.Inputs, Quote: q, Result: &transferapi.ConfirmResponse{}}

	tests := []struct {
		name   string
		state  State
		action Action
		step   Step
		busy   bool
	}{
		{"form quote request", form, RequestQuote{}, StepForm, true},
		{"quote arrives", quoting, QuoteLoaded{Quote: q}, StepQuote, false},
		{"quote fails", quoting, QuoteFailed{Message: "x"}, StepForm, false},
		{"stale quote dropped", quoting, QuoteLoaded{Generation: 7, Quote: q}, StepForm, false},
		{"request ignored in quote", inQuote, RequestQuote{}, StepQuote, false},
		{"edit", inQuote, Edit{}, StepForm, false},
		{"confirm request", inQuote, RequestConfirm{}, StepQuote, true},
		{"confirmed", confirming, Confirmed{Result: &transferapi.ConfirmResponse{}}, StepResult, false},
		{"confirm fails", confirming, ConfirmFailed{Message: "x"}, StepQuote, false},
		{"edit blocked while confirming", confirming, Edit{}, StepQuote, true},
		{"amount change drops quote", inQuote, SetAmount{Value: "11"}, StepForm, false},
		{"reset", done, Reset{}, StepForm, false},
		{"reset ignored outside result", inQuote, Reset{}, StepQuote, false},
		{"confirm ignored in form", form, RequestConfirm{}, StepForm, false},
		{"stray response ignored", form, QuoteLoaded{Quote: q}, StepForm, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.state, tt.action)
			assert.Equal(t, tt.step, got.Step)
			assert.Equal(t, tt.busy, got.Busy)
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	q := &transferapi.Quote{Available: true}
	s := State{Step: StepQuote, Inputs: Inputs{FromMethodID: "A", ToMethodID: "B", Amount: "10"}, Quote: q}
	_ = Reduce(s, SetFrom{MethodID: "C"})
	assert.Equal(t, "A", s.Inputs.FromMethodID)
	assert.Same(t, q, s.Quote)
}

func TestReduce_GenerationBumps(t *testing.T) {
	s := State{}
	s = Reduce(s, SetFrom{MethodID: "A"})
	assert.Equal(t, uint64(1), s.Generation)
	s = Reduce(s, SetFrom{MethodID: "A"})
	assert.Equal(t, uint64(1), s.Generation, "unchanged value")
	s = Reduce(s, SetCustomer{Name: "x"})
	assert.Equal(t, uint64(1), s.Generation, "customer details do not affect the price")
	s = Reduce(s, Discard{})
	assert.Equal(t, uint64(2), s.Generation)
}

func TestValidate(t *testing.T) {
	amount, msg := Validate(Inputs{FromMethodID: " A ", ToMethodID: "B", Amount: " 12.50 "})
	assert.Empty(t, msg)
	assert.Equal(t, "12.5", amount.String())

	_, msg = Validate(Inputs{FromMethodID: "A", ToMethodID: " A", Amount: "1"})
	assert.Equal(t, MsgSameMethod, msg)

	_, msg = Validate(Inputs{FromMethodID: "vf_cash", ToMethodID: "VF_CASH", Amount: "1"})
	assert.Equal(t, MsgSameMethod, msg)

	for _, amount := range []string{"0.001", "1e-3", "0.004"} {
		_, msg = Validate(Inputs{FromMethodID: "A", ToMethodID: "B", Amount: amount})
		assert.Equal(t, MsgInvalidAmount, msg, amount)
	}

	amount, msg = Validate(Inputs{FromMethodID: "A", ToMethodID: "B", Amount: "0.005"})
	assert.Empty(t, msg, "rounds up to one cent")
	assert.Equal(t, "0.005", amount.String())

	_, msg = Validate(Inputs{FromMethodID: "A", ToMethodID: "B", Amount: "1e400"})
	assert.Empty(t, msg, "large but finite")
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "form", StepForm.String())
	assert.Equal(t, "quote", StepQuote.String())
	assert.Equal(t, "result", StepResult.String())
}
