package workflow

import "wasit/internal/transferapi"

// Action is an input to Reduce.
type Action interface {
	isAction()
}

type (
	SetFrom   struct{ MethodID string }
	SetTo     struct{ MethodID string }
	SetAmount struct{ Value string }
	// SetCustomer does not invalidate a quote: the price does not depend on it.
	SetCustomer struct{ Name, Phone, Whatsapp string }

	RequestQuote struct{}
	QuoteLoaded  struct {
		Generation uint64
		Quote      *transferapi.Quote
	}
	QuoteFailed struct {
		Generation uint64
		Message    string
	}

	Edit           struct{}
	RequestConfirm struct{}
	Confirmed      struct {
		Generation uint64
		Result     *transferapi.ConfirmResponse
	}
	ConfirmFailed struct {
		Generation uint64
		Message    string
	}

	Reset struct{}
	// Discard invalidates everything in flight, e.g. when the view goes away.
	Discard struct{}
)

func (SetFrom) isAction()        {}
func (SetTo) isAction()          {}
func (SetAmount) isAction()      {}
func (SetCustomer) isAction()    {}
func (RequestQuote) isAction()   {}
func (QuoteLoaded) isAction()    {}
func (QuoteFailed) isAction()    {}
func (Edit) isAction()           {}
func (RequestConfirm) isAction() {}
func (Confirmed) isAction()      {}
func (ConfirmFailed) isAction()  {}
func (Reset) isAction()          {}
func (Discard) isAction()        {}

// Reduce returns the state after a. It never mutates s and does no I/O.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetFrom:
		return setRouteField(s, func(in *Inputs) { in.FromMethodID = a.MethodID })
	case SetTo:
		return setRouteField(s, func(in *Inputs) { in.ToMethodID = a.MethodID })
	case SetAmount:
		return setRouteField(s, func(in *Inputs) { in.Amount = a.Value })

	case SetCustomer:
		if s.Step == StepResult || (s.Step == StepQuote && s.Busy) {
			return s
		}
		s.Inputs.CustomerName, s.Inputs.CustomerPhone, s.Inputs.CustomerWhatsapp = a.Name, a.Phone, a.Whatsapp
		return s

	case RequestQuote:
		if s.Step != StepForm || s.Busy {
			return s
		}
		if _, msg := Validate(s.Inputs); msg != "" {
			s.Notice = msg
			return s
		}
		s.Busy, s.Notice = true, ""
		return s

	case QuoteLoaded:
		if s.Step != StepForm || !s.Busy {
			return s
		}
		s.Busy = false
		if a.Generation != s.Generation || a.Quote == nil {
			return s
		}
		s.Step, s.Quote = StepQuote, a.Quote
		return s

	case QuoteFailed:
		if s.Step != StepForm || !s.Busy {
			return s
		}
		s.Busy = false
		if a.Generation == s.Generation {
			s.Notice = a.Message
		}
		return s

	case Edit:
		if s.Step != StepQuote || s.Busy {
			return s
		}
		s.Step, s.Quote, s.Notice = StepForm, nil, ""
		s.Generation++
		return s

	case RequestConfirm:
		if s.Step != StepQuote || s.Busy || s.Quote == nil || !s.Quote.Available {
			return s
		}
		s.Busy, s.Notice = true, ""
		return s

	case Confirmed:
		if s.Step != StepQuote || !s.Busy {
			return s
		}
		s.Busy = false
		if a.Generation != s.Generation || a.Result == nil {
			return s
		}
		s.Step, s.Result = StepResult, a.Result
		return s

	case ConfirmFailed:
		if s.Step != StepQuote || !s.Busy {
			return s
		}
		s.Busy = false
		if a.Generation == s.Generation {
			s.Notice = a.Message
		}
		return s

	case Reset:
		if s.Step != StepResult {
			return s
		}
		return State{Generation: s.Generation + 1}

	case Discard:
		s.Generation++
		return s
	}
	return s
}

// setRouteField applies a route or amount change. In quote it drops the quote and
// returns to form; while a confirm is in flight the inputs are frozen.
func setRouteField(s State, apply func(*Inputs)) State {
	switch {
	case s.Step == StepResult:
		return s
	case s.Step == StepQuote && s.Busy:
		return s
	}

	before := s.Inputs
	apply(&s.Inputs)
	if s.Inputs == before {
		return s
	}

	s.Generation++
	if s.Step == StepQuote {
		s.Step, s.Quote = StepForm, nil
	}
	return s
}
