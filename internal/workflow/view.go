package workflow

import (
	"net/url"

	"wasit/internal/display"
)

// View is what a front end draws for a state.
type View struct {
	Step   Step
	Inputs Inputs
	Busy   bool
	Notice string

	CanEditInputs bool
	CanGetQuote   bool

	Summary    *display.FeeSummary
	CanConfirm bool
	CanEdit    bool

	Result   *ResultView
	CanReset bool
}

type ResultView struct {
	OrderNumber string
	Status      display.Badge
	Amount      string
	Fee         string
	FeeLabel    string
	Total       string
	Handoff     display.Handoff
	// OrdersLink opens the "my orders" lookup for the customer's phone.
	OrdersLink string
}

// Render is a pure function of the state.
func Render(s State) View {
	v := View{Step: s.Step, Inputs: s.Inputs, Busy: s.Busy, Notice: s.Notice}

	switch s.Step {
	case StepForm:
		_, msg := Validate(s.Inputs)
		v.CanEditInputs = true
		v.CanGetQuote = msg == "" && !s.Busy

	case StepQuote:
		if s.Quote != nil {
			summary := display.Summarize(*s.Quote)
			v.Summary = &summary
		}
		v.CanEditInputs = !s.Busy
		v.CanConfirm = s.Quote != nil && s.Quote.Available && !s.Busy
		v.CanEdit = !s.Busy

	case StepResult:
		if s.Result != nil {
			o := s.Result.Order
			label, fee, _ := display.FeeLine(o.BenefitType, o.Fee)
			v.Result = &ResultView{
				OrderNumber: o.OrderNumber,
				Status:      display.StatusBadge(o.Status),
				Amount:      display.Money(o.Amount),
				Fee:         fee,
				FeeLabel:    label,
				Total:       display.Money(o.Total),
				Handoff:     display.NewHandoff(s.Result.WhatsApp),
				OrdersLink:  ordersLink(o.CustomerPhone, s.Inputs.CustomerPhone),
			}
		}
		v.CanReset = true
	}
	return v
}

func ordersLink(phones ...string) string {
	for _, p := range phones {
		if p != "" {
			return "/transfer/orders?phone=" + url.QueryEscape(p)
		}
	}
	return "/transfer/orders"
}
