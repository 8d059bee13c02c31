package workflow

import (
	"context"
	"sync"

	"wasit/internal/client"
	"wasit/internal/display"
	"wasit/internal/transferapi"

	"go.uber.org/zap"
)

// API is the part of the transfer API the workflow calls.
type API interface {
	Quote(ctx context.Context, req transferapi.QuoteRequest) (*transferapi.Quote, error)
	Confirm(ctx context.Context, req transferapi.ConfirmRequest) (*transferapi.ConfirmResponse, error)
}

// Workflow owns one quote/confirm instance. It is safe for concurrent use; the
// network calls run on the caller's goroutine without holding the lock.
type Workflow struct {
	api    API
	logger *zap.Logger

	mu     sync.Mutex
	state  State
	closed bool
}

func New(api API, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{api: api, logger: logger.With(zap.String("component", "transfer_workflow"))}
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) dispatch(a Action) State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return w.state
	}
	w.state = Reduce(w.state, a)
	return w.state
}

func (w *Workflow) SetFrom(id string) { w.dispatch(SetFrom{MethodID: id}) }
func (w *Workflow) SetTo(id string)   { w.dispatch(SetTo{MethodID: id}) }
func (w *Workflow) SetAmount(v string) {
	w.dispatch(SetAmount{Value: v})
}

func (w *Workflow) SetCustomer(name, phone, whatsapp string) {
	w.dispatch(SetCustomer{Name: name, Phone: phone, Whatsapp: whatsapp})
}

func (w *Workflow) Edit()  { w.dispatch(Edit{}) }
func (w *Workflow) Reset() { w.dispatch(Reset{}) }

// GetQuote validates the inputs and, when they pass, issues one quote request.
// Validation and server failures end up in State().Notice.
func (w *Workflow) GetQuote(ctx context.Context) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	before := w.state
	w.state = Reduce(w.state, RequestQuote{})
	if !w.state.Busy || before.Busy {
		w.mu.Unlock()
		return
	}
	gen, req := w.state.Generation, w.state.Inputs.QuoteRequest()
	w.mu.Unlock()

	q, err := w.api.Quote(ctx, req)
	if err != nil {
		w.logger.Debug("quote failed", zap.Error(err))
		w.dispatch(QuoteFailed{Generation: gen, Message: client.MessageOf(err, MsgRequestFailed)})
		return
	}
	w.dispatch(QuoteLoaded{Generation: gen, Quote: q})
}

// Confirm creates the order for the current quote. It does nothing unless the
// quote is available.
func (w *Workflow) Confirm(ctx context.Context) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	before := w.state
	w.state = Reduce(w.state, RequestConfirm{})
	if !w.state.Busy || before.Busy {
		w.mu.Unlock()
		return
	}
	gen, req := w.state.Generation, w.state.Inputs.ConfirmRequest()
	w.mu.Unlock()

	res, err := w.api.Confirm(ctx, req)
	if err != nil {
		w.logger.Debug("confirm failed", zap.Error(err))
		w.dispatch(ConfirmFailed{Generation: gen, Message: client.MessageOf(err, MsgRequestFailed)})
		return
	}
	w.dispatch(Confirmed{Generation: gen, Result: res})
}

// CopyMessage copies the handoff text. It never changes the state.
func (w *Workflow) CopyMessage(cb display.Clipboard) display.Notice {
	s := w.State()
	if s.Step != StepResult || s.Result == nil {
		return display.Notice{Text: "Nothing to copy yet", Tone: display.ToneWarning}
	}
	return display.NewHandoff(s.Result.WhatsApp).CopyMessage(cb)
}

// Close detaches the instance. Responses that arrive afterwards are dropped.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.state = Reduce(w.state, Discard{})
	w.closed = true
}

func (w *Workflow) View() View {
	return Render(w.State())
}
