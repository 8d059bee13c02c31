package display

import (
	"errors"
	"fmt"
	"os"

	"wasit/internal/transferapi"
)

// ErrClipboardUnavailable is returned by clipboards that cannot be written on this host.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard receives the copied message text.
type Clipboard interface {
	WriteText(text string) error
}

// FileClipboard writes the text to a file, for terminals without a clipboard.
type FileClipboard struct {
	Path string
}

func (f FileClipboard) WriteText(text string) error {
	if f.Path == "" {
		return ErrClipboardUnavailable
	}
	return os.WriteFile(f.Path, []byte(text), 0o600)
}

// Notice is a transient, non-fatal message for the user.
type Notice struct {
	Text string
	Tone Tone
}

// Handoff presents the broker payload. The link and the text are opaque.
type Handoff struct {
	Link        string
	MessageText string
	BrokerPhone string
}

func NewHandoff(h transferapi.Handoff) Handoff {
	return Handoff{Link: h.WhatsappURL, MessageText: h.MessageText, BrokerPhone: h.BrokerPhone}
}

// CopyMessage copies the raw message text. A failure is reported, never raised.
func (h Handoff) CopyMessage(cb Clipboard) Notice {
	if cb == nil {
		return Notice{Text: "Could not copy the message: " + ErrClipboardUnavailable.Error(), Tone: ToneWarning}
	}
	if err := cb.WriteText(h.MessageText); err != nil {
		return Notice{Text: fmt.Sprintf("Could not copy the message: %v", err), Tone: ToneWarning}
	}
	return Notice{Text: "Message copied", Tone: ToneSuccess}
}
