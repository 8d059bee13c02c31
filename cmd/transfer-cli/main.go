// Command transfer-cli drives the quote/confirm workflow from a terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"wasit/internal/client"
	"wasit/internal/config"
	"wasit/internal/display"
	"wasit/internal/logger"
	"wasit/internal/transferapi"
	"wasit/internal/workflow"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	apiURL := flag.String("api", config.GetEnv("WASIT_API_URL", "http://localhost:3000/api"), "base URL of the API")
	copyTo := flag.String("copy-to", "", "write the broker message to this file instead of a clipboard")
	ordersPhone := flag.String("orders", "", "list the orders of this phone number and exit")
	timeout := flag.Duration("timeout", 0, "per-request timeout (0 uses the HTTP client defaults)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	env := "production"
	if *verbose {
		env = "development"
	}
	zl := logger.Must(env)
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(*apiURL, client.WithLogger(zl))
	app := &cli{
		api:     api,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		timeout: *timeout,
	}
	if *copyTo != "" {
		app.clipboard = display.FileClipboard{Path: *copyTo}
	}

	var err error
	if *ordersPhone != "" {
		err = app.listOrders(ctx, *ordersPhone)
	} else {
		err = app.run(ctx, workflow.New(api, zl))
	}
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		zl.Error("transfer-cli failed", zap.String("api", *apiURL), zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		_ = zl.Sync()
		os.Exit(1)
	}
}

type methodLister interface {
	Methods(ctx context.Context) ([]transferapi.Method, error)
	Orders(ctx context.Context, q transferapi.OrdersQuery) (*transferapi.OrdersPage, error)
}

type cli struct {
	api       methodLister
	in        *bufio.Reader
	out       io.Writer
	clipboard display.Clipboard
	timeout   time.Duration
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *cli) prompt(label string) (string, error) {
	c.printf("%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *cli) call(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *cli) run(ctx context.Context, w *workflow.Workflow) error {
	defer w.Close()

	reqCtx, cancel := c.call(ctx)
	methods, err := c.api.Methods(reqCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("load methods: %s", client.MessageOf(err, err.Error()))
	}
	if len(methods) < 2 {
		return errors.New("fewer than two transfer methods are available")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		v := w.View()
		switch v.Step {
		case workflow.StepForm:
			if err := c.form(ctx, w, methods); err != nil {
				return err
			}
		case workflow.StepQuote:
			if err := c.quote(ctx, w, v); err != nil {
				return err
			}
		case workflow.StepResult:
			again, err := c.result(w, v)
			if err != nil || !again {
				return err
			}
			w.Reset()
		}
	}
}

func (c *cli) form(ctx context.Context, w *workflow.Workflow, methods []transferapi.Method) error {
	c.printf("\nTransfer methods:\n")
	for i, m := range methods {
		c.printf("  %d) %s (%s)\n", i+1, m.Name, m.Code)
	}

	from, err := c.pickMethod("From", methods)
	if err != nil {
		return err
	}
	to, err := c.pickMethod("To", methods)
	if err != nil {
		return err
	}
	amount, err := c.prompt("Amount")
	if err != nil {
		return err
	}
	w.SetFrom(from)
	w.SetTo(to)
	w.SetAmount(amount)

	reqCtx, cancel := c.call(ctx)
	w.GetQuote(reqCtx)
	cancel()

	if s := w.State(); s.Step == workflow.StepForm && s.Notice != "" {
		c.printf("! %s\n", s.Notice)
	}
	return nil
}

// pickMethod accepts a list number or a method code.
func (c *cli) pickMethod(label string, methods []transferapi.Method) (string, error) {
	answer, err := c.prompt(label)
	if err != nil {
		return "", err
	}
	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(methods) {
		return methods[n-1].ID, nil
	}
	for _, m := range methods {
		if strings.EqualFold(m.Code, answer) {
			return m.ID, nil
		}
	}
	return answer, nil
}

func (c *cli) quote(ctx context.Context, w *workflow.Workflow, v workflow.View) error {
	if v.Summary != nil {
		c.printf("\n%s", v.Summary)
	}
	if v.Notice != "" {
		c.printf("! %s\n", v.Notice)
	}

	options := "[e]dit"
	if v.CanConfirm {
		options = "[c]onfirm, " + options
	}
	answer, err := c.prompt(options)
	if err != nil {
		return err
	}

	switch strings.ToLower(answer) {
	case "c", "confirm":
		if !v.CanConfirm {
			c.printf("! This quote cannot be confirmed\n")
			return nil
		}
		name, err := c.prompt("Your name (optional)")
		if err != nil {
			return err
		}
		phone, err := c.prompt("Your phone (optional)")
		if err != nil {
			return err
		}
		w.SetCustomer(name, phone, "")

		reqCtx, cancel := c.call(ctx)
		w.Confirm(reqCtx)
		cancel()
	default:
		w.Edit()
	}
	return nil
}

func (c *cli) result(w *workflow.Workflow, v workflow.View) (bool, error) {
	r := v.Result
	if r == nil {
		return false, errors.New("confirmation returned no order")
	}
	c.printf("\nOrder %s  [%s]\n", r.OrderNumber, r.Status.Label)
	c.printf("Amount: %s\n%s: %s\nTotal: %s\n", r.Amount, r.FeeLabel, r.Fee, r.Total)
	c.printf("\nContinue with the broker on WhatsApp:\n  %s\n", r.Handoff.Link)

	n := w.CopyMessage(c.clipboard)
	c.printf("%s\n", n.Text)
	c.printf("Your orders: %s\n", r.OrdersLink)

	answer, err := c.prompt("Create another transfer? [y/N]")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}

func (c *cli) listOrders(ctx context.Context, phone string) error {
	reqCtx, cancel := c.call(ctx)
	defer cancel()

	page, err := c.api.Orders(reqCtx, transferapi.OrdersQuery{Phone: phone})
	if err != nil {
		return errors.New(client.MessageOf(err, err.Error()))
	}
	if len(page.Data) == 0 {
		c.printf("No orders for %s\n", phone)
		return nil
	}
	for _, o := range page.Data {
		c.printf("%s  %-22s  %s → %s  %s\n",
			o.OrderNumber, display.StatusBadge(o.Status).Label,
			o.FromMethod.Label(), o.ToMethod.Label(), display.Money(o.Total))
	}
	c.printf("page %d of %d (%d orders)\n", page.Meta.CurrentPage, page.Meta.TotalPages, page.Meta.TotalItems)
	return nil
}
