package services

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"solemate_server/structs"

	"github.com/MonkyMars/gecho"
)

// NotifyService pushes order and contact-form notifications to a Telegram
// chat. It is strictly best effort: an unconfigured bot is a silent no-op,
// and delivery failures are reported to the caller but never block the
// operation that triggered them.
type NotifyService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *http.Client
}

func NewNotifyService(logger *gecho.Logger, cfg *structs.Config) *NotifyService {
	return &NotifyService{
		logger: logger,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Telegram.Timeout},
	}
}

// enabled reports whether the bot credentials are configured. Without them
// every notify call returns (false, nil) without touching the network.
func (ns *NotifyService) enabled() bool {
	return ns.cfg.Telegram.BotToken != "" && ns.cfg.Telegram.ChatID != ""
}

// NotifyOrder sends the new-order summary to the configured chat. The bool
// reports whether a send was attempted at all.
func (ns *NotifyService) NotifyOrder(ctx context.Context, confirmation *structs.OrderConfirmation) (bool, error) {
	if !ns.enabled() {
		return false, nil
	}
	return true, ns.sendMessage(ctx, formatOrderMessage(confirmation))
}

// NotifyContact forwards a contact-form submission to the configured chat.
func (ns *NotifyService) NotifyContact(ctx context.Context, req *structs.ContactRequest) (bool, error) {
	if !ns.enabled() {
		return false, nil
	}
	return true, ns.sendMessage(ctx, formatContactMessage(req))
}

// formatOrderMessage renders the order summary as Telegram HTML. All
// customer-supplied values are escaped.
func formatOrderMessage(c *structs.OrderConfirmation) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>New order %s</b>\n", html.EscapeString(c.OrderNumber))
	fmt.Fprintf(&sb, "Name: %s\n", html.EscapeString(c.FullName))
	fmt.Fprintf(&sb, "Phone: %s\n", html.EscapeString(c.Phone))
	if c.Phone2 != "" {
		fmt.Fprintf(&sb, "Alt phone: %s\n", html.EscapeString(c.Phone2))
	}
	fmt.Fprintf(&sb, "Address: %s\n\n", html.EscapeString(c.Address))

	for _, line := range c.Lines {
		name := line.ProductName
		if line.VariantName != "" {
			name += " / " + line.VariantName
		}
		if line.SizeValue != "" {
			name += ", size " + line.SizeValue
		}
		fmt.Fprintf(&sb, "%s x%d - %s\n", html.EscapeString(name), line.Quantity, FormatCents(line.LineTotalCents))
	}

	fmt.Fprintf(&sb, "\n<b>Total: %s</b>", FormatCents(c.TotalCents))
	return sb.String()
}

// formatContactMessage renders a contact-form submission as Telegram HTML.
func formatContactMessage(req *structs.ContactRequest) string {
	var sb strings.Builder

	sb.WriteString("<b>Contact request</b>\n")
	fmt.Fprintf(&sb, "Name: %s\n", html.EscapeString(req.Name))
	fmt.Fprintf(&sb, "Phone: %s\n", html.EscapeString(req.Phone))
	if req.Message != "" {
		fmt.Fprintf(&sb, "\n%s", html.EscapeString(req.Message))
	}
	return sb.String()
}

// FormatCents renders a cent amount as a decimal money string, e.g. 129900
// becomes "1299.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// sendMessage posts one message to the Bot API sendMessage endpoint.
func (ns *NotifyService) sendMessage(ctx context.Context, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(ns.cfg.Telegram.APIBase, "/"), ns.cfg.Telegram.BotToken)

	form := url.Values{}
	form.Set("chat_id", ns.cfg.Telegram.ChatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ns.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	ns.logger.Debug("Notification delivered", gecho.Field("status", resp.StatusCode))
	return nil
}
