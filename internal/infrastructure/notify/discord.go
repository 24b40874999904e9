// Package notify delivers outbox notifications to Discord webhooks.
// Each office configures its own webhook; offices without one are
// skipped silently.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"oilbook/internal/core/apperror"
	"oilbook/internal/domain"
	"oilbook/internal/domain/catalogs/office"
	"oilbook/internal/domain/documents/invoice"
	"oilbook/internal/domain/documents/purchase"
	"oilbook/internal/infrastructure/storage/postgres"
	"oilbook/pkg/logger"
)

const (
	colorGreen = 0x22c55e
	colorBlue  = 0x3b82f6
)

// Embed is a Discord rich embed.
type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp"`
}

// EmbedField is one name/value pair inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type webhookBody struct {
	Embeds []Embed `json:"embeds"`
}

// DiscordNotifier implements postgres.OutboxHandler by posting embeds
// to the office's configured webhook.
type DiscordNotifier struct {
	offices office.Repository
	client  *http.Client
}

// NewDiscordNotifier creates a notifier with a bounded HTTP client.
func NewDiscordNotifier(offices office.Repository) *DiscordNotifier {
	return &DiscordNotifier{
		offices: offices,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Handle delivers one outbox message. An office without a webhook, or a
// missing office, drops the message without error.
func (n *DiscordNotifier) Handle(ctx context.Context, msg *postgres.OutboxMessage) error {
	o, err := n.offices.GetByID(ctx, msg.OfficeID)
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.Warn(ctx, "outbox message for unknown office", "office_id", msg.OfficeID)
			return nil
		}
		return err
	}

	if o.DiscordWebhook == nil || *o.DiscordWebhook == "" {
		return nil
	}

	embed, err := buildEmbed(msg.EventType, msg.Payload)
	if err != nil {
		logger.Warn(ctx, "unrenderable outbox message", "event", msg.EventType, "error", err)
		return nil
	}

	return n.post(ctx, *o.DiscordWebhook, embed)
}

// buildEmbed renders the event payload into a Discord embed.
func buildEmbed(eventType string, payload []byte) (Embed, error) {
	switch eventType {
	case domain.EventInvoiceCreated:
		var inv invoice.Invoice
		if err := json.Unmarshal(payload, &inv); err != nil {
			return Embed{}, fmt.Errorf("decode invoice payload: %w", err)
		}
		return Embed{
			Title:       "🧾 บิลขายใหม่",
			Description: "เลขที่: " + inv.Number,
			Color:       colorGreen,
			Fields: []EmbedField{
				{Name: "ลูกค้า", Value: inv.DisplayName(), Inline: true},
				{Name: "ยอดเงิน", Value: inv.Total.StringFixed(2) + " บาท", Inline: true},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}, nil

	case domain.EventPurchaseCreated:
		var p purchase.Purchase
		if err := json.Unmarshal(payload, &p); err != nil {
			return Embed{}, fmt.Errorf("decode purchase payload: %w", err)
		}
		return Embed{
			Title:       "🚛 รับน้ำมันเข้า",
			Description: "เลขที่: " + p.Number,
			Color:       colorBlue,
			Fields: []EmbedField{
				{Name: "ยอดเงิน", Value: p.Total.StringFixed(2) + " บาท", Inline: true},
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}, nil
	}

	return Embed{}, fmt.Errorf("unknown event type %q", eventType)
}

func (n *DiscordNotifier) post(ctx context.Context, url string, embed Embed) error {
	body, err := json.Marshal(webhookBody{Embeds: []Embed{embed}})
	if err != nil {
		return fmt.Errorf("marshal webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
