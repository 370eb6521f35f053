// Package webhook notifies an HTTP endpoint about persisted records.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/use-agent/prodscrape/models"
)

// EventRecordSaved is sent after a record reaches the store.
const EventRecordSaved = "record.saved"

// SignatureHeader carries the HMAC-SHA256 of the request body.
const SignatureHeader = "X-Prodscrape-Signature"

// Event is the payload sent to webhook endpoints.
type Event struct {
	Type      string      `json:"type"`
	JobID     string      `json:"job_id"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// RecordData is the Data of a record.saved event.
type RecordData struct {
	Identifier string        `json:"identifier"`
	Record     models.Record `json:"record"`
}

// Notifier delivers record.saved events. Delivery is attempted once.
type Notifier struct {
	url    string
	secret string
	client *resty.Client
}

// NewNotifier creates a Notifier posting to url.
func NewNotifier(url, secret string) *Notifier {
	return &Notifier{
		url:    url,
		secret: secret,
		client: resty.New().SetTimeout(10 * time.Second).SetRetryCount(0),
	}
}

// RecordSaved sends a record.saved event for identifier.
func (n *Notifier) RecordSaved(ctx context.Context, identifier string, rec models.Record) error {
	return n.Deliver(ctx, &Event{
		Type:      EventRecordSaved,
		JobID:     uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Data:      RecordData{Identifier: identifier, Record: rec},
	})
}

// Deliver sends a webhook event synchronously.
// The request body is signed with HMAC-SHA256 if a secret is configured.
// Header: X-Prodscrape-Signature: sha256=<hex>
func (n *Notifier) Deliver(ctx context.Context, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "Prodscrape-Webhook/1.0").
		SetBody(body)
	if n.secret != "" {
		req.SetHeader(SignatureHeader, "sha256="+Sign(n.secret, body))
	}

	resp, err := req.Post(n.url)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode())
	}
	return nil
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
