package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hostelpad/hostelpad/internal/pkg/env"
)

const (
	defaultPaystackAPIBaseURL = "https://api.paystack.co"

	// EventChargeSuccess is the only event type that drives the upgrade path.
	EventChargeSuccess = "charge.success"

	ProviderPaystack = "paystack"
)

// Event is a Paystack webhook payload. Instances are untrusted until the
// signature over the raw body has been verified.
type Event struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}

// EventData carries the charge details consumed by the upgrade flow.
// Amount is in the currency's minor unit (pesewas/kobo).
type EventData struct {
	Reference string        `json:"reference"`
	Amount    int64         `json:"amount"`
	Status    string        `json:"status"`
	Metadata  EventMetadata `json:"metadata"`
}

type EventMetadata struct {
	UserID string `json:"user_id"`
}

// ParsePaystackEvent decodes a verified webhook body into a typed Event. Callers must
// verify the signature first; nothing downstream operates on raw JSON.
func ParsePaystackEvent(raw []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("invalid paystack event payload: %w", err)
	}
	if strings.TrimSpace(ev.Event) == "" {
		return nil, errors.New("paystack event payload has no event type")
	}
	return &ev, nil
}

// IsChargeSuccess reports whether this event should trigger the upgrade path.
func (e *Event) IsChargeSuccess() bool {
	return strings.EqualFold(strings.TrimSpace(e.Event), EventChargeSuccess)
}

// PaystackClient calls the Paystack REST API server-to-server.
type PaystackClient struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

func NewPaystackClientFromEnv() *PaystackClient {
	return &PaystackClient{
		SecretKey:  strings.TrimSpace(env.GetEnv("PAYSTACK_SECRET_KEY", "")),
		APIBaseURL: strings.TrimSpace(env.GetEnv("PAYSTACK_API_BASE_URL", defaultPaystackAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// InitializeRequest starts a checkout for a user. Amount is in minor units
// and always comes from server-side configuration, never from the client.
type InitializeRequest struct {
	Email     string            `json:"email"`
	Amount    int64             `json:"amount"`
	Reference string            `json:"reference"`
	Currency  string            `json:"currency,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Callback  string            `json:"callback_url,omitempty"`
}

// InitializeResult is the subset of the initialize response the app consumes.
type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// InitializeTransaction registers a pending transaction with Paystack and
// returns the hosted checkout URL for the client to open.
func (c *PaystackClient) InitializeTransaction(ctx context.Context, in InitializeRequest) (*InitializeResult, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("PAYSTACK_SECRET_KEY is not configured")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, errors.New("customer email is required")
	}
	if in.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(c.APIBaseURL, "/") + "/transaction/initialize"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack initialize failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out struct {
		Status  bool             `json:"status"`
		Message string           `json:"message"`
		Data    InitializeResult `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, fmt.Errorf("paystack initialize rejected: %s", out.Message)
	}
	if strings.TrimSpace(out.Data.AuthorizationURL) == "" {
		return nil, errors.New("paystack initialize returned empty authorization_url")
	}
	return &out.Data, nil
}
