package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParsePaystackEvent(t *testing.T) {
	raw := []byte(`{
		"event": "charge.success",
		"data": {
			"reference": "hp_abc123",
			"amount": 5000,
			"status": "success",
			"metadata": { "user_id": "42" }
		}
	}`)

	ev, err := ParsePaystackEvent(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if !ev.IsChargeSuccess() {
		t.Fatalf("expected charge.success event")
	}
	if ev.Data.Reference != "hp_abc123" {
		t.Fatalf("unexpected reference %q", ev.Data.Reference)
	}
	if ev.Data.Amount != 5000 {
		t.Fatalf("unexpected amount %d", ev.Data.Amount)
	}
	if ev.Data.Metadata.UserID != "42" {
		t.Fatalf("unexpected user_id %q", ev.Data.Metadata.UserID)
	}
}

func TestParsePaystackEvent_Invalid(t *testing.T) {
	if _, err := ParsePaystackEvent([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
	if _, err := ParsePaystackEvent([]byte(`{"data":{}}`)); err == nil {
		t.Fatalf("expected error for missing event type")
	}
}

func TestParsePaystackEvent_OtherEventTypes(t *testing.T) {
	ev, err := ParsePaystackEvent([]byte(`{"event":"transfer.success","data":{"reference":"tr_1"}}`))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if ev.IsChargeSuccess() {
		t.Fatalf("transfer.success must not count as charge.success")
	}
}

func TestInitializeTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_key" {
			t.Fatalf("unexpected authorization header %q", got)
		}

		var in InitializeRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if in.Amount != 5000 || in.Email != "ama@example.com" {
			t.Fatalf("unexpected request: %+v", in)
		}
		if in.Metadata["user_id"] != "42" {
			t.Fatalf("expected user_id metadata, got %+v", in.Metadata)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc",
				"access_code": "abc",
				"reference": "hp_ref_1"
			}
		}`))
	}))
	defer srv.Close()

	client := &PaystackClient{
		SecretKey:  "sk_test_key",
		APIBaseURL: srv.URL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	result, err := client.InitializeTransaction(context.Background(), InitializeRequest{
		Email:     "ama@example.com",
		Amount:    5000,
		Reference: "hp_ref_1",
		Metadata:  map[string]string{"user_id": "42"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AuthorizationURL != "https://checkout.paystack.com/abc" {
		t.Fatalf("unexpected authorization url %q", result.AuthorizationURL)
	}
}

func TestInitializeTransaction_RejectedByProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	}))
	defer srv.Close()

	client := &PaystackClient{
		SecretKey:  "sk_test_key",
		APIBaseURL: srv.URL,
		HTTPClient: srv.Client(),
	}

	if _, err := client.InitializeTransaction(context.Background(), InitializeRequest{
		Email:  "ama@example.com",
		Amount: 5000,
	}); err == nil {
		t.Fatalf("expected provider rejection to error")
	}
}

func TestInitializeTransaction_RequiresConfig(t *testing.T) {
	client := &PaystackClient{HTTPClient: http.DefaultClient}
	if _, err := client.InitializeTransaction(context.Background(), InitializeRequest{
		Email:  "ama@example.com",
		Amount: 5000,
	}); err == nil {
		t.Fatalf("expected missing secret key to error")
	}

	client.SecretKey = "sk_test_key"
	if _, err := client.InitializeTransaction(context.Background(), InitializeRequest{Amount: 5000}); err == nil {
		t.Fatalf("expected missing email to error")
	}
	if _, err := client.InitializeTransaction(context.Background(), InitializeRequest{Email: "a@b.c"}); err == nil {
		t.Fatalf("expected non-positive amount to error")
	}
}

func TestMinorToMajor(t *testing.T) {
	tests := []struct {
		in   int64
		want float64
	}{
		{in: 5000, want: 50.0},
		{in: 12345, want: 123.45},
		{in: 0, want: 0},
		{in: 1, want: 0.01},
	}

	for _, tt := range tests {
		if got := MinorToMajor(tt.in); got != tt.want {
			t.Fatalf("MinorToMajor(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
