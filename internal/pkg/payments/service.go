package payments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hostelpad/hostelpad/app/models"
	"gorm.io/gorm"
)

// Terminal validation failures for a verified charge.success event. The
// webhook responds 4xx for these; a provider retry cannot change the outcome.
var (
	ErrInsufficientPayment = errors.New("paid amount below expected price")
	ErrMissingUserID       = errors.New("no user_id in event metadata")
)

// Service drives the one-way account upgrade from verified payment events.
type Service struct {
	repo          Repository
	expectedPrice int64
}

// NewService creates a payments service from an injected repository.
// expectedPrice is the server-side price in minor currency units; 0 disables
// the amount check.
func NewService(repo Repository, expectedPrice int64) *Service {
	return &Service{repo: repo, expectedPrice: expectedPrice}
}

// NewServiceFromDB creates a payments service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, expectedPrice int64) *Service {
	return NewService(NewRepository(db), expectedPrice)
}

// ExpectedPrice returns the configured price in minor units.
func (s *Service) ExpectedPrice() int64 {
	return s.expectedPrice
}

// RecordWebhookEvent persists webhook payloads idempotently. Events without a
// provider-assigned id are keyed by a hash of the payload.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.PaymentWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.PaymentWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

// ApplyChargeSuccess validates a verified charge.success event and performs
// the two persisted writes: the transaction audit record and the one-way role
// upgrade. Both must succeed; the transaction insert is keyed by reference so
// a retried delivery is a no-op rather than a duplicate row.
func (s *Service) ApplyChargeSuccess(ctx context.Context, ev *Event) (*models.Transaction, error) {
	_ = ctx
	if ev == nil || !ev.IsChargeSuccess() {
		return nil, errors.New("event is not a charge.success")
	}

	if s.expectedPrice > 0 && ev.Data.Amount < s.expectedPrice {
		return nil, fmt.Errorf("%w: paid=%d expected=%d", ErrInsufficientPayment, ev.Data.Amount, s.expectedPrice)
	}

	userID, err := parseUserID(ev.Data.Metadata.UserID)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		UserID:    userID,
		Amount:    MinorToMajor(ev.Data.Amount),
		Status:    ev.Data.Status,
		Reference: ev.Data.Reference,
		CreatedAt: time.Now(),
	}
	if _, err := s.repo.CreateTransactionIfNotExists(txn); err != nil {
		return nil, fmt.Errorf("recording transaction %s: %w", ev.Data.Reference, err)
	}

	if err := s.repo.UpgradeUserRole(userID, models.ROLE_PARTNER); err != nil {
		return nil, fmt.Errorf("upgrading user %d: %w", userID, err)
	}

	return txn, nil
}

// LatestTransaction returns the most recent transaction for a user, or nil
// when none exists yet.
func (s *Service) LatestTransaction(ctx context.Context, userID uint) (*models.Transaction, error) {
	_ = ctx
	txn, err := s.repo.GetLatestTransactionByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return txn, nil
}

// MinorToMajor converts a provider-reported amount in the currency's smallest
// unit into major units (e.g. 5000 pesewas -> 50.00 GHS).
func MinorToMajor(amount int64) float64 {
	return float64(amount) / 100
}

func parseUserID(raw string) (uint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrMissingUserID
	}
	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: unparseable user_id %q", ErrMissingUserID, trimmed)
	}
	return uint(id), nil
}
