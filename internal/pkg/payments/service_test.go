package payments

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/hostelpad/hostelpad/app/models"
)

type fakeRepository struct {
	events       []*models.PaymentWebhookEvent
	transactions []*models.Transaction
	roles        map[uint]string

	txnErr     error
	upgradeErr error
	processed  map[uint]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		roles:     map[uint]string{},
		processed: map[uint]string{},
	}
}

func (f *fakeRepository) CreateWebhookEventIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	for _, existing := range f.events {
		if existing.Provider == event.Provider && existing.ProviderEventID == event.ProviderEventID {
			return false, existing, nil
		}
	}
	event.ID = uint(len(f.events) + 1)
	f.events = append(f.events, event)
	return true, event, nil
}

func (f *fakeRepository) MarkWebhookProcessed(id uint, processingError string) error {
	f.processed[id] = processingError
	return nil
}

func (f *fakeRepository) CreateTransactionIfNotExists(txn *models.Transaction) (bool, error) {
	if f.txnErr != nil {
		return false, f.txnErr
	}
	for _, existing := range f.transactions {
		if existing.Reference == txn.Reference {
			return false, nil
		}
	}
	f.transactions = append(f.transactions, txn)
	return true, nil
}

func (f *fakeRepository) UpgradeUserRole(userID uint, role string) error {
	if f.upgradeErr != nil {
		return f.upgradeErr
	}
	f.roles[userID] = role
	return nil
}

func (f *fakeRepository) GetLatestTransactionByUser(userID uint) (*models.Transaction, error) {
	for i := len(f.transactions) - 1; i >= 0; i-- {
		if f.transactions[i].UserID == userID {
			return f.transactions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func chargeSuccessEvent(amount int64, userID string) *Event {
	return &Event{
		Event: EventChargeSuccess,
		Data: EventData{
			Reference: "hp_ref_1",
			Amount:    amount,
			Status:    "success",
			Metadata:  EventMetadata{UserID: userID},
		},
	}
}

func TestApplyChargeSuccess_UpgradesUser(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 5000)

	txn, err := svc.ApplyChargeSuccess(context.Background(), chargeSuccessEvent(5000, "42"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.UserID != 42 {
		t.Fatalf("unexpected user id %d", txn.UserID)
	}
	if txn.Amount != 50.0 {
		t.Fatalf("expected amount 50.0, got %v", txn.Amount)
	}
	if len(repo.transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(repo.transactions))
	}
	if repo.roles[42] != models.ROLE_PARTNER {
		t.Fatalf("expected user 42 upgraded to partner, got %q", repo.roles[42])
	}
}

func TestApplyChargeSuccess_OverpaymentAccepted(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 5000)

	if _, err := svc.ApplyChargeSuccess(context.Background(), chargeSuccessEvent(7500, "42")); err != nil {
		t.Fatalf("expected overpayment to be accepted, got %v", err)
	}
}

func TestApplyChargeSuccess_InsufficientAmount(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 5000)

	_, err := svc.ApplyChargeSuccess(context.Background(), chargeSuccessEvent(4999, "42"))
	if !errors.Is(err, ErrInsufficientPayment) {
		t.Fatalf("expected ErrInsufficientPayment, got %v", err)
	}
	if len(repo.transactions) != 0 {
		t.Fatalf("no transaction must be recorded on amount mismatch")
	}
	if len(repo.roles) != 0 {
		t.Fatalf("no role upgrade must happen on amount mismatch")
	}
}

func TestApplyChargeSuccess_MissingUserID(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 5000)

	for _, userID := range []string{"", "   ", "abc", "0", "-3"} {
		_, err := svc.ApplyChargeSuccess(context.Background(), chargeSuccessEvent(5000, userID))
		if !errors.Is(err, ErrMissingUserID) {
			t.Fatalf("user_id %q: expected ErrMissingUserID, got %v", userID, err)
		}
	}
	if len(repo.transactions) != 0 || len(repo.roles) != 0 {
		t.Fatalf("no writes must happen without a usable user_id")
	}
}

func TestApplyChargeSuccess_RejectsOtherEvents(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 5000)

	ev := chargeSuccessEvent(5000, "42")
	ev.Event = "charge.failed"

	if _, err := svc.ApplyChargeSuccess(context.Background(), ev); err == nil {
		t.Fatalf("expected error for non-charge.success event")
	}
	if len(repo.roles) != 0 {
		t.Fatalf("failed charges must never upgrade a user")
	}
}

func TestApplyChargeSuccess_RetriedDeliveryIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 5000)

	for i := 0; i < 3; i++ {
		if _, err := svc.ApplyChargeSuccess(context.Background(), chargeSuccessEvent(5000, "42")); err != nil {
			t.Fatalf("retry %d: unexpected error: %v", i, err)
		}
	}
	if len(repo.transactions) != 1 {
		t.Fatalf("expected a single transaction after retries, got %d", len(repo.transactions))
	}
	if repo.roles[42] != models.ROLE_PARTNER {
		t.Fatalf("expected user to remain partner")
	}
}

func TestApplyChargeSuccess_WriteFailuresAreFatal(t *testing.T) {
	repo := newFakeRepository()
	repo.txnErr = fmt.Errorf("db down")
	svc := NewService(repo, 5000)

	if _, err := svc.ApplyChargeSuccess(context.Background(), chargeSuccessEvent(5000, "42")); err == nil {
		t.Fatalf("expected transaction insert failure to propagate")
	}
	if len(repo.roles) != 0 {
		t.Fatalf("role must not change when the transaction insert fails")
	}

	repo.txnErr = nil
	repo.upgradeErr = fmt.Errorf("db down")
	if _, err := svc.ApplyChargeSuccess(context.Background(), chargeSuccessEvent(5000, "42")); err == nil {
		t.Fatalf("expected upgrade failure to propagate")
	}
}

func TestApplyChargeSuccess_ZeroPriceDisablesAmountCheck(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 0)

	if _, err := svc.ApplyChargeSuccess(context.Background(), chargeSuccessEvent(1, "42")); err != nil {
		t.Fatalf("unexpected error with disabled amount check: %v", err)
	}
}

func TestRecordWebhookEvent_Dedupe(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 5000)

	in := WebhookEventInput{
		Provider:        ProviderPaystack,
		ProviderEventID: "charge.success:hp_ref_1",
		EventType:       EventChargeSuccess,
		PayloadJSON:     `{"event":"charge.success"}`,
		SignatureValid:  true,
	}

	created, first, err := svc.RecordWebhookEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected first delivery to be created")
	}

	created, second, err := svc.RecordWebhookEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("expected redelivery to be deduplicated")
	}
	if second.ID != first.ID {
		t.Fatalf("expected the stored event to be returned on redelivery")
	}
}

func TestRecordWebhookEvent_HashFallbackID(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 5000)

	in := WebhookEventInput{
		Provider:       ProviderPaystack,
		EventType:      "subscription.create",
		PayloadJSON:    `{"event":"subscription.create"}`,
		SignatureValid: true,
	}

	created, _, err := svc.RecordWebhookEvent(context.Background(), in)
	if err != nil || !created {
		t.Fatalf("expected first unkeyed delivery to be created, got created=%v err=%v", created, err)
	}
	created, _, err = svc.RecordWebhookEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("expected identical payloads to dedupe via the hash key")
	}
}

func TestLatestTransaction_NoneIsNil(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 5000)

	txn, err := svc.LatestTransaction(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn != nil {
		t.Fatalf("expected nil transaction when none exists")
	}
}
