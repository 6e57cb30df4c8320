package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hostelpad/hostelpad/app/models"
	"github.com/hostelpad/hostelpad/internal/pkg/database"
	"github.com/hostelpad/hostelpad/internal/pkg/env"
	"github.com/hostelpad/hostelpad/internal/pkg/payments"
	"github.com/hostelpad/hostelpad/internal/pkg/usercontext"
)

// PaymentController drives the partner-upgrade payment flow: server-side
// checkout initialization and the provider confirmation webhook.
type PaymentController struct {
	svc           *payments.Service
	client        *payments.PaystackClient
	webhookSecret string
}

// NewPaymentController creates a payment controller from its dependencies.
func NewPaymentController(svc *payments.Service, client *payments.PaystackClient, webhookSecret string) *PaymentController {
	return &PaymentController{svc: svc, client: client, webhookSecret: webhookSecret}
}

var paymentController *PaymentController

// InitializePaymentController initializes the global payment controller from
// the environment and the shared DB handle.
func InitializePaymentController() {
	expectedPrice := env.GetEnvInt64("PAYSTACK_EXPECTED_PRICE", 0)

	paymentController = NewPaymentController(
		payments.NewServiceFromDB(database.GetDB(), expectedPrice),
		payments.NewPaystackClientFromEnv(),
		env.GetEnv("PAYSTACK_SECRET_KEY", ""),
	)
}

// GetPaymentController returns the global payment controller instance
func GetPaymentController() *PaymentController {
	if paymentController == nil {
		InitializePaymentController()
	}
	return paymentController
}

// HandlePaystackWebhook processes the server-to-server payment confirmation.
// The gates run in a fixed order and each failure is terminal: signature
// presence, signature verification over the raw body, typed parse, delivery
// dedupe, event-type dispatch, amount validation, required metadata, then the
// two persisted writes. Nothing reads the JSON before the signature holds.
func (pc *PaymentController) HandlePaystackWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)

	signature := strings.TrimSpace(c.Get(payments.PaystackSignatureHeader))
	if signature == "" {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "No signature provided")
	}

	if !payments.VerifyPaystackWebhookSignature(rawBody, signature, pc.webhookSecret) {
		log.Printf("paystack webhook rejected: invalid signature")
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid signature")
	}

	event, err := payments.ParsePaystackEvent(rawBody)
	if err != nil {
		log.Printf("paystack webhook rejected: %v", err)
		return jsonError(c, fiber.StatusBadRequest, "invalid_payload", "Malformed event payload")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	created, stored, err := pc.svc.RecordWebhookEvent(ctx, payments.WebhookEventInput{
		Provider:        payments.ProviderPaystack,
		ProviderEventID: eventDedupeID(event),
		EventType:       event.Event,
		PayloadJSON:     string(rawBody),
		SignatureValid:  true,
	})
	if err != nil {
		log.Printf("paystack webhook persist failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Webhook could not be recorded")
	}
	if !created && webhookEventSettled(stored) {
		// Redelivery of an event that already completed cleanly; acknowledge
		// so the provider stops retrying. A redelivery of a failed attempt
		// falls through and is processed again: the provider retry is the
		// only recovery path, and every write below is idempotent.
		return c.JSON(fiber.Map{"ok": true, "duplicate": true})
	}

	if !event.IsChargeSuccess() {
		_ = pc.svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.JSON(fiber.Map{"ok": true, "ignored": true})
	}

	txn, err := pc.svc.ApplyChargeSuccess(ctx, event)
	_ = pc.svc.MarkWebhookProcessed(ctx, stored.ID, err)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInsufficientPayment):
			log.Printf("paystack webhook rejected: %v (reference %s)", err, event.Data.Reference)
			return jsonError(c, fiber.StatusBadRequest, "insufficient_payment", "Paid amount below expected price")
		case errors.Is(err, payments.ErrMissingUserID):
			log.Printf("paystack webhook rejected: %v (reference %s)", err, event.Data.Reference)
			return jsonError(c, fiber.StatusBadRequest, "missing_user_id", "No user_id in metadata")
		default:
			log.Printf("paystack webhook processing failed: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "upgrade_failed", "Upgrade could not be applied")
		}
	}

	log.Printf("user %d upgraded to partner (reference %s)", txn.UserID, txn.Reference)
	return c.JSON(fiber.Map{"ok": true})
}

// HandleCheckout initializes a Paystack transaction for the session user and
// returns the hosted checkout URL. The amount comes from server config only.
func (pc *PaymentController) HandleCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	if userCtx.Role == models.ROLE_PARTNER || userCtx.Role == models.ROLE_ADMIN {
		return jsonError(c, fiber.StatusConflict, "conflict", "Account is already a partner")
	}

	amount := pc.svc.ExpectedPrice()
	if amount <= 0 {
		return jsonError(c, fiber.StatusServiceUnavailable, "checkout_unavailable", "Upgrade price is not configured")
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userCtx.UserID).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	result, err := pc.client.InitializeTransaction(ctx, payments.InitializeRequest{
		Email:     user.Email,
		Amount:    amount,
		Reference: "hp_" + uuid.New().String(),
		Metadata: map[string]string{
			"user_id": fmt.Sprintf("%d", user.ID),
		},
	})
	if err != nil {
		log.Printf("paystack initialize failed for user %d: %v", user.ID, err)
		return jsonError(c, fiber.StatusBadGateway, "provider_error", "Checkout could not be initialized")
	}

	return c.JSON(fiber.Map{
		"authorization_url": result.AuthorizationURL,
		"access_code":       result.AccessCode,
		"reference":         result.Reference,
		"amount":            amount,
	})
}

// HandlePaymentStatus reports the session user's role and latest transaction
// so the app can poll after returning from checkout.
func (pc *PaymentController) HandlePaymentStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userCtx.UserID).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response := fiber.Map{
		"role":       user.Role,
		"is_partner": user.IsPartner(),
	}

	txn, err := pc.svc.LatestTransaction(ctx, user.ID)
	if err != nil {
		log.Printf("failed to load latest transaction for user %d: %v", user.ID, err)
	} else if txn != nil {
		response["last_transaction"] = fiber.Map{
			"reference":  txn.Reference,
			"amount":     txn.Amount,
			"status":     txn.Status,
			"created_at": txn.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return c.JSON(response)
}

// webhookEventSettled reports whether a stored delivery already ran to a clean
// completion. Paystack retries with the identical body, so the stored outcome,
// not the dedupe key alone, decides whether a redelivery is a duplicate.
func webhookEventSettled(ev *models.PaymentWebhookEvent) bool {
	return ev != nil && ev.ProcessedAt != nil && ev.ProcessingError == ""
}

// eventDedupeID keys webhook deliveries for idempotent processing. Paystack
// does not send a delivery id, so the charge reference plus event type is the
// stable identity of a delivery; bodies without a reference fall back to a
// payload hash inside the service.
func eventDedupeID(event *payments.Event) string {
	ref := strings.TrimSpace(event.Data.Reference)
	if ref == "" {
		return ""
	}
	return event.Event + ":" + ref
}
