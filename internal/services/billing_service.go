// internal/services/billing_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"gorm.io/gorm"

	"github.com/lojinha/lojinha-backend/internal/config"
	"github.com/lojinha/lojinha-backend/internal/models"
)

// BillingService handles the single paid upgrade: free to pro. It creates
// Stripe Checkout sessions and confirms them by polling the session status,
// so no webhook endpoint is needed.
type BillingService struct {
	db     *gorm.DB
	config *config.Config
}

type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type CheckoutStatusResponse struct {
	SessionID     string          `json:"session_id"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Plan          models.PlanTier `json:"plan"`
}

func NewBillingService(db *gorm.DB, config *config.Config) *BillingService {
	stripe.Key = config.Billing.StripeSecretKey

	return &BillingService{
		db:     db,
		config: config,
	}
}

// CreateCheckoutSession starts a subscription checkout for the pro plan.
func (s *BillingService) CreateCheckoutSession(userID uuid.UUID) (*CheckoutSessionResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if user.Plan == models.PlanTierPro && user.SubscriptionStatus == models.SubscriptionStatusActive {
		return nil, errors.New("user already has an active pro subscription")
	}

	base := s.config.Frontend.BaseURL
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.config.Billing.ProPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(base + s.config.Billing.SuccessPath + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(base + s.config.Billing.CancelPath),
		CustomerEmail:     stripe.String(user.Email),
		ClientReferenceID: stripe.String(user.ID.String()),
	}
	params.AddMetadata("user_id", user.ID.String())

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSessionResponse{
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

// ConfirmCheckoutSession polls a checkout session and, when payment has
// completed, upgrades the user's plan. Confirming an already processed
// session is harmless.
func (s *BillingService) ConfirmCheckoutSession(userID uuid.UUID, sessionID string) (*CheckoutStatusResponse, error) {
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	if sess.ClientReferenceID != userID.String() {
		return nil, errors.New("checkout session belongs to another account")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if sess.Status == stripe.CheckoutSessionStatusComplete &&
		sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		user.Plan = models.PlanTierPro
		user.SubscriptionStatus = models.SubscriptionStatusActive
		if sess.Customer != nil {
			user.StripeCustomerID = sess.Customer.ID
		}
		if err := s.db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to upgrade plan: %w", err)
		}
	}

	return &CheckoutStatusResponse{
		SessionID:     sess.ID,
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
		Plan:          user.Plan,
	}, nil
}
