package lib

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"villas/src/types"

	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Stripe adapts hosted Checkout Sessions to the payment engine.
type Stripe struct {
	client        *stripe.Client
	webhookSecret string
	cb            *gobreaker.CircuitBreaker
}

func NewStripe(client *stripe.Client, webhookSecret string) *Stripe {
	return &Stripe{
		client:        client,
		webhookSecret: webhookSecret,
		cb:            CircuitBreaker("stripe"),
	}
}

func GetStripeClient(apiKey string) *stripe.Client {
	return stripe.NewClient(apiKey)
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func checkoutParams(req types.CheckoutRequest) *stripe.CheckoutSessionCreateParams {
	metadata := make(map[string]string, len(req.Metadata)+1)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	if req.CallbackURL != "" {
		metadata["webhook_url"] = req.CallbackURL
	}
	name := "Villa booking"
	if v, ok := req.Metadata["villa_name"]; ok && v != "" {
		name = v
	}
	return &stripe.CheckoutSessionCreateParams{
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		UIMode:     stripe.String("hosted"),
		Mode:       stripe.String("payment"),
		Metadata:   metadata,
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(toMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
}

func (s *Stripe) CreateSession(ctx context.Context, req types.CheckoutRequest) (*types.CheckoutSession, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.V1CheckoutSessions.Create(ctx, checkoutParams(req))
	})
	if err != nil {
		log.Printf("[stripe] CreateSession failed: %s\n", err.Error())
		return nil, err
	}
	cs := res.(*stripe.CheckoutSession)
	if cs.ID == "" || cs.URL == "" {
		return nil, fmt.Errorf("checkout session response missing id or url")
	}
	return &types.CheckoutSession{ID: cs.ID, URL: cs.URL}, nil
}

func (s *Stripe) GetStatus(ctx context.Context, sessionID string) (*types.PaymentObservation, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.V1CheckoutSessions.Retrieve(ctx, sessionID, &stripe.CheckoutSessionRetrieveParams{})
	})
	if err != nil {
		log.Printf("[stripe] Retrieve %s failed: %s\n", sessionID, err.Error())
		return nil, err
	}
	return observe(res.(*stripe.CheckoutSession)), nil
}

func (s *Stripe) ExpireSession(ctx context.Context, sessionID string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.V1CheckoutSessions.Expire(ctx, sessionID, &stripe.CheckoutSessionExpireParams{})
	})
	return err
}

func (s *Stripe) ParseWebhook(payload []byte, signature string) (*types.PaymentObservation, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[StripeEvent] %s\n", event.Type)
	switch event.Type {
	case "checkout.session.completed",
		"checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed",
		"checkout.session.expired":
	default:
		return nil, nil
	}
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		log.Printf("[Stripe] Error parsing CheckoutSession: %s\n", err.Error())
		return nil, err
	}
	obs := observe(&cs)
	if event.Type == "checkout.session.async_payment_failed" {
		obs.Status = types.TRANSACTION_FAILED
		obs.PaymentStatus = types.PAYMENT_UNPAID
	}
	return obs, nil
}

// observe maps a Checkout Session onto transaction states. A completed session that is still
// unpaid is waiting on an asynchronous payment method and stays initiated.
func observe(cs *stripe.CheckoutSession) *types.PaymentObservation {
	obs := &types.PaymentObservation{
		SessionID:     cs.ID,
		Status:        types.TRANSACTION_INITIATED,
		PaymentStatus: types.PAYMENT_PENDING,
	}
	switch cs.PaymentStatus {
	case stripe.CheckoutSessionPaymentStatusPaid, stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		obs.PaymentStatus = types.PAYMENT_PAID
	}
	switch cs.Status {
	case stripe.CheckoutSessionStatusComplete:
		if obs.PaymentStatus == types.PAYMENT_PAID {
			obs.Status = types.TRANSACTION_COMPLETED
		}
	case stripe.CheckoutSessionStatusExpired:
		obs.Status = types.TRANSACTION_EXPIRED
		if obs.PaymentStatus != types.PAYMENT_PAID {
			obs.PaymentStatus = types.PAYMENT_UNPAID
		}
	}
	return obs
}
