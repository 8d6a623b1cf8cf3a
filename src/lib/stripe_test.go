package lib

import (
	"fmt"
	"testing"
	"time"

	"villas/src/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_test_secret"

func signedEvent(t *testing.T, eventType, sessionStatus, paymentStatus string) ([]byte, string) {
	t.Helper()
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"api_version": "2020-08-27",
		"type": %q,
		"data": {"object": {"id": "cs_test_1", "object": "checkout.session", "status": %q, "payment_status": %q}}
	}`, eventType, sessionStatus, paymentStatus))
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Payload, signed.Header
}

func TestStripeParseWebhook(t *testing.T) {
	s := NewStripe(GetStripeClient("sk_test_123"), testWebhookSecret)

	payload, header := signedEvent(t, "checkout.session.completed", "complete", "paid")
	obs, err := s.ParseWebhook(payload, header)
	require.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, "cs_test_1", obs.SessionID)
	assert.Equal(t, types.TRANSACTION_COMPLETED, obs.Status)
	assert.Equal(t, types.PAYMENT_PAID, obs.PaymentStatus)

	payload, header = signedEvent(t, "checkout.session.async_payment_failed", "complete", "unpaid")
	obs, err = s.ParseWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, types.TRANSACTION_FAILED, obs.Status)
	assert.Equal(t, types.PAYMENT_UNPAID, obs.PaymentStatus)

	payload, header = signedEvent(t, "customer.created", "open", "unpaid")
	obs, err = s.ParseWebhook(payload, header)
	assert.NoError(t, err)
	assert.Nil(t, obs)
}

func TestStripeParseWebhookRejectsBadSignature(t *testing.T) {
	s := NewStripe(GetStripeClient("sk_test_123"), testWebhookSecret)
	payload, _ := signedEvent(t, "checkout.session.completed", "complete", "paid")

	_, err := s.ParseWebhook(payload, "t=1,v1=deadbeef")
	assert.Error(t, err)

	_, err = s.ParseWebhook(payload, "")
	assert.Error(t, err)
}

func TestObserve(t *testing.T) {
	cases := []struct {
		status  stripe.CheckoutSessionStatus
		payment stripe.CheckoutSessionPaymentStatus
		want    types.TransactionStatus
		wantPay types.PaymentStatus
	}{
		{stripe.CheckoutSessionStatusOpen, stripe.CheckoutSessionPaymentStatusUnpaid, types.TRANSACTION_INITIATED, types.PAYMENT_PENDING},
		{stripe.CheckoutSessionStatusComplete, stripe.CheckoutSessionPaymentStatusPaid, types.TRANSACTION_COMPLETED, types.PAYMENT_PAID},
		{stripe.CheckoutSessionStatusComplete, stripe.CheckoutSessionPaymentStatusUnpaid, types.TRANSACTION_INITIATED, types.PAYMENT_PENDING},
		{stripe.CheckoutSessionStatusComplete, stripe.CheckoutSessionPaymentStatusNoPaymentRequired, types.TRANSACTION_COMPLETED, types.PAYMENT_PAID},
		{stripe.CheckoutSessionStatusExpired, stripe.CheckoutSessionPaymentStatusUnpaid, types.TRANSACTION_EXPIRED, types.PAYMENT_UNPAID},
	}
	for _, c := range cases {
		obs := observe(&stripe.CheckoutSession{ID: "cs_1", Status: c.status, PaymentStatus: c.payment})
		assert.Equal(t, c.want, obs.Status, "%s/%s", c.status, c.payment)
		assert.Equal(t, c.wantPay, obs.PaymentStatus, "%s/%s", c.status, c.payment)
	}
}

func TestCheckoutParams(t *testing.T) {
	params := checkoutParams(types.CheckoutRequest{
		Amount:      300.10,
		Currency:    "usd",
		SuccessURL:  "https://example.com/booking-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   "https://example.com/booking",
		CallbackURL: "https://example.com/api/webhook/stripe",
		Metadata:    map[string]string{"booking_id": "b1", "villa_name": "Apollo's Sanctuary"},
	})
	assert.Equal(t, "payment", *params.Mode)
	assert.Equal(t, "https://example.com/booking", *params.CancelURL)
	require.Len(t, params.LineItems, 1)
	assert.Equal(t, int64(30010), *params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "Apollo's Sanctuary", *params.LineItems[0].PriceData.ProductData.Name)
	assert.Equal(t, "b1", params.Metadata["booking_id"])
	assert.Equal(t, "https://example.com/api/webhook/stripe", params.Metadata["webhook_url"])
}
