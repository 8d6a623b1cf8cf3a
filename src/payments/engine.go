package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"villas/src/config"
	"villas/src/lib"
	"villas/src/models"
	"villas/src/store"
	"villas/src/types"

	"github.com/google/uuid"
)

type Provider interface {
	CreateSession(ctx context.Context, req types.CheckoutRequest) (*types.CheckoutSession, error)
	GetStatus(ctx context.Context, sessionID string) (*types.PaymentObservation, error)
	ExpireSession(ctx context.Context, sessionID string) error
	// ParseWebhook verifies the payload signature. A nil observation means the event is not about a checkout session.
	ParseWebhook(payload []byte, signature string) (*types.PaymentObservation, error)
}

type Notifier interface {
	Dispatch(msg *lib.SendMailInput)
}

type Options struct {
	ProviderTimeout time.Duration
	StaleAfter      time.Duration
	SweepLimit      int
	From            string
}

type Engine struct {
	store    store.Store
	provider Provider
	notifier Notifier
	opts     Options
	now      func() time.Time
}

func NewEngine(s store.Store, p Provider, n Notifier, opts Options) *Engine {
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = 10 * time.Second
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = 10 * time.Minute
	}
	if opts.SweepLimit <= 0 {
		opts.SweepLimit = 50
	}
	return &Engine{store: s, provider: p, notifier: n, opts: opts, now: time.Now}
}

func providerError(op string, err error) error {
	return fmt.Errorf("%s: %w: %s", op, types.ErrProvider, err.Error())
}

func (e *Engine) CreateCheckoutSession(ctx context.Context, bookingID, origin string) (*types.APIResponseCheckout, error) {
	booking, err := e.store.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	switch booking.Status {
	case types.BOOKING_CONFIRMED:
		return nil, types.ErrAlreadyConfirmed
	case types.BOOKING_CANCELLED:
		return nil, types.ErrBookingCancelled
	}

	origin = strings.TrimRight(origin, "/")
	metadata := map[string]string{
		"booking_id":  booking.ID,
		"villa_name":  booking.VillaName,
		"guest_email": booking.Email,
	}
	req := types.CheckoutRequest{
		Amount:      booking.TotalPrice,
		Currency:    config.CURRENCY,
		SuccessURL:  origin + "/booking-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   origin + "/booking",
		CallbackURL: origin + "/api/webhook/stripe",
		Metadata:    metadata,
	}

	pctx, cancel := context.WithTimeout(ctx, e.opts.ProviderTimeout)
	defer cancel()
	start := time.Now()
	session, err := e.provider.CreateSession(pctx, req)
	providerLatency.WithLabelValues("create_session").Observe(time.Since(start).Seconds())
	if err != nil {
		checkoutSessionsTotal.WithLabelValues("provider_error").Inc()
		log.Printf("[payments] Error creating checkout session for booking %s: %s\n", booking.ID, err.Error())
		return nil, providerError("create checkout session", err)
	}

	txn := &models.PaymentTransaction{
		ID:            uuid.NewString(),
		SessionID:     session.ID,
		BookingID:     booking.ID,
		Amount:        booking.TotalPrice,
		Currency:      config.CURRENCY,
		Status:        types.TRANSACTION_INITIATED,
		PaymentStatus: types.PAYMENT_PENDING,
		Metadata:      metadata,
	}
	if err := e.store.InsertTransaction(ctx, txn); err != nil {
		checkoutSessionsTotal.WithLabelValues("store_error").Inc()
		return nil, err
	}
	if err := e.store.SetBookingSession(ctx, booking.ID, session.ID); err != nil {
		checkoutSessionsTotal.WithLabelValues("store_error").Inc()
		return nil, err
	}
	checkoutSessionsTotal.WithLabelValues("created").Inc()
	log.Printf("[payments] Checkout session %s created for booking %s amount=%.2f\n", session.ID, booking.ID, txn.Amount)

	if prev := booking.PaymentSessionID; prev != nil && *prev != "" && *prev != session.ID {
		e.expirePrevious(ctx, *prev)
	}

	return &types.APIResponseCheckout{URL: session.URL, SessionID: session.ID}, nil
}

// expirePrevious closes a replaced session with the provider. Failures are logged only:
// if the old session still gets paid, reconciliation confirms the booking from it.
func (e *Engine) expirePrevious(ctx context.Context, sessionID string) {
	txn, err := e.store.FindTransaction(ctx, sessionID)
	if err != nil || txn.Status != types.TRANSACTION_INITIATED {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, e.opts.ProviderTimeout)
	defer cancel()
	if err := e.provider.ExpireSession(pctx, sessionID); err != nil {
		log.Printf("[payments] Could not expire replaced session %s: %s\n", sessionID, err.Error())
		return
	}
	log.Printf("[payments] Expired replaced session %s\n", sessionID)
}

func (e *Engine) PollStatus(ctx context.Context, sessionID string) (*types.APIResponsePaymentStatus, error) {
	return e.poll(ctx, sessionID, "poll")
}

func (e *Engine) poll(ctx context.Context, sessionID, source string) (*types.APIResponsePaymentStatus, error) {
	txn, err := e.store.FindTransaction(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if txn.IsSettled() {
		statusPollsTotal.WithLabelValues("cached").Inc()
		return statusResult(txn), nil
	}

	pctx, cancel := context.WithTimeout(ctx, e.opts.ProviderTimeout)
	defer cancel()
	start := time.Now()
	obs, err := e.provider.GetStatus(pctx, sessionID)
	providerLatency.WithLabelValues("get_status").Observe(time.Since(start).Seconds())
	if err != nil {
		statusPollsTotal.WithLabelValues("provider_error").Inc()
		log.Printf("[payments] Error retrieving status for session %s: %s\n", sessionID, err.Error())
		return nil, providerError("retrieve checkout session", err)
	}
	statusPollsTotal.WithLabelValues("provider").Inc()

	next, err := e.apply(ctx, txn, *obs, source)
	if err != nil {
		return nil, err
	}
	return statusResult(next), nil
}

// HandleWebhook applies a verified provider event. Callers acknowledge the delivery whatever is returned.
func (e *Engine) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	obs, err := e.provider.ParseWebhook(payload, signature)
	if err != nil {
		webhookEventsTotal.WithLabelValues("rejected").Inc()
		log.Printf("[payments] Webhook rejected: %s\n", err.Error())
		return fmt.Errorf("%w: %s", types.ErrWebhookVerification, err.Error())
	}
	if obs == nil {
		webhookEventsTotal.WithLabelValues("ignored").Inc()
		return nil
	}
	txn, err := e.store.FindTransaction(ctx, obs.SessionID)
	if errors.Is(err, types.ErrNotFound) {
		webhookEventsTotal.WithLabelValues("ignored").Inc()
		log.Printf("[payments] Webhook for unknown session %s\n", obs.SessionID)
		return nil
	}
	if err != nil {
		webhookEventsTotal.WithLabelValues("error").Inc()
		return err
	}
	if _, err := e.apply(ctx, txn, *obs, "webhook"); err != nil {
		webhookEventsTotal.WithLabelValues("error").Inc()
		return err
	}
	webhookEventsTotal.WithLabelValues("applied").Inc()
	return nil
}

// ReconcileStale polls the provider for sessions left in initiated state. Returns how many were checked.
func (e *Engine) ReconcileStale(ctx context.Context) (int, error) {
	txns, err := e.store.ListStaleTransactions(ctx, e.now().Add(-e.opts.StaleAfter), e.opts.SweepLimit)
	if err != nil {
		return 0, err
	}
	checked := 0
	for _, txn := range txns {
		if ctx.Err() != nil {
			return checked, ctx.Err()
		}
		if _, err := e.poll(ctx, txn.SessionID, "sweep"); err != nil {
			log.Printf("[payments] Sweep could not reconcile session %s: %s\n", txn.SessionID, err.Error())
			continue
		}
		checked++
	}
	if repaired, err := e.RepairConfirmations(ctx); err != nil {
		log.Printf("[payments] Repair pass failed: %s\n", err.Error())
	} else if repaired > 0 {
		log.Printf("[payments] Repair pass confirmed %d bookings\n", repaired)
	}
	return checked, nil
}

// apply runs Reconcile against the stored transaction and persists the outcome with a conditional
// update. Only the caller whose update moves the booking to confirmed sends the confirmation.
func (e *Engine) apply(ctx context.Context, current *models.PaymentTransaction, obs types.PaymentObservation, source string) (*models.PaymentTransaction, error) {
	next, confirm := Reconcile(*current, obs)
	if next.Status == current.Status && next.PaymentStatus == current.PaymentStatus {
		return current, nil
	}
	matched, confirmed, err := e.store.UpdateTransaction(ctx, current.SessionID, next.Status, next.PaymentStatus, confirm)
	if err != nil {
		log.Printf("[payments] Error updating transaction %s: %s\n", current.SessionID, err.Error())
		return nil, err
	}
	if !matched {
		return e.store.FindTransaction(ctx, current.SessionID)
	}
	if confirmed {
		e.confirmed(ctx, current.BookingID, &next, source)
	} else if confirm {
		log.Printf("[payments] Session %s paid but booking %s was not pending\n", current.SessionID, current.BookingID)
	}
	return &next, nil
}

func (e *Engine) confirmed(ctx context.Context, bookingID string, txn *models.PaymentTransaction, source string) {
	bookingConfirmationsTotal.WithLabelValues(source).Inc()
	log.Printf("[payments] Booking %s confirmed via %s (session %s)\n", bookingID, source, txn.SessionID)
	e.notifyConfirmed(ctx, txn)
}

// RepairConfirmations confirms pending bookings whose transaction already completed, which happens
// when the booking write failed after the transaction write. Returns how many were confirmed.
func (e *Engine) RepairConfirmations(ctx context.Context) (int, error) {
	txns, err := e.store.ListUnconfirmedPaid(ctx, e.opts.SweepLimit)
	if err != nil {
		return 0, err
	}
	repaired := 0
	for i := range txns {
		txn := &txns[i]
		moved, err := e.store.ConfirmBooking(ctx, txn.BookingID)
		if err != nil {
			log.Printf("[payments] Could not confirm booking %s: %s\n", txn.BookingID, err.Error())
			continue
		}
		if moved {
			e.confirmed(ctx, txn.BookingID, txn, "repair")
			repaired++
		}
	}
	return repaired, nil
}

func (e *Engine) notifyConfirmed(ctx context.Context, txn *models.PaymentTransaction) {
	if e.notifier == nil {
		return
	}
	booking, err := e.store.FindBooking(ctx, txn.BookingID)
	if err != nil {
		log.Printf("[payments] Could not load booking %s for notification: %s\n", txn.BookingID, err.Error())
		return
	}
	e.notifier.Dispatch(&lib.SendMailInput{
		From:     e.opts.From,
		FromName: "Apollo's Hideaway",
		To:       []string{booking.Email},
		Subject:  fmt.Sprintf("Your stay at %s is confirmed", booking.VillaName),
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour booking %s at %s from %s to %s for %d guest(s) is confirmed.\nTotal paid: %.2f %s\n",
			booking.GuestName, booking.ID, booking.VillaName, booking.CheckIn, booking.CheckOut, booking.Guests,
			txn.Amount, strings.ToUpper(txn.Currency),
		),
	})
}

func statusResult(txn *models.PaymentTransaction) *types.APIResponsePaymentStatus {
	return &types.APIResponsePaymentStatus{
		Status:        txn.Status,
		PaymentStatus: txn.PaymentStatus,
		BookingID:     txn.BookingID,
	}
}
