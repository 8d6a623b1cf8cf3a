package payments

import (
	"villas/src/models"
	"villas/src/types"
)

// Reconcile is the single transition applied by checkout polling, webhooks and the stale sweep.
// A completed transaction never changes. Failed and expired transactions only accept a paid
// observation. The first paid observation completes the transaction and is the only one that
// asks for the booking to be confirmed.
func Reconcile(current models.PaymentTransaction, obs types.PaymentObservation) (models.PaymentTransaction, bool) {
	if current.Status == types.TRANSACTION_COMPLETED {
		return current, false
	}
	next := current
	if obs.PaymentStatus == types.PAYMENT_PAID {
		next.Status = types.TRANSACTION_COMPLETED
		next.PaymentStatus = types.PAYMENT_PAID
		return next, true
	}
	if current.Status != types.TRANSACTION_INITIATED {
		return current, false
	}
	if obs.Status != "" && obs.Status != types.TRANSACTION_COMPLETED {
		next.Status = obs.Status
	}
	if obs.PaymentStatus != "" {
		next.PaymentStatus = obs.PaymentStatus
	}
	return next, false
}
