package payments

import (
	"testing"

	"villas/src/models"
	"villas/src/types"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	initiated := models.PaymentTransaction{SessionID: "cs_1", Status: types.TRANSACTION_INITIATED, PaymentStatus: types.PAYMENT_PENDING}
	completed := models.PaymentTransaction{SessionID: "cs_1", Status: types.TRANSACTION_COMPLETED, PaymentStatus: types.PAYMENT_PAID}
	failed := models.PaymentTransaction{SessionID: "cs_1", Status: types.TRANSACTION_FAILED, PaymentStatus: types.PAYMENT_UNPAID}
	expired := models.PaymentTransaction{SessionID: "cs_1", Status: types.TRANSACTION_EXPIRED, PaymentStatus: types.PAYMENT_UNPAID}

	cases := []struct {
		name        string
		current     models.PaymentTransaction
		obs         types.PaymentObservation
		wantStatus  types.TransactionStatus
		wantPayment types.PaymentStatus
		wantConfirm bool
	}{
		{"paid completes and confirms", initiated,
			types.PaymentObservation{Status: types.TRANSACTION_COMPLETED, PaymentStatus: types.PAYMENT_PAID},
			types.TRANSACTION_COMPLETED, types.PAYMENT_PAID, true},
		{"paid without status completes", initiated,
			types.PaymentObservation{PaymentStatus: types.PAYMENT_PAID},
			types.TRANSACTION_COMPLETED, types.PAYMENT_PAID, true},
		{"still open", initiated,
			types.PaymentObservation{Status: types.TRANSACTION_INITIATED, PaymentStatus: types.PAYMENT_PENDING},
			types.TRANSACTION_INITIATED, types.PAYMENT_PENDING, false},
		{"expired", initiated,
			types.PaymentObservation{Status: types.TRANSACTION_EXPIRED, PaymentStatus: types.PAYMENT_UNPAID},
			types.TRANSACTION_EXPIRED, types.PAYMENT_UNPAID, false},
		{"completed is absorbing for paid replay", completed,
			types.PaymentObservation{Status: types.TRANSACTION_COMPLETED, PaymentStatus: types.PAYMENT_PAID},
			types.TRANSACTION_COMPLETED, types.PAYMENT_PAID, false},
		{"completed is absorbing for stale expiry", completed,
			types.PaymentObservation{Status: types.TRANSACTION_EXPIRED, PaymentStatus: types.PAYMENT_UNPAID},
			types.TRANSACTION_COMPLETED, types.PAYMENT_PAID, false},
		{"completed claim without payment is ignored", initiated,
			types.PaymentObservation{Status: types.TRANSACTION_COMPLETED, PaymentStatus: types.PAYMENT_PENDING},
			types.TRANSACTION_INITIATED, types.PAYMENT_PENDING, false},
		{"failed does not reopen", failed,
			types.PaymentObservation{Status: types.TRANSACTION_INITIATED, PaymentStatus: types.PAYMENT_PENDING},
			types.TRANSACTION_FAILED, types.PAYMENT_UNPAID, false},
		{"failed does not become expired", failed,
			types.PaymentObservation{Status: types.TRANSACTION_EXPIRED, PaymentStatus: types.PAYMENT_UNPAID},
			types.TRANSACTION_FAILED, types.PAYMENT_UNPAID, false},
		{"expired does not reopen", expired,
			types.PaymentObservation{Status: types.TRANSACTION_INITIATED, PaymentStatus: types.PAYMENT_PENDING},
			types.TRANSACTION_EXPIRED, types.PAYMENT_UNPAID, false},
		{"late payment after failure still completes", failed,
			types.PaymentObservation{PaymentStatus: types.PAYMENT_PAID},
			types.TRANSACTION_COMPLETED, types.PAYMENT_PAID, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			next, confirm := Reconcile(c.current, c.obs)
			assert.Equal(t, c.wantStatus, next.Status)
			assert.Equal(t, c.wantPayment, next.PaymentStatus)
			assert.Equal(t, c.wantConfirm, confirm)
			assert.Equal(t, c.current.SessionID, next.SessionID)
		})
	}
}
