package types

// CheckoutRequest is what the engine asks a payment provider to open.
type CheckoutRequest struct {
	Amount      float64
	Currency    string
	SuccessURL  string
	CancelURL   string
	CallbackURL string
	Metadata    map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentObservation is one provider-reported view of a checkout session.
type PaymentObservation struct {
	SessionID     string
	Status        TransactionStatus
	PaymentStatus PaymentStatus
}
