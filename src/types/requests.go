package types

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required"`
}

type AvailabilityQuery struct {
	VillaID  string `form:"villa_id" binding:"required"`
	CheckIn  string `form:"check_in" binding:"required,isodate"`
	CheckOut string `form:"check_out" binding:"required,isodate"`
}

type CreateBookingRequestBody struct {
	VillaID   string `json:"villa_id" binding:"required"`
	GuestName string `json:"guest_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	CheckIn   string `json:"check_in" binding:"required,isodate"`
	CheckOut  string `json:"check_out" binding:"required,isodate,gtdate=CheckIn"`
	Guests    int    `json:"guests" binding:"required,min=1"`
}

type CheckoutRequestBody struct {
	BookingID string `json:"booking_id" binding:"required"`
	OriginURL string `json:"origin_url" binding:"required,url"`
}

type SessionRequestParams struct {
	SessionID string `uri:"session_id" binding:"required"`
}

type ContactRequestBody struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone,omitempty"`
	Message string  `json:"message" binding:"required"`
}

type APIResponseAvailability struct {
	Available bool   `json:"available"`
	VillaID   string `json:"villa_id"`
}

type APIResponseCheckout struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type APIResponsePaymentStatus struct {
	Status        TransactionStatus `json:"status"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	BookingID     string            `json:"booking_id"`
}
