package request

type SubmitBookingRequest struct {
	SessionID     string `json:"session_id" validate:"required,uuid4"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card"`
}
