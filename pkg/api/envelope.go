// Package api holds the JSON contract shared by the HTTP server and the Go
// client: the response envelope, resource shapes and request bodies.
package api

// ErrorKind classifies a failed request independently of the HTTP status, so
// callers can branch on it even when the server runs in legacy status mode.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindForbidden        ErrorKind = "forbidden"
	KindNotFound         ErrorKind = "not_found"
	KindConflict         ErrorKind = "conflict"
	KindPaymentSignature ErrorKind = "payment_signature"
	KindGateway          ErrorKind = "gateway"
	KindInternal         ErrorKind = "internal"
)

// Envelope is embedded in every response body.
type Envelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Errors  []string  `json:"errors,omitempty"`
	Kind    ErrorKind `json:"kind,omitempty"`
}

func OK(msg string) Envelope { return Envelope{Success: true, Message: msg} }

// Result returns the envelope itself; embedding promotes it to every response.
func (e Envelope) Result() Envelope { return e }

type Enveloped interface {
	Result() Envelope
}

// Canonical messages.
const (
	MsgHotelCreated    = "New hotel created successful."
	MsgHotelUpdated    = "Hotel update successful."
	MsgHotelDeleted    = "Hotel deleted successful."
	MsgHotelNotFound   = "This hotel does not exists."
	MsgImageAdded      = "Hotel image added."
	MsgImageRemoved    = "Hotel image removed."
	MsgPublicIDMissing = "Public id not found."
	MsgBookingUpdated  = "Booking updated successful."
	MsgBookingNotFound = "This booking does not exists."
	MsgRatingCreated   = "Rating created successful."
	MsgNotLegit        = "Transaction not legit!"
	MsgVerified        = "success"
	MsgCategoryCreated = "Category created successful."
	MsgCategoryUpdated = "Category update successful."
	MsgCategoryDeleted = "Category deleted successful."
	MsgRegistered      = "Register successful."
	MsgLoggedIn        = "Login successful."
	MsgLoggedOut       = "Logout successful."
	MsgNotFound        = "Resource not found."
	MsgUnauthorized    = "Please login to continue."
	MsgForbidden       = "Admin resources access denied."
	MsgConflict        = "These dates are already booked."
	MsgGateway         = "Payment provider unavailable, try again later."
	MsgInternal        = "Something went wrong, try again later!"
	MsgBadCredentials  = "Invalid login or password."
)
