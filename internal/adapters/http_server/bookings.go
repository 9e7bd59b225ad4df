package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staybook/internal/adapters/observability"
	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/pkg/api"
)

func (h *Handlers) writeBookings(w http.ResponseWriter, r *http.Request, bs []domain.BookingView, err error) {
	if err != nil {
		h.fail(w, r, err, api.MsgBookingNotFound)
		return
	}
	h.ok(w, http.StatusOK, api.BookingsResponse{Envelope: api.OK(""), Bookings: toAPIBookingViews(bs)})
}

func (h *Handlers) myBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Bookings.Mine(r.Context(), currentUser(r.Context()).ID)
	h.writeBookings(w, r, bs, err)
}

func (h *Handlers) allBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Bookings.All(r.Context())
	h.writeBookings(w, r, bs, err)
}

func (h *Handlers) hotelBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Bookings.ForHotel(r.Context(), chi.URLParam(r, "hotel"))
	h.writeBookings(w, r, bs, err)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	bv, err := h.Bookings.Get(r.Context(), currentUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, api.MsgBookingNotFound)
		return
	}
	b := toAPIBookingViews([]domain.BookingView{bv})[0]
	h.ok(w, http.StatusOK, api.BookingResponse{Envelope: api.OK(""), Booking: &b})
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	var req api.BookingStatusRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.Bookings.UpdateStatus(r.Context(), req.ID, domain.BookingStatus(req.Status)); err != nil {
		h.fail(w, r, err, api.MsgBookingNotFound)
		return
	}
	h.ok(w, http.StatusOK, api.OK(api.MsgBookingUpdated))
}

func (h *Handlers) createOrder(w http.ResponseWriter, r *http.Request) {
	var req api.OrderRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	var price float64
	if p := req.Price.Ptr(); p != nil {
		price = *p
	}
	order, err := h.Bookings.CreateOrder(r.Context(), price)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.ok(w, http.StatusOK, api.OrderResponse{Envelope: api.OK(""), Order: toAPIOrder(order)})
}

func (h *Handlers) verify(w http.ResponseWriter, r *http.Request) {
	var req api.VerificationRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	b, err := h.Bookings.Verify(r.Context(), currentUser(r.Context()), verifyInput(req))
	switch {
	case errors.Is(err, app.ErrSignatureMismatch):
		observability.ObservePayment("mismatch")
		env, code := classify(err, "")
		// legacy clients read msg
		h.ok(w, code, api.VerificationResponse{Envelope: env, Msg: api.MsgNotLegit})
		return
	case errors.Is(err, domain.ErrConflict):
		observability.ObservePayment("conflict")
		h.fail(w, r, err, "")
		return
	case err != nil:
		observability.ObservePayment("error")
		h.fail(w, r, err, api.MsgHotelNotFound)
		return
	}
	observability.ObservePayment("booked")
	booking := toAPIBooking(b)
	h.ok(w, http.StatusCreated, api.VerificationResponse{
		Envelope:  api.OK(""),
		Msg:       api.MsgVerified,
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Booking:   &booking,
	})
}
