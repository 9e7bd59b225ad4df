package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/pkg/api"
)

func (h *Handlers) writeRatings(w http.ResponseWriter, r *http.Request, rs []domain.RatingView, err error) {
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.ok(w, http.StatusOK, api.RatingsResponse{Envelope: api.OK(""), Ratings: toAPIRatingViews(rs)})
}

func (h *Handlers) allRatings(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Ratings.All(r.Context())
	h.writeRatings(w, r, rs, err)
}

func (h *Handlers) hotelRatings(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Ratings.ForHotel(r.Context(), chi.URLParam(r, "hotel"))
	h.writeRatings(w, r, rs, err)
}

func (h *Handlers) myRatings(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Ratings.Mine(r.Context(), currentUser(r.Context()).ID)
	h.writeRatings(w, r, rs, err)
}

func (h *Handlers) createRating(w http.ResponseWriter, r *http.Request) {
	var req api.RatingRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	in := app.RatingInput{Comment: req.Comment, Rating: req.Rating.Ptr()}
	created, err := h.Ratings.Create(r.Context(), currentUser(r.Context()), chi.URLParam(r, "hotel"), in)
	if err != nil {
		h.fail(w, r, err, api.MsgHotelNotFound)
		return
	}
	rt := toAPIRating(created)
	h.ok(w, http.StatusCreated, api.RatingResponse{Envelope: api.OK(api.MsgRatingCreated), Rating: &rt})
}
