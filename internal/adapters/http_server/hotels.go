package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staybook/internal/app"
	"staybook/pkg/api"
)

func (h *Handlers) listHotelsPage(w http.ResponseWriter, r *http.Request) {
	q, err := app.ParseHotelQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	page, err := h.Hotels.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.ok(w, http.StatusOK, api.HotelsPageResponse{
		Envelope: api.OK(""),
		Hotels:   toAPIHotelViews(page.Items),
		Count:    page.Count,
	})
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Hotels.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.ok(w, http.StatusOK, api.HotelsResponse{Envelope: api.OK(""), Hotels: toAPIHotelViews(hs)})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hv, err := h.Hotels.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, api.MsgHotelNotFound)
		return
	}
	hotel := toAPIHotelView(hv)
	etag, body := calcETagAndBody(api.HotelResponse{Envelope: api.OK(""), Hotel: &hotel})
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getHotel body")
	}
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var req api.HotelRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	created, err := h.Hotels.Create(r.Context(), currentUser(r.Context()), hotelInput(req))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	hotel := toAPIHotel(created)
	h.ok(w, http.StatusCreated, api.HotelResponse{Envelope: api.OK(api.MsgHotelCreated), Hotel: &hotel})
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	var req api.HotelRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.Hotels.Update(r.Context(), chi.URLParam(r, "id"), hotelInput(req)); err != nil {
		h.fail(w, r, err, api.MsgHotelNotFound)
		return
	}
	h.ok(w, http.StatusOK, api.OK(api.MsgHotelUpdated))
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.Hotels.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, api.MsgHotelNotFound)
		return
	}
	h.ok(w, http.StatusOK, api.OK(api.MsgHotelDeleted))
}

func (h *Handlers) addImages(w http.ResponseWriter, r *http.Request) {
	var req api.AddImagesRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.Hotels.AddImages(r.Context(), chi.URLParam(r, "id"), fromAPIImages(req.Images)); err != nil {
		h.fail(w, r, err, api.MsgHotelNotFound)
		return
	}
	h.ok(w, http.StatusOK, api.OK(api.MsgImageAdded))
}

func (h *Handlers) removeImage(w http.ResponseWriter, r *http.Request) {
	var req api.RemoveImageRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.Hotels.RemoveImage(r.Context(), chi.URLParam(r, "id"), req.PublicID); err != nil {
		h.fail(w, r, err, api.MsgHotelNotFound)
		return
	}
	h.ok(w, http.StatusOK, api.OK(api.MsgImageRemoved))
}
