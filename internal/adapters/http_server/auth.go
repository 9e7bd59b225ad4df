package httpserver

import (
	"net/http"

	"staybook/internal/app"
	"staybook/pkg/api"
)

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	_, err := h.Auth.Register(r.Context(), app.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
		Image:        req.Image,
	})
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	token, u, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.ok(w, http.StatusCreated, api.AuthResponse{Envelope: api.OK(api.MsgRegistered), Token: token, User: toAPIUser(u)})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	token, u, err := h.Auth.Login(r.Context(), req.Login(), req.Password)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.ok(w, http.StatusOK, api.AuthResponse{Envelope: api.OK(api.MsgLoggedIn), Token: token, User: toAPIUser(u)})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), currentToken(r.Context())); err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.ok(w, http.StatusOK, api.OK(api.MsgLoggedOut))
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	h.ok(w, http.StatusOK, api.UserResponse{Envelope: api.OK(""), User: toAPIUser(currentUser(r.Context()))})
}
