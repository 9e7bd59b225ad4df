package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/pkg/api"
)

const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

// decode reads a JSON body; malformed input is a validation failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(dst); err != nil {
		return &app.ValidationError{Errors: []string{"Invalid request body: " + err.Error()}}
	}
	return nil
}

// classify maps an error to its kind, HTTP status and client-facing message.
// notFound overrides the generic not-found message.
func classify(err error, notFound string) (api.Envelope, int) {
	var ve *app.ValidationError
	switch {
	case errors.As(err, &ve):
		return api.Envelope{Kind: api.KindValidation, Message: ve.Error(), Errors: ve.Errors}, http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		if notFound == "" {
			notFound = api.MsgNotFound
		}
		return api.Envelope{Kind: api.KindNotFound, Message: notFound}, http.StatusNotFound
	case errors.Is(err, app.ErrSignatureMismatch):
		return api.Envelope{Kind: api.KindPaymentSignature, Message: api.MsgNotLegit}, http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return api.Envelope{Kind: api.KindConflict, Message: api.MsgConflict}, http.StatusConflict
	case errors.Is(err, domain.ErrDuplicate):
		return api.Envelope{Kind: api.KindConflict, Message: "This resource already exists."}, http.StatusConflict
	case errors.Is(err, app.ErrInvalidCredentials):
		return api.Envelope{Kind: api.KindUnauthorized, Message: api.MsgBadCredentials}, http.StatusUnauthorized
	case errors.Is(err, app.ErrUnauthorized):
		return api.Envelope{Kind: api.KindUnauthorized, Message: api.MsgUnauthorized}, http.StatusUnauthorized
	case errors.Is(err, app.ErrForbidden):
		return api.Envelope{Kind: api.KindForbidden, Message: api.MsgForbidden}, http.StatusForbidden
	case errors.Is(err, app.ErrGateway):
		return api.Envelope{Kind: api.KindGateway, Message: api.MsgGateway}, http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return api.Envelope{Kind: api.KindInternal, Message: api.MsgInternal}, http.StatusGatewayTimeout
	}
	return api.Envelope{Kind: api.KindInternal, Message: api.MsgInternal}, http.StatusInternalServerError
}

func (h *Handlers) status(code int) int {
	if h.LegacyStatus {
		return http.StatusOK
	}
	return code
}

// fail writes the error envelope. Internal details are logged, never sent.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	env, code := classify(err, notFound)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("route", routeOf(r)).Str("method", r.Method).Msg("request failed")
	}
	writeJSON(w, h.status(code), env)
}

func (h *Handlers) ok(w http.ResponseWriter, code int, v api.Enveloped) {
	writeJSON(w, h.status(code), v)
}
