package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/car-parts-api/internal/domain"
	jwtinfra "github.com/car-parts-api/internal/infrastructure/jwt"
	"github.com/car-parts-api/internal/transport/http/middleware"
)

// claimsFrom pulls the verified identity the auth middleware stored on the
// request.
func claimsFrom(r *http.Request) (*jwtinfra.Claims, bool) {
	return middleware.ClaimsFromContext(r.Context())
}

// MessageEnvelope is the generic response wrapper. Errors always surface
// through the message field.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// UpsertEnvelope wraps PUT /user/{email} responses: the persisted profile
// plus a freshly issued bearer token.
type UpsertEnvelope struct {
	Result      *domain.User `json:"result"`
	AccessToken string       `json:"accessToken"`
}

// AdminEnvelope wraps GET /admin/{email} responses.
type AdminEnvelope struct {
	Admin bool `json:"admin"`
}

// IntentEnvelope wraps POST /create-payment-intent responses.
type IntentEnvelope struct {
	ClientSecret string `json:"clientSecret"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Message: msg})
}

// httpError maps domain sentinel errors to HTTP status codes. Anything
// unrecognised is a persistence or upstream failure and reports as 500 so
// clients can tell "service trouble" apart from "not allowed".
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrPaymentGateway):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
