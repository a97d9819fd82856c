package handler

import (
	"encoding/json"
	"net/http"

	"github.com/car-parts-api/internal/application/user"
	"github.com/car-parts-api/internal/domain"
	"github.com/car-parts-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// UserHandler handles user directory endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

// Upsert is PUT /user/{email}: create-or-merge the profile and hand back a
// bearer token for that email.
func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, token, err := h.svc.Upsert(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UpsertEnvelope{Result: u, AccessToken: token})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GetByEmail is GET /user?email=: public single-user lookup.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}
	u, err := h.svc.GetByEmail(r.Context(), email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// UpdateProfile is PATCH /user/{id}: restricted to the five profile fields,
// role is unreachable from here.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Promote is PUT /user/admin/{email}: the requester is the verified identity,
// re-checked by the service on top of the admin middleware.
func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.PromoteToAdmin(r.Context(), chi.URLParam(r, "email"), claims.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "user promoted to admin"})
}

// AdminStatus is GET /admin/{email}: reports whether the named email holds
// the admin role.
func (h *UserHandler) AdminStatus(w http.ResponseWriter, r *http.Request) {
	isAdmin, err := h.svc.IsAdmin(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AdminEnvelope{Admin: isAdmin})
}
