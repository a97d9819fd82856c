package handler

import (
	"encoding/json"
	"net/http"

	"github.com/car-parts-api/internal/application/payment"
	"github.com/car-parts-api/internal/domain"
)

// PaymentHandler handles payment intent creation.
type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler { return &PaymentHandler{svc: svc} }

// CreateIntent is POST /create-payment-intent: converts a price to minor
// units and relays the gateway's client secret.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	secret, err := h.svc.CreateIntent(r.Context(), req.Price)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, IntentEnvelope{ClientSecret: secret})
}
