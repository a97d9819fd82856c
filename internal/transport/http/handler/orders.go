package handler

import (
	"encoding/json"
	"net/http"

	"github.com/car-parts-api/internal/application/order"
	"github.com/car-parts-api/internal/domain"
	"github.com/car-parts-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// OrderHandler handles order lifecycle endpoints.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler { return &OrderHandler{svc: svc} }

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	o, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListAll(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// ListByOwner is GET /orders/{email}. The self-ownership middleware has
// already matched the verified identity against the email parameter.
func (h *OrderHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListByOwner(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// ConfirmPayment is PATCH /order/{id}: the client reports a completed
// gateway transaction; the order moves placed -> pending.
func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	o, err := h.svc.ConfirmPayment(r.Context(), chi.URLParam(r, "id"), req.TransactionID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// MarkShipped is PATCH /orderstatus/{id}: the order moves pending -> shipped.
func (h *OrderHandler) MarkShipped(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.MarkShipped(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "order deleted"})
}
