package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/car-parts-api/internal/application/catalog"
	"github.com/car-parts-api/internal/domain"
	"github.com/car-parts-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// PartHandler handles catalog endpoints.
type PartHandler struct {
	svc catalog.Service
}

func NewPartHandler(svc catalog.Service) *PartHandler { return &PartHandler{svc: svc} }

func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	parts, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parts)
}

func (h *PartHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "part deleted"})
}

// UploadImage is POST /part/{id}/image: multipart upload stored in S3.
func (h *PartHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	url, err := h.svc.UploadImage(r.Context(), chi.URLParam(r, "id"), header.Filename, file)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"img": url})
}

// DownloadImage is GET /part/{id}/image: streams the stored image.
func (h *PartHandler) DownloadImage(w http.ResponseWriter, r *http.Request) {
	body, contentType, err := h.svc.DownloadImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	defer body.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}
