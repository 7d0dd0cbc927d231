// internal/fines/handler.go
package fines

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/fines/{id}", h.handleGetFine)
	r.Get("/fines/{id}/transactions", h.handleListTransactions)
	r.Post("/fines/{id}/transactions", h.handleRecordTransaction)
}

func (h *Handler) handleGetFine(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid fine ID", http.StatusBadRequest)
		return
	}

	fine, err := h.service.GetFine(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(fine)
}

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid fine ID", http.StatusBadRequest)
		return
	}

	txns, err := h.service.ListTransactions(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(txns)
}

func (h *Handler) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	fineID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid fine ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Type TransactionType `json:"type"`
		Date time.Time       `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	id, err := h.service.RecordTransaction(r.Context(), fineID, req.Type, req.Date)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]uuid.UUID{"transaction_id": id})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransactionType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
