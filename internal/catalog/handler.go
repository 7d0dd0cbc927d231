// internal/catalog/handler.go
package catalog

import (
	"errors"
	"net/http"

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
	r.Post("/item-types", h.handleAddItemType)
	r.Get("/item-types/{id}", h.handleGetItemType)
	r.Post("/items", h.handleAddItem)
	r.Get("/items/{id}", h.handleGetItem)
	r.Get("/items/{id}/copies", h.handleListCopies)
	r.Post("/copies", h.handleAddCopy)
	r.Get("/copies/{id}", h.handleGetCopy)
}

func (h *Handler) handleAddItemType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		LoanPeriodDays int    `json:"loan_period_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	itemType, err := h.service.AddItemType(r.Context(), req.Name, req.LoanPeriodDays)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(itemType)
}

func (h *Handler) handleGetItemType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item type ID", http.StatusBadRequest)
		return
	}

	itemType, err := h.service.GetItemType(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(itemType)
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req NewItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.AddItem(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(item)
}

func (h *Handler) handleListCopies(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	copies, err := h.service.ListCopies(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(copies)
}

func (h *Handler) handleAddCopy(w http.ResponseWriter, r *http.Request) {
	var req NewCopy
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cp, err := h.service.AddCopy(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(cp)
}

func (h *Handler) handleGetCopy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid copy ID", http.StatusBadRequest)
		return
	}

	cp, err := h.service.GetCopy(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(cp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidLoanPeriod):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateISBN):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
