// internal/lending/handler.go
package lending

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"libralend/internal/postgres"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/loans", h.handleBorrow)
	r.Get("/loans/{id}", h.handleGetLoan)
	r.Post("/loans/{id}/return", h.handleReturn)
	r.Post("/reservations", h.handleReserve)
}

func (h *Handler) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID uuid.UUID `json:"member_id"`
		CopyID   uuid.UUID `json:"copy_id"`
		Date     time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	loan, err := h.service.Borrow(r.Context(), req.MemberID, req.CopyID, req.Date)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(loan)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	loanID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid loan ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Date time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	result, err := h.service.Return(r.Context(), loanID, req.Date)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(result)
}

func (h *Handler) handleReserve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID uuid.UUID `json:"member_id"`
		CopyID   uuid.UUID `json:"copy_id"`
		Date     time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	reservation, err := h.service.Reserve(r.Context(), req.MemberID, req.CopyID, req.Date)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reservation)
}

func (h *Handler) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid loan ID", http.StatusBadRequest)
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(loan)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrCopyNotFound),
		errors.Is(err, ErrLoanNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBorrowLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrCopyUnavailable),
		errors.Is(err, ErrAlreadyReturned),
		errors.Is(err, postgres.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
