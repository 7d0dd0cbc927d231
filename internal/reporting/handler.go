// internal/reporting/handler.go
package reporting

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"libralend/internal/membership"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/reports/current-loans", h.handleCurrentLoans)
	r.Get("/reports/members/{id}/loan-history", h.handleLoanHistory)
	r.Get("/reports/members/{id}/outstanding-fines", h.handleOutstandingFines)
}

func (h *Handler) handleCurrentLoans(w http.ResponseWriter, r *http.Request) {
	filter := CurrentLoansFilter{}

	if raw := r.URL.Query().Get("member_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid member ID", http.StatusBadRequest)
			return
		}
		filter.MemberID = &id
	}

	for _, raw := range r.URL.Query()["role"] {
		role := membership.Role(raw)
		if !role.Valid() {
			http.Error(w, "unknown role: "+raw, http.StatusBadRequest)
			return
		}
		filter.Roles = append(filter.Roles, role)
	}

	records, err := h.service.CurrentLoans(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(records)
}

func (h *Handler) handleLoanHistory(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid member ID", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "invalid start date", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "invalid end date", http.StatusBadRequest)
		return
	}

	records, err := h.service.LoanHistory(r.Context(), memberID, start, end)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(records)
}

func (h *Handler) handleOutstandingFines(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid member ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.OutstandingFines(r.Context(), memberID)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	json.NewEncoder(w).Encode(result)
}

func statusFor(err error) int {
	if errors.Is(err, ErrInvalidRange) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
