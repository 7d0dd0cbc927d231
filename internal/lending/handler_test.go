// internal/lending/handler_test.go
package lending

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"libralend/internal/postgres"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: ErrMemberNotFound, want: http.StatusNotFound},
		{err: ErrCopyNotFound, want: http.StatusNotFound},
		{err: ErrLoanNotFound, want: http.StatusNotFound},
		{err: ErrBorrowLimitExceeded, want: http.StatusUnprocessableEntity},
		{err: ErrCopyUnavailable, want: http.StatusConflict},
		{err: ErrAlreadyReturned, want: http.StatusConflict},
		{err: postgres.ErrConflict, want: http.StatusConflict},
		{err: ErrValidation, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: return date precedes borrow date", ErrValidation), want: http.StatusBadRequest},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

// A serialization failure raised by one of the in-transaction SELECTs (for
// example the open-loan count) comes back wrapped in query context. Once the
// transaction helper maps it, it must still surface as a retryable conflict.
func TestStatusForSerializationFailureFromQuery(t *testing.T) {
	fromSelect := fmt.Errorf("count open loans: %w", &pq.Error{Code: "40001"})

	mapped := postgres.MapError(fromSelect)
	assert.ErrorIs(t, mapped, postgres.ErrConflict)
	assert.Equal(t, http.StatusConflict, statusFor(mapped))

	fromJoin := fmt.Errorf("load loan for return: %w", &pq.Error{Code: "40P01"})
	assert.Equal(t, http.StatusConflict, statusFor(postgres.MapError(fromJoin)))
}

func TestLoanOpen(t *testing.T) {
	loan := Loan{}
	assert.True(t, loan.Open())

	now := loan.BorrowDate.AddDate(0, 0, 3)
	loan.ReturnDate = &now
	assert.False(t, loan.Open())
}
