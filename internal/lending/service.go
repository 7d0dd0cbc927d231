// internal/lending/service.go
package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"libralend/internal/fines"
)

// Service defines the interface for the lending rules engine.
type Service interface {
	Borrow(ctx context.Context, memberID, copyID uuid.UUID, date time.Time) (*Loan, error)
	Return(ctx context.Context, loanID uuid.UUID, date time.Time) (*ReturnResult, error)
	Reserve(ctx context.Context, memberID, copyID uuid.UUID, date time.Time) (*Reservation, error)
	GetLoan(ctx context.Context, id uuid.UUID) (*Loan, error)
}

// ReturnResult is the outcome of closing a loan: the closed loan, the
// assessment that ran against it, and the fine recorded when it was overdue.
type ReturnResult struct {
	Loan       *Loan            `json:"loan"`
	Assessment fines.Assessment `json:"assessment"`
	FineID     *uuid.UUID       `json:"fine_id,omitempty"`
}

// FineRecorder is the slice of the fine ledger the engine needs: inserting a
// fine inside the same transaction that closes the loan.
type FineRecorder interface {
	CreateInTx(ctx context.Context, tx *sqlx.Tx, loanID uuid.UUID, amount float64, fineDate time.Time) (uuid.UUID, error)
}
