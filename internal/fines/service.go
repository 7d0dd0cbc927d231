// internal/fines/service.go
package fines

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Service defines the interface for the fine ledger.
type Service interface {
	// RecordTransaction appends a settlement event against a fine. No
	// double-payment guard exists: settlement is derived at read time.
	RecordTransaction(ctx context.Context, fineID uuid.UUID, txnType TransactionType, date time.Time) (uuid.UUID, error)
	GetFine(ctx context.Context, id uuid.UUID) (*FineWithStatus, error)
	ListTransactions(ctx context.Context, fineID uuid.UUID) ([]*Transaction, error)

	// CreateInTx inserts a fine inside a caller-owned transaction. The
	// lending engine uses this to make a fine atomic with the loan close
	// that triggered it.
	CreateInTx(ctx context.Context, tx *sqlx.Tx, loanID uuid.UUID, amount float64, fineDate time.Time) (uuid.UUID, error)
}
