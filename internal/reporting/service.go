// internal/reporting/service.go
package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the read-only reporting queries. Each query observes one
// consistent snapshot of the ledgers and has no side effects.
type Service interface {
	CurrentLoans(ctx context.Context, filter CurrentLoansFilter) ([]LoanRecord, error)
	LoanHistory(ctx context.Context, memberID uuid.UUID, start, end time.Time) ([]LoanRecord, error)
	OutstandingFines(ctx context.Context, memberID uuid.UUID) ([]OutstandingFine, error)
}
