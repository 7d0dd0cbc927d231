// internal/reporting/domain.go
package reporting

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"libralend/internal/fines"
	"libralend/internal/membership"
)

var ErrInvalidRange = errors.New("reporting: start date is after end date")

// LoanRecord is one row of the loan projections: a loan joined to its member
// and the title of the borrowed item.
type LoanRecord struct {
	LoanID     uuid.UUID       `json:"loan_id" db:"loan_id"`
	MemberID   uuid.UUID       `json:"member_id" db:"member_id"`
	MemberName string          `json:"member_name" db:"member_name"`
	Role       membership.Role `json:"role" db:"role"`
	CopyID     uuid.UUID       `json:"copy_id" db:"copy_id"`
	Title      string          `json:"title" db:"title"`
	BorrowDate time.Time       `json:"borrow_date" db:"borrow_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty" db:"return_date"`
}

// OutstandingFine is one row of the outstanding-fines projection, annotated
// with its derived settlement status.
type OutstandingFine struct {
	FineID   uuid.UUID    `json:"fine_id" db:"fine_id"`
	LoanID   uuid.UUID    `json:"loan_id" db:"loan_id"`
	Amount   float64      `json:"amount" db:"amount"`
	FineDate time.Time    `json:"fine_date" db:"fine_date"`
	Title    string       `json:"title" db:"title"`
	Status   fines.Status `json:"status" db:"-"`
}

// CurrentLoansFilter narrows the current-loans projection. A nil MemberID
// means all members; an empty Roles set means all roles.
type CurrentLoansFilter struct {
	MemberID *uuid.UUID
	Roles    []membership.Role
}
