// internal/lending/domain.go
package lending

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxOpenLoans is the borrow cap: no member may hold more than five open
// loans at any observable point in time.
const MaxOpenLoans = 5

var (
	ErrMemberNotFound      = errors.New("lending: member not found")
	ErrCopyNotFound        = errors.New("lending: copy not found")
	ErrLoanNotFound        = errors.New("lending: loan not found")
	ErrCopyUnavailable     = errors.New("lending: copy already on loan")
	ErrBorrowLimitExceeded = errors.New("lending: member has reached the open loan limit")
	ErrAlreadyReturned     = errors.New("lending: loan already returned")
	ErrValidation          = errors.New("lending: invalid request")
)

// Loan records a member holding a copy. A nil ReturnDate means the loan is
// open; a copy has at most one open loan at any time.
type Loan struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	MemberID   uuid.UUID  `json:"member_id" db:"member_id"`
	CopyID     uuid.UUID  `json:"copy_id" db:"copy_id"`
	BorrowDate time.Time  `json:"borrow_date" db:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty" db:"return_date"`
}

// Open reports whether the loan has not been returned yet.
func (l Loan) Open() bool {
	return l.ReturnDate == nil
}

// Reservation is an advisory hold on a copy. It is recorded but does not
// block another member from borrowing the copy.
type Reservation struct {
	ID          uuid.UUID `json:"id" db:"id"`
	MemberID    uuid.UUID `json:"member_id" db:"member_id"`
	CopyID      uuid.UUID `json:"copy_id" db:"copy_id"`
	ReserveDate time.Time `json:"reserve_date" db:"reserve_date"`
}
