// internal/catalog/domain.go
package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("catalog: not found")
	ErrInvalidLoanPeriod = errors.New("catalog: loan period must be positive")
	ErrDuplicateISBN     = errors.New("catalog: isbn already registered")
)

// ItemType is immutable reference data describing how long items of this
// type may be held.
type ItemType struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	LoanPeriodDays int       `json:"loan_period_days" db:"loan_period_days"`
}

// Item represents a catalog title. Many physical copies may exist per item.
type Item struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Author     *string   `json:"author,omitempty" db:"author"`
	ISBN       *string   `json:"isbn,omitempty" db:"isbn"`
	ISSN       *string   `json:"issn,omitempty" db:"issn"`
	ItemTypeID uuid.UUID `json:"item_type_id" db:"item_type_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Copy is a physical copy of an item, the unit that gets borrowed.
type Copy struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Condition string    `json:"condition" db:"condition"`
	Location  string    `json:"location" db:"location"`
	ItemID    uuid.UUID `json:"item_id" db:"item_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewItem carries the fields needed to register a title.
type NewItem struct {
	Title      string    `json:"title"`
	Author     *string   `json:"author,omitempty"`
	ISBN       *string   `json:"isbn,omitempty"`
	ISSN       *string   `json:"issn,omitempty"`
	ItemTypeID uuid.UUID `json:"item_type_id"`
}

// NewCopy carries the fields needed to register a physical copy.
type NewCopy struct {
	Condition string    `json:"condition"`
	Location  string    `json:"location"`
	ItemID    uuid.UUID `json:"item_id"`
}
