// internal/fines/domain.go
package fines

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound               = errors.New("fines: fine not found")
	ErrInvalidTransactionType = errors.New("fines: unknown transaction type")
)

// TransactionType classifies a settlement event against a fine.
type TransactionType string

const (
	TransactionPayment TransactionType = "payment"
	TransactionWaiver  TransactionType = "waiver"
)

// Valid reports whether the transaction type is known.
func (t TransactionType) Valid() bool {
	return t == TransactionPayment || t == TransactionWaiver
}

// Status is the derived settlement state of a fine. It is never stored;
// it is computed from the fine's transaction history at read time.
type Status string

const (
	StatusOutstanding Status = "outstanding"
	StatusPaid        Status = "paid"
)

// Fine is a single overdue assessment against a loan. Amount reflects one
// specific overdue computation, not a running balance.
type Fine struct {
	ID       uuid.UUID `json:"id" db:"id"`
	LoanID   uuid.UUID `json:"loan_id" db:"loan_id"`
	Amount   float64   `json:"amount" db:"amount"`
	FineDate time.Time `json:"fine_date" db:"fine_date"`
}

// Transaction records a settlement event against a fine. Immutable once
// created.
type Transaction struct {
	ID     uuid.UUID       `json:"id" db:"id"`
	Type   TransactionType `json:"type" db:"type"`
	Date   time.Time       `json:"date" db:"date"`
	FineID uuid.UUID       `json:"fine_id" db:"fine_id"`
}

// FineWithStatus annotates a fine with its derived settlement status.
type FineWithStatus struct {
	Fine
	Status Status `json:"status" db:"-"`
}

// SettlementPolicy decides which transaction types settle a fine. A payment
// always settles; whether a waiver does is an explicit switch rather than an
// assumption.
type SettlementPolicy struct {
	WaiverSettles bool
}

// Settles reports whether a transaction of the given type settles a fine.
func (p SettlementPolicy) Settles(t TransactionType) bool {
	switch t {
	case TransactionPayment:
		return true
	case TransactionWaiver:
		return p.WaiverSettles
	}
	return false
}

// SettlingTypes returns the transaction types that settle a fine, for use in
// query predicates.
func (p SettlementPolicy) SettlingTypes() []string {
	types := []string{string(TransactionPayment)}
	if p.WaiverSettles {
		types = append(types, string(TransactionWaiver))
	}
	return types
}

// Derive computes a fine's settlement status from its transaction history.
func (p SettlementPolicy) Derive(txns []Transaction) Status {
	for _, txn := range txns {
		if p.Settles(txn.Type) {
			return StatusPaid
		}
	}
	return StatusOutstanding
}
