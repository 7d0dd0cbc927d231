// internal/fines/assessor.go
package fines

import (
	"math"
	"time"
)

// DefaultDailyRate is the fine charged per overdue day when no rate is
// configured: one currency unit per day.
const DefaultDailyRate = 1.00

// Assessor computes fines for overdue returns. Assessment is a pure function
// of the loan dates and the item type's loan period, so a given return always
// produces the same fine.
type Assessor struct {
	DailyRate float64
}

// NewAssessor creates an assessor with the given per-day rate. A zero or
// negative rate falls back to the default.
func NewAssessor(dailyRate float64) Assessor {
	if dailyRate <= 0 {
		dailyRate = DefaultDailyRate
	}
	return Assessor{DailyRate: dailyRate}
}

// Assessment is the outcome of assessing one returned loan.
type Assessment struct {
	DueDate     time.Time
	OverdueDays int
	Amount      float64
}

// FineDue reports whether the return was overdue and a fine must be recorded.
func (a Assessment) FineDue() bool {
	return a.OverdueDays > 0
}

// Assess computes the due date from the borrow date and loan period, the
// whole overdue days (floored at zero), and the resulting fine amount.
func (a Assessor) Assess(borrowDate, returnDate time.Time, loanPeriodDays int) Assessment {
	dueDate := borrowDate.AddDate(0, 0, loanPeriodDays)

	overdueDays := int(civil(returnDate).Sub(civil(dueDate)).Hours() / 24)
	if overdueDays < 0 {
		overdueDays = 0
	}

	amount := math.Round(float64(overdueDays)*a.DailyRate*100) / 100

	return Assessment{
		DueDate:     dueDate,
		OverdueDays: overdueDays,
		Amount:      amount,
	}
}

// civil truncates a timestamp to its UTC calendar date, so overdue days count
// whole calendar days rather than 24-hour windows.
func civil(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
