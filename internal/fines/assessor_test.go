// internal/fines/assessor_test.go
package fines

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAssessOverdueReturn(t *testing.T) {
	assessor := NewAssessor(1.00)

	// 14-day loan borrowed 2024-09-01 is due 2024-09-15; returning on
	// 2024-09-20 is 5 days late.
	got := assessor.Assess(date(2024, time.September, 1), date(2024, time.September, 20), 14)

	assert.Equal(t, date(2024, time.September, 15), got.DueDate)
	assert.Equal(t, 5, got.OverdueDays)
	assert.Equal(t, 5.00, got.Amount)
	assert.True(t, got.FineDue())
}

func TestAssessOnTimeReturn(t *testing.T) {
	assessor := NewAssessor(1.00)

	tests := []struct {
		name       string
		returnDate time.Time
	}{
		{name: "returned early", returnDate: date(2024, time.September, 5)},
		{name: "returned on the due date", returnDate: date(2024, time.September, 15)},
		{name: "returned same day", returnDate: date(2024, time.September, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assessor.Assess(date(2024, time.September, 1), tt.returnDate, 14)
			assert.Equal(t, 0, got.OverdueDays)
			assert.Equal(t, 0.00, got.Amount)
			assert.False(t, got.FineDue())
		})
	}
}

func TestAssessCountsCalendarDaysNotClockHours(t *testing.T) {
	assessor := NewAssessor(1.00)

	borrow := time.Date(2024, time.September, 1, 23, 30, 0, 0, time.UTC)
	// Due 2024-09-15 23:30; returning 2024-09-16 at 00:10 is under an hour
	// past due but one calendar day late.
	ret := time.Date(2024, time.September, 16, 0, 10, 0, 0, time.UTC)

	got := assessor.Assess(borrow, ret, 14)
	assert.Equal(t, 1, got.OverdueDays)
	assert.Equal(t, 1.00, got.Amount)
}

func TestAssessRespectsDailyRate(t *testing.T) {
	assessor := NewAssessor(0.25)

	got := assessor.Assess(date(2024, time.January, 1), date(2024, time.January, 20), 7)
	assert.Equal(t, 12, got.OverdueDays)
	assert.Equal(t, 3.00, got.Amount)
}

func TestNewAssessorFallsBackToDefaultRate(t *testing.T) {
	assert.Equal(t, DefaultDailyRate, NewAssessor(0).DailyRate)
	assert.Equal(t, DefaultDailyRate, NewAssessor(-2).DailyRate)
	assert.Equal(t, 0.50, NewAssessor(0.50).DailyRate)
}

func TestAssessProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		assessor := NewAssessor(1.00)

		borrow := time.Unix(rapid.Int64Range(0, 4_000_000_000).Draw(t, "borrow"), 0).UTC()
		heldDays := rapid.IntRange(0, 400).Draw(t, "heldDays")
		loanPeriod := rapid.IntRange(1, 120).Draw(t, "loanPeriod")
		ret := borrow.AddDate(0, 0, heldDays)

		got := assessor.Assess(borrow, ret, loanPeriod)

		if got.OverdueDays < 0 {
			t.Fatalf("overdue days must never be negative, got %d", got.OverdueDays)
		}
		if got.Amount != float64(got.OverdueDays)*assessor.DailyRate {
			t.Fatalf("amount %f must equal overdue days %d times rate", got.Amount, got.OverdueDays)
		}
		if heldDays <= loanPeriod && got.FineDue() {
			t.Fatalf("no fine may be due when held %d days within a %d day period", heldDays, loanPeriod)
		}
		if heldDays > loanPeriod && got.OverdueDays != heldDays-loanPeriod {
			t.Fatalf("expected %d overdue days, got %d", heldDays-loanPeriod, got.OverdueDays)
		}
	})
}

func TestAssessIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		assessor := NewAssessor(1.00)

		borrow := time.Unix(rapid.Int64Range(0, 4_000_000_000).Draw(t, "borrow"), 0).UTC()
		ret := borrow.AddDate(0, 0, rapid.IntRange(0, 100).Draw(t, "held"))
		period := rapid.IntRange(1, 60).Draw(t, "period")

		first := assessor.Assess(borrow, ret, period)
		second := assessor.Assess(borrow, ret, period)
		assert.Equal(t, first, second)
	})
}
