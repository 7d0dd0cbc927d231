// internal/lending/implementation.go
package lending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"libralend/internal/fines"
	"libralend/internal/postgres"
)

// service implements the Service interface. Every command runs as one
// serializable transaction: the limit check is atomic with the loan insert,
// and a triggered fine is atomic with the loan close.
type service struct {
	db         *sqlx.DB
	assessor   fines.Assessor
	fineLedger FineRecorder
	logger     *zap.Logger
	tracer     trace.Tracer
}

// NewService creates a new lending rules engine instance.
func NewService(db *sqlx.DB, assessor fines.Assessor, fineLedger FineRecorder, logger *zap.Logger) Service {
	return &service{
		db:         db,
		assessor:   assessor,
		fineLedger: fineLedger,
		logger:     logger,
		tracer:     otel.Tracer("libralend/lending"),
	}
}

// Borrow creates an open loan for the member, enforcing copy availability and
// the open-loan cap inside one serializable unit of work.
func (s *service) Borrow(ctx context.Context, memberID, copyID uuid.UUID, date time.Time) (*Loan, error) {
	ctx, span := s.tracer.Start(ctx, "lending.borrow",
		trace.WithAttributes(
			attribute.String("member.id", memberID.String()),
			attribute.String("copy.id", copyID.String()),
		),
	)
	defer span.End()

	loan := &Loan{
		ID:         uuid.New(),
		MemberID:   memberID,
		CopyID:     copyID,
		BorrowDate: date,
	}

	err := postgres.RunSerializable(ctx, s.db, func(tx *sqlx.Tx) error {
		var exists bool

		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, memberID); err != nil {
			return fmt.Errorf("check member: %w", err)
		}
		if !exists {
			return ErrMemberNotFound
		}

		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM copies WHERE id = $1)`, copyID); err != nil {
			return fmt.Errorf("check copy: %w", err)
		}
		if !exists {
			return ErrCopyNotFound
		}

		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM loans WHERE copy_id = $1 AND return_date IS NULL)`, copyID); err != nil {
			return fmt.Errorf("check open loan for copy: %w", err)
		}
		if exists {
			return ErrCopyUnavailable
		}

		insert := `
			INSERT INTO loans (id, member_id, copy_id, borrow_date)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, insert, loan.ID, loan.MemberID, loan.CopyID, loan.BorrowDate); err != nil {
			return fmt.Errorf("insert loan: %w", postgres.MapError(err))
		}

		// The cap is verified after the insert so the count covers this
		// loan; exceeding it rolls the whole unit of work back. Counting
		// by query inside the transaction keeps concurrent borrows from
		// jointly passing the check.
		var openLoans int
		if err := tx.GetContext(ctx, &openLoans, `SELECT COUNT(*) FROM loans WHERE member_id = $1 AND return_date IS NULL`, memberID); err != nil {
			return fmt.Errorf("count open loans: %w", err)
		}
		if openLoans > MaxOpenLoans {
			return ErrBorrowLimitExceeded
		}

		span.SetAttributes(attribute.Int("member.open_loans", openLoans))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("loan created",
		zap.String("loan_id", loan.ID.String()),
		zap.String("member_id", memberID.String()),
		zap.String("copy_id", copyID.String()),
	)

	return loan, nil
}

// loanForReturn is the loan row joined through copy and item to its item
// type's loan period.
type loanForReturn struct {
	ID             uuid.UUID  `db:"id"`
	MemberID       uuid.UUID  `db:"member_id"`
	CopyID         uuid.UUID  `db:"copy_id"`
	BorrowDate     time.Time  `db:"borrow_date"`
	ReturnDate     *time.Time `db:"return_date"`
	LoanPeriodDays int        `db:"loan_period_days"`
}

// Return closes the loan and assesses a fine for an overdue return in the
// same transaction, so no reader observes a closed loan without its fine.
func (s *service) Return(ctx context.Context, loanID uuid.UUID, date time.Time) (*ReturnResult, error) {
	ctx, span := s.tracer.Start(ctx, "lending.return",
		trace.WithAttributes(attribute.String("loan.id", loanID.String())),
	)
	defer span.End()

	result := &ReturnResult{}

	err := postgres.RunSerializable(ctx, s.db, func(tx *sqlx.Tx) error {
		var row loanForReturn
		query := `
			SELECT l.id, l.member_id, l.copy_id, l.borrow_date, l.return_date,
			       it.loan_period_days
			FROM loans l
			JOIN copies c ON c.id = l.copy_id
			JOIN items i ON i.id = c.item_id
			JOIN item_types it ON it.id = i.item_type_id
			WHERE l.id = $1
		`
		if err := tx.GetContext(ctx, &row, query, loanID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrLoanNotFound
			}
			return fmt.Errorf("load loan for return: %w", err)
		}
		if row.ReturnDate != nil {
			return ErrAlreadyReturned
		}
		if date.Before(row.BorrowDate) {
			return fmt.Errorf("%w: return date precedes borrow date", ErrValidation)
		}

		res, err := tx.ExecContext(ctx, `UPDATE loans SET return_date = $1 WHERE id = $2 AND return_date IS NULL`, date, loanID)
		if err != nil {
			return fmt.Errorf("close loan: %w", postgres.MapError(err))
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("close loan rows affected: %w", err)
		}
		if affected == 0 {
			return ErrAlreadyReturned
		}

		result.Loan = &Loan{
			ID:         row.ID,
			MemberID:   row.MemberID,
			CopyID:     row.CopyID,
			BorrowDate: row.BorrowDate,
			ReturnDate: &date,
		}
		result.Assessment = s.assessor.Assess(row.BorrowDate, date, row.LoanPeriodDays)

		span.SetAttributes(attribute.Int("return.overdue_days", result.Assessment.OverdueDays))

		if result.Assessment.FineDue() {
			// Fine date is the assessment clock time, not the return date.
			fineID, err := s.fineLedger.CreateInTx(ctx, tx, loanID, result.Assessment.Amount, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("record fine: %w", err)
			}
			result.FineID = &fineID
			span.SetAttributes(attribute.String("fine.id", fineID.String()))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.FineID != nil {
		s.logger.Info("overdue return fined",
			zap.String("loan_id", loanID.String()),
			zap.Int("overdue_days", result.Assessment.OverdueDays),
			zap.Float64("amount", result.Assessment.Amount),
		)
	}

	return result, nil
}

// Reserve records an advisory hold on a copy.
func (s *service) Reserve(ctx context.Context, memberID, copyID uuid.UUID, date time.Time) (*Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "lending.reserve",
		trace.WithAttributes(
			attribute.String("member.id", memberID.String()),
			attribute.String("copy.id", copyID.String()),
		),
	)
	defer span.End()

	reservation := &Reservation{
		ID:          uuid.New(),
		MemberID:    memberID,
		CopyID:      copyID,
		ReserveDate: date,
	}

	err := postgres.RunSerializable(ctx, s.db, func(tx *sqlx.Tx) error {
		var exists bool

		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, memberID); err != nil {
			return fmt.Errorf("check member: %w", err)
		}
		if !exists {
			return ErrMemberNotFound
		}

		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM copies WHERE id = $1)`, copyID); err != nil {
			return fmt.Errorf("check copy: %w", err)
		}
		if !exists {
			return ErrCopyNotFound
		}

		insert := `
			INSERT INTO reservations (id, member_id, copy_id, reserve_date)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, insert, reservation.ID, reservation.MemberID, reservation.CopyID, reservation.ReserveDate); err != nil {
			return fmt.Errorf("insert reservation: %w", postgres.MapError(err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// GetLoan retrieves a loan by ID.
func (s *service) GetLoan(ctx context.Context, id uuid.UUID) (*Loan, error) {
	loan := &Loan{}
	query := `
		SELECT id, member_id, copy_id, borrow_date, return_date
		FROM loans
		WHERE id = $1
	`
	if err := s.db.GetContext(ctx, loan, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLoanNotFound
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}

	return loan, nil
}
