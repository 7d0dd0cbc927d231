// internal/fines/implementation.go
package fines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"libralend/internal/postgres"
)

// service implements the Service interface.
type service struct {
	db     *sqlx.DB
	policy SettlementPolicy
	logger *zap.Logger
}

// NewService creates a new fine ledger service instance.
func NewService(db *sqlx.DB, policy SettlementPolicy, logger *zap.Logger) Service {
	return &service{
		db:     db,
		policy: policy,
		logger: logger,
	}
}

// RecordTransaction appends a settlement event against a fine.
func (s *service) RecordTransaction(ctx context.Context, fineID uuid.UUID, txnType TransactionType, date time.Time) (uuid.UUID, error) {
	if !txnType.Valid() {
		return uuid.Nil, ErrInvalidTransactionType
	}

	id := uuid.New()
	query := `
		INSERT INTO transactions (id, type, date, fine_id)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, id, txnType, date, fineID); err != nil {
		mapped := postgres.MapError(err)
		if errors.Is(mapped, postgres.ErrForeignKey) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("insert transaction: %w", mapped)
	}

	s.logger.Info("settlement transaction recorded",
		zap.String("fine_id", fineID.String()),
		zap.String("type", string(txnType)),
	)

	return id, nil
}

// GetFine retrieves a fine annotated with its derived settlement status. The
// fine and its transaction history are read from one snapshot so the status
// never mixes two states of the ledger.
func (s *service) GetFine(ctx context.Context, id uuid.UUID) (*FineWithStatus, error) {
	fine := &FineWithStatus{}

	err := postgres.RunSnapshot(ctx, s.db, func(tx *sqlx.Tx) error {
		query := `
			SELECT id, loan_id, amount, fine_date
			FROM fines
			WHERE id = $1
		`
		if err := tx.GetContext(ctx, &fine.Fine, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("get fine: %w", err)
		}

		history := []Transaction{}
		listTxns := `
			SELECT id, type, date, fine_id
			FROM transactions
			WHERE fine_id = $1
			ORDER BY date ASC
		`
		if err := tx.SelectContext(ctx, &history, listTxns, id); err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}

		fine.Status = s.policy.Derive(history)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fine, nil
}

// ListTransactions returns a fine's settlement history, oldest first.
func (s *service) ListTransactions(ctx context.Context, fineID uuid.UUID) ([]*Transaction, error) {
	txns := []*Transaction{}
	query := `
		SELECT id, type, date, fine_id
		FROM transactions
		WHERE fine_id = $1
		ORDER BY date ASC
	`
	if err := s.db.SelectContext(ctx, &txns, query, fineID); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return txns, nil
}

// CreateInTx inserts a fine inside a caller-owned transaction.
func (s *service) CreateInTx(ctx context.Context, tx *sqlx.Tx, loanID uuid.UUID, amount float64, fineDate time.Time) (uuid.UUID, error) {
	id := uuid.New()
	query := `
		INSERT INTO fines (id, loan_id, amount, fine_date)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, query, id, loanID, amount, fineDate); err != nil {
		return uuid.Nil, fmt.Errorf("insert fine: %w", postgres.MapError(err))
	}

	return id, nil
}
