// internal/reporting/implementation.go
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"libralend/internal/fines"
	"libralend/internal/postgres"
)

var dialect = goqu.Dialect("postgres")

// service implements the Service interface.
type service struct {
	db     *sqlx.DB
	policy fines.SettlementPolicy
}

// NewService creates a new reporting service instance.
func NewService(db *sqlx.DB, policy fines.SettlementPolicy) Service {
	return &service{
		db:     db,
		policy: policy,
	}
}

// loanProjection is the shared shape of the two loan queries: loans joined to
// members, copies, and item titles.
func loanProjection() *goqu.SelectDataset {
	return dialect.
		From(goqu.T("loans").As("l")).
		Join(goqu.T("members").As("m"), goqu.On(goqu.I("m.id").Eq(goqu.I("l.member_id")))).
		Join(goqu.T("copies").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("l.copy_id")))).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("c.item_id")))).
		Select(
			goqu.I("l.id").As("loan_id"),
			goqu.I("l.member_id").As("member_id"),
			goqu.I("m.name").As("member_name"),
			goqu.I("m.role").As("role"),
			goqu.I("l.copy_id").As("copy_id"),
			goqu.I("i.title").As("title"),
			goqu.I("l.borrow_date").As("borrow_date"),
			goqu.I("l.return_date").As("return_date"),
		).
		Order(goqu.I("l.borrow_date").Asc())
}

// CurrentLoans lists open loans, optionally filtered to one member or a role
// set.
func (s *service) CurrentLoans(ctx context.Context, filter CurrentLoansFilter) ([]LoanRecord, error) {
	ds := loanProjection().Where(goqu.I("l.return_date").IsNull())

	if filter.MemberID != nil {
		ds = ds.Where(goqu.I("l.member_id").Eq(*filter.MemberID))
	}
	if len(filter.Roles) > 0 {
		roles := make([]string, len(filter.Roles))
		for i, role := range filter.Roles {
			roles[i] = string(role)
		}
		ds = ds.Where(goqu.I("m.role").In(roles))
	}

	return s.selectLoans(ctx, ds)
}

// LoanHistory lists a member's loans with borrow dates in [start, end].
func (s *service) LoanHistory(ctx context.Context, memberID uuid.UUID, start, end time.Time) ([]LoanRecord, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	ds := loanProjection().Where(
		goqu.I("l.member_id").Eq(memberID),
		goqu.I("l.borrow_date").Gte(start),
		goqu.I("l.borrow_date").Lte(end),
	)

	return s.selectLoans(ctx, ds)
}

func (s *service) selectLoans(ctx context.Context, ds *goqu.SelectDataset) ([]LoanRecord, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build loan query: %w", err)
	}

	records := []LoanRecord{}
	err = postgres.RunSnapshot(ctx, s.db, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &records, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}

	return records, nil
}

// OutstandingFines lists the member's fines that no settling transaction
// references, oldest assessment first.
func (s *service) OutstandingFines(ctx context.Context, memberID uuid.UUID) ([]OutstandingFine, error) {
	settled := dialect.
		From(goqu.T("transactions").As("t")).
		Select(goqu.L("1")).
		Where(
			goqu.I("t.fine_id").Eq(goqu.I("f.id")),
			goqu.I("t.type").In(s.policy.SettlingTypes()),
		)

	ds := dialect.
		From(goqu.T("fines").As("f")).
		Join(goqu.T("loans").As("l"), goqu.On(goqu.I("l.id").Eq(goqu.I("f.loan_id")))).
		Join(goqu.T("copies").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("l.copy_id")))).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("c.item_id")))).
		Select(
			goqu.I("f.id").As("fine_id"),
			goqu.I("f.loan_id").As("loan_id"),
			goqu.I("f.amount").As("amount"),
			goqu.I("f.fine_date").As("fine_date"),
			goqu.I("i.title").As("title"),
		).
		Where(
			goqu.I("l.member_id").Eq(memberID),
			goqu.L("NOT EXISTS ?", settled),
		).
		Order(goqu.I("f.fine_date").Asc())

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build outstanding fines query: %w", err)
	}

	result := []OutstandingFine{}
	err = postgres.RunSnapshot(ctx, s.db, func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &result, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("query outstanding fines: %w", err)
	}

	// Every row here lacks a settling transaction by construction.
	for i := range result {
		result[i].Status = fines.StatusOutstanding
	}

	return result, nil
}
