// internal/reporting/implementation_test.go
package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libralend/internal/fines"
)

func TestLoanHistoryRejectsInvertedRange(t *testing.T) {
	svc := NewService(nil, fines.SettlementPolicy{})

	start := time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -7)

	_, err := svc.LoanHistory(context.Background(), uuid.New(), start, end)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCurrentLoansQueryShape(t *testing.T) {
	memberID := uuid.New()
	ds := loanProjection().Where(goqu.I("l.return_date").IsNull())
	ds = ds.Where(goqu.I("l.member_id").Eq(memberID))
	ds = ds.Where(goqu.I("m.role").In([]string{"student", "faculty"}))

	query, args, err := ds.Prepared(true).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, query, `"l"."return_date" IS NULL`)
	assert.Contains(t, query, `"m"."role" IN`)
	assert.Contains(t, query, `ORDER BY "l"."borrow_date" ASC`)
	assert.Contains(t, args, memberID)
}

func TestOutstandingFinesQueryExcludesSettledByPolicy(t *testing.T) {
	defaultPolicy := fines.SettlementPolicy{}
	waiverPolicy := fines.SettlementPolicy{WaiverSettles: true}

	settled := func(policy fines.SettlementPolicy) []any {
		ds := dialect.
			From(goqu.T("transactions").As("t")).
			Select(goqu.L("1")).
			Where(
				goqu.I("t.fine_id").Eq(goqu.I("f.id")),
				goqu.I("t.type").In(policy.SettlingTypes()),
			)
		_, args, err := ds.Prepared(true).ToSQL()
		require.NoError(t, err)
		return args
	}

	assert.Equal(t, []any{"payment"}, settled(defaultPolicy))
	assert.Equal(t, []any{"payment", "waiver"}, settled(waiverPolicy))
}
