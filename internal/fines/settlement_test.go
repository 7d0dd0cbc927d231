// internal/fines/settlement_test.go
package fines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettlementPolicyDefaults(t *testing.T) {
	policy := SettlementPolicy{}

	assert.True(t, policy.Settles(TransactionPayment))
	assert.False(t, policy.Settles(TransactionWaiver))
	assert.False(t, policy.Settles(TransactionType("refund")))
	assert.Equal(t, []string{"payment"}, policy.SettlingTypes())
}

func TestSettlementPolicyWaiverSettles(t *testing.T) {
	policy := SettlementPolicy{WaiverSettles: true}

	assert.True(t, policy.Settles(TransactionPayment))
	assert.True(t, policy.Settles(TransactionWaiver))
	assert.Equal(t, []string{"payment", "waiver"}, policy.SettlingTypes())
}

func TestDeriveStatus(t *testing.T) {
	payment := Transaction{Type: TransactionPayment}
	waiver := Transaction{Type: TransactionWaiver}

	tests := []struct {
		name   string
		policy SettlementPolicy
		txns   []Transaction
		want   Status
	}{
		{name: "no transactions", policy: SettlementPolicy{}, txns: nil, want: StatusOutstanding},
		{name: "payment settles", policy: SettlementPolicy{}, txns: []Transaction{payment}, want: StatusPaid},
		{name: "waiver alone does not settle by default", policy: SettlementPolicy{}, txns: []Transaction{waiver}, want: StatusOutstanding},
		{name: "waiver then payment", policy: SettlementPolicy{}, txns: []Transaction{waiver, payment}, want: StatusPaid},
		{name: "waiver settles when policy allows", policy: SettlementPolicy{WaiverSettles: true}, txns: []Transaction{waiver}, want: StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Derive(tt.txns))
		})
	}
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TransactionPayment.Valid())
	assert.True(t, TransactionWaiver.Valid())
	assert.False(t, TransactionType("chargeback").Valid())
	assert.False(t, TransactionType("").Valid())
}
