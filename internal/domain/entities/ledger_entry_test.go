package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryType_IsValid(t *testing.T) {
	assert.True(t, EntryTypeDebit.IsValid())
	assert.True(t, EntryTypeCredit.IsValid())
	assert.False(t, EntryType("TRANSFER").IsValid())
}

func TestLedgerEntry_Balanced(t *testing.T) {
	credit := &LedgerEntry{
		EntryType:     EntryTypeCredit,
		Amount:        decimal.RequireFromString("25.00000000"),
		BalanceBefore: decimal.RequireFromString("10.00000000"),
		BalanceAfter:  decimal.RequireFromString("35.00000000"),
	}
	assert.True(t, credit.Balanced())

	debit := &LedgerEntry{
		EntryType:     EntryTypeDebit,
		Amount:        decimal.RequireFromString("-25.00000000"),
		BalanceBefore: decimal.RequireFromString("100.00000000"),
		BalanceAfter:  decimal.RequireFromString("75.00000000"),
	}
	assert.True(t, debit.Balanced())
}

func TestLedgerEntry_Balanced_Mismatch(t *testing.T) {
	e := &LedgerEntry{
		Amount:        decimal.RequireFromString("-5"),
		BalanceBefore: decimal.RequireFromString("10"),
		BalanceAfter:  decimal.RequireFromString("4.99999999"),
	}
	assert.False(t, e.Balanced())
}

func TestLedgerEntry_PairSumsToZero(t *testing.T) {
	amount := decimal.RequireFromString("7.12345678")

	debit := &LedgerEntry{EntryType: EntryTypeDebit, Amount: amount.Neg()}
	credit := &LedgerEntry{EntryType: EntryTypeCredit, Amount: amount}

	assert.True(t, debit.Amount.Add(credit.Amount).IsZero())
}
