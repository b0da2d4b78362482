package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionType_IsValid(t *testing.T) {
	assert.True(t, TransactionTypeTopup.IsValid())
	assert.True(t, TransactionTypeSpend.IsValid())
	assert.True(t, TransactionTypeBonus.IsValid())
	assert.False(t, TransactionType("TRANSFER").IsValid())
	assert.False(t, TransactionType("topup").IsValid())
}

func TestTransactionStatus_IsValid(t *testing.T) {
	assert.True(t, TransactionStatusPending.IsValid())
	assert.True(t, TransactionStatusCompleted.IsValid())
	assert.True(t, TransactionStatusFailed.IsValid())
	assert.False(t, TransactionStatus("CANCELLED").IsValid())
}

func TestTransactionStatus_IsTerminal(t *testing.T) {
	assert.False(t, TransactionStatusPending.IsTerminal())
	assert.True(t, TransactionStatusCompleted.IsTerminal())
	assert.True(t, TransactionStatusFailed.IsTerminal())
}

func TestTransaction_IsCompleted(t *testing.T) {
	tx := &Transaction{Status: TransactionStatusPending}
	assert.False(t, tx.IsCompleted())

	tx.Status = TransactionStatusCompleted
	assert.True(t, tx.IsCompleted())
}
