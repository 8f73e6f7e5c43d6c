package services

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositCreditsWallet(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@test.local", "USER", 50)

	entry, err := Deposit(db, user.ID, DepositInput{
		Amount:         200,
		PaymentGateway: "razorpay",
		PaymentID:      "pay_123",
		PaymentStatus:  "captured",
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeDeposit, entry.TransactionType)
	assert.Equal(t, uint64(50), entry.BalanceBefore)
	assert.Equal(t, uint64(250), entry.BalanceAfter)
	assert.NotEmpty(t, entry.ReferenceNo)
	assert.Equal(t, uint64(250), userBalance(t, db, user.ID))
}

func TestDepositDuplicatePaymentID(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@test.local", "USER", 0)

	in := DepositInput{Amount: 100, PaymentGateway: "razorpay", PaymentID: "pay_dup"}
	_, err := Deposit(db, user.ID, in)
	require.NoError(t, err)

	_, err = Deposit(db, user.ID, in)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, uint64(100), userBalance(t, db, user.ID))
}

func TestDepositUnknownUser(t *testing.T) {
	db := newTestDB(t)

	_, err := Deposit(db, 999, DepositInput{Amount: 100, PaymentID: "pay_x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWalletHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@test.local", "USER", 0)

	_, err := Deposit(db, user.ID, DepositInput{Amount: 100, PaymentGateway: "razorpay", PaymentID: "pay_1"})
	require.NoError(t, err)
	_, err = Deposit(db, user.ID, DepositInput{Amount: 200, PaymentGateway: "razorpay", PaymentID: "pay_2"})
	require.NoError(t, err)

	entries, err := WalletHistory(db, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
