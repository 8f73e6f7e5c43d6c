package services

import (
	"fmt"

	"lms/config"
	"lms/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepositInput carries the payment gateway details of a wallet deposit
type DepositInput struct {
	Amount           uint64
	PaymentGateway   string
	PaymentOrderID   string
	PaymentID        string
	PaymentSignature string
	PaymentMethod    string
	PaymentStatus    string
	PaymentResponse  string
}

// Deposit credits a user's wallet after a gateway payment. Duplicate payment
// ids are rejected.
func Deposit(db *gorm.DB, userID uint, in DepositInput) (*models.WalletTransaction, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}

	var existing models.WalletTransaction
	if err := db.Where("payment_id = ? AND is_deleted = ?", in.PaymentID, false).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("transaction already processed: %w", ErrConflict)
	}

	before := user.MainBalance
	after := before + in.Amount

	entry := models.WalletTransaction{
		UserID:             userID,
		TransactionType:    models.TransactionTypeDeposit,
		Amount:             in.Amount,
		BalanceBefore:      before,
		BalanceAfter:       after,
		Status:             models.TransactionStatusCompleted,
		Description:        "Wallet deposit via " + in.PaymentGateway,
		ReferenceNo:        uuid.NewString(),
		PaymentGateway:     in.PaymentGateway,
		PaymentOrderID:     in.PaymentOrderID,
		PaymentID:          in.PaymentID,
		PaymentSignature:   in.PaymentSignature,
		PaymentMethod:      in.PaymentMethod,
		PaymentStatus:      in.PaymentStatus,
		PaymentResponseRaw: in.PaymentResponse,
		TransactionDate:    now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("main_balance", after).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// WalletHistory returns a user's ledger entries, newest first
func WalletHistory(db *gorm.DB, userID uint) ([]models.WalletTransaction, error) {
	var entries []models.WalletTransaction
	err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&entries).Error
	return entries, err
}

// platformAccount resolves the fee-collecting account from config
func platformAccount(db *gorm.DB) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", config.AppConfig.PlatformAccount, false).First(&user).Error; err != nil {
		return nil, fmt.Errorf("platform account: %w", ErrNotFound)
	}
	return &user, nil
}
