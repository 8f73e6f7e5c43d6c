package models

import (
	"time"

	"gorm.io/gorm"
)

// TransactionType defines the type of wallet transaction
type TransactionType string

const (
	TransactionTypeDeposit        TransactionType = "DEPOSIT"
	TransactionTypeCoursePurchase TransactionType = "COURSE_PURCHASE"
	TransactionTypeMentorPayout   TransactionType = "MENTOR_PAYOUT"
	TransactionTypePlatformFee    TransactionType = "PLATFORM_FEE"
	TransactionTypeRefund         TransactionType = "REFUND"
	TransactionTypeAdminCredit    TransactionType = "ADMIN_CREDIT"
	TransactionTypeAdminDebit     TransactionType = "ADMIN_DEBIT"
)

// TransactionStatus defines the status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"
)

// WalletTransaction tracks all wallet transactions for a user
type WalletTransaction struct {
	gorm.Model
	UserID          uint              `gorm:"not null;index" json:"userId"`
	TransactionType TransactionType   `gorm:"type:varchar(50);not null" json:"transactionType"`
	Amount          uint64            `gorm:"not null" json:"amount"` // minor units
	BalanceBefore   uint64            `gorm:"not null" json:"balanceBefore"`
	BalanceAfter    uint64            `gorm:"not null" json:"balanceAfter"`
	Status          TransactionStatus `gorm:"type:varchar(20);default:'COMPLETED'" json:"status"`
	Description     string            `gorm:"type:text" json:"description"`
	ReferenceNo     string            `gorm:"type:varchar(64);index" json:"referenceNo"`

	// Payment gateway details (for deposits)
	PaymentGateway     string `gorm:"type:varchar(50)" json:"paymentGateway"`
	PaymentOrderID     string `gorm:"type:varchar(100)" json:"paymentOrderId"`
	PaymentID          string `gorm:"type:varchar(100);index" json:"paymentId"`
	PaymentSignature   string `gorm:"type:varchar(255)" json:"paymentSignature"`
	PaymentMethod      string `gorm:"type:varchar(50)" json:"paymentMethod"`
	PaymentStatus      string `gorm:"type:varchar(50)" json:"paymentStatus"`
	PaymentResponseRaw string `gorm:"type:text" json:"paymentResponseRaw"`

	// Reference details (for course purchases and payouts)
	ReferenceType string `gorm:"type:varchar(50)" json:"referenceType"` // course
	ReferenceID   uint   `gorm:"default:0" json:"referenceId"`          // course_id
	ReferenceName string `gorm:"type:varchar(255)" json:"referenceName"`

	// Admin details (for manual credits/debits)
	AdminID uint   `gorm:"default:0" json:"adminId"`
	Reason  string `gorm:"type:text" json:"reason"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`
	IsDeleted       bool      `gorm:"default:false" json:"-"`
}
