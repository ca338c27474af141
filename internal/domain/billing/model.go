package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

// Statuses move freely between each other by administrative decision; the
// single gated transition is paid -> refund_requested, which only an admin
// decision (approve or deny) can exit.
const (
	StatusPaid            PaymentStatus = "paid"
	StatusPending         PaymentStatus = "pending"
	StatusFailed          PaymentStatus = "failed"
	StatusChargeback      PaymentStatus = "chargeback"
	StatusRefunded        PaymentStatus = "refunded"
	StatusRefundRequested PaymentStatus = "refund_requested"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusFailed, StatusChargeback, StatusRefunded, StatusRefundRequested:
		return true
	}
	return false
}

// Invoice is the audit record of a single purchase. Everything except
// payment status, flag state, refund reason and notes is immutable after
// creation, and invoices are never deleted by normal flow.
type Invoice struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	PurchaseID    uint            `gorm:"index;not null" json:"purchase_id"`
	MemberID      uint            `gorm:"index;not null" json:"member_id"`
	MemberName    string          `gorm:"not null" json:"member_name"`
	ItemName      string          `gorm:"not null" json:"item_name"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	PurchasedAt   time.Time       `gorm:"not null" json:"purchased_at"`
	PaymentMethod string          `gorm:"not null" json:"payment_method"`
	PaymentStatus PaymentStatus   `gorm:"not null;default:'paid'" json:"payment_status"`
	TransactionID string          `gorm:"not null" json:"transaction_id"`
	Notes         string          `json:"notes"`
	IsFlagged     bool            `gorm:"not null;default:false" json:"is_flagged"`
	FlagReason    string          `json:"flag_reason"`
	RefundReason  string          `json:"refund_reason"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type ListFilter struct {
	MemberID uint // 0 means all members
	Status   PaymentStatus
	Flagged  *bool
	Limit    int
	Offset   int
}

type CreateInvoiceInput struct {
	PurchaseID    uint
	MemberID      uint
	MemberName    string
	ItemName      string
	UnitPrice     decimal.Decimal
	Quantity      int
	PurchasedAt   time.Time
	PaymentMethod string
}
