package passes

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pass is a purchased multi-use item tracked by remaining-use count.
// RemainingQuantity is the only field mutated after creation.
type Pass struct {
	ID                uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID          uint            `gorm:"index;not null" json:"member_id"`
	ItemName          string          `gorm:"not null" json:"item_name"`
	TotalQuantity     int             `gorm:"not null" json:"total_quantity"`
	RemainingQuantity int             `gorm:"not null" json:"remaining_quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	PurchasedAt       time.Time       `gorm:"not null" json:"purchased_at"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type ListFilter struct {
	MemberID uint // 0 means all members
	Limit    int
	Offset   int
}

type CreatePassInput struct {
	MemberID      uint
	ItemName      string
	TotalQuantity int
	UnitPrice     decimal.Decimal
	PurchasedAt   time.Time
}
