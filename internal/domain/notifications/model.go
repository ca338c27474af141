package notifications

import "time"

type Type string

const (
	TypeDocument   Type = "document"
	TypePurchase   Type = "purchase"
	TypeMember     Type = "member"
	TypeAlert      Type = "alert"
	TypeChargeback Type = "chargeback"
	TypeExpiry     Type = "expiry"
	TypeOther      Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDocument, TypePurchase, TypeMember, TypeAlert, TypeChargeback, TypeExpiry, TypeOther:
		return true
	}
	return false
}

// Notification is an administrative message. The Related* ids are weak
// references: they record what the notification was about at creation time
// and are never updated or cleared, even if the referent is later deleted.
// IsRead and IsArchived are independent; archiving does not force a read.
type Notification struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type              Type      `gorm:"not null;default:'other'" json:"type"`
	Title             string    `gorm:"not null" json:"title"`
	Message           string    `json:"message"`
	IsRead            bool      `gorm:"not null;default:false" json:"is_read"`
	IsArchived        bool      `gorm:"not null;default:false" json:"is_archived"`
	RelatedMemberID   *uint     `gorm:"index" json:"related_member_id,omitempty"`
	RelatedPurchaseID *uint     `gorm:"index" json:"related_purchase_id,omitempty"`
	RelatedDocumentID *uint     `gorm:"index" json:"related_document_id,omitempty"`
	ActionRequired    bool      `gorm:"not null;default:false" json:"action_required"`
	ActionType        string    `json:"action_type,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

type ListFilter struct {
	RelatedMemberID uint // 0 means no member scoping
	Limit           int
	Offset          int
}

type NotifyInput struct {
	Type              Type
	Title             string
	Message           string
	RelatedMemberID   *uint
	RelatedPurchaseID *uint
	RelatedDocumentID *uint
	ActionRequired    bool
	ActionType        string
}
