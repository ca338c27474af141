package members

import "time"

// Member is never hard-deleted; access is soft-managed through Approved.
type Member struct {
	ID                uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone             string     `json:"phone"`
	Approved          bool       `gorm:"not null;default:false" json:"approved"`
	IsAdmin           bool       `gorm:"not null;default:false" json:"is_admin"`
	APIToken          string     `gorm:"uniqueIndex;not null" json:"-"`
	LicenseHeld       bool       `gorm:"not null;default:false" json:"license_held"`
	LicenseExpiry     *time.Time `json:"license_expiry,omitempty"`
	QualificationDone bool       `gorm:"not null;default:false" json:"qualification_done"`
	QualificationDate *time.Time `json:"qualification_date,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type ListFilter struct {
	Approved *bool
	Limit    int
	Offset   int
}

type RegisterInput struct {
	Name  string
	Email string
	Phone string
}

type UpdateMemberInput struct {
	ID                uint
	Name              string
	Phone             string
	LicenseHeld       bool
	LicenseExpiry     *time.Time
	QualificationDone bool
	QualificationDate *time.Time
}
