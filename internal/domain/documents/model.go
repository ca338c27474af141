package documents

import "time"

type Document struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Category   string    `json:"category"`
	UploadedBy uint      `gorm:"index;not null" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type CreateDocumentInput struct {
	Title      string
	Category   string
	UploadedBy uint
}
