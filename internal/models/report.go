package models

import "time"

// Report is a user-submitted report about chat content. Content is kept as
// raw UTF-8 bytes and decoded to text on the way out; rows are append-only.
type Report struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   []byte    `gorm:"type:bytea;not null" json:"-"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (Report) TableName() string {
	return "reports"
}
