package model

import (
	"time"

	"gorm.io/gorm"
)

// Upload is the persisted record of one successful upload.
type Upload struct {
	gorm.Model
	Title      string    `gorm:"not null"`
	RemoteID   string    `gorm:"not null"`
	SourceType JobType   `gorm:"not null"`
	SourceRef  string    `gorm:"not null"`
	PublishAt  time.Time `gorm:"not null"`
	UploadedAt time.Time `gorm:"not null"`
}
