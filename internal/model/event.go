package model

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description,omitempty" gorm:"type:text"`
	Venue           string         `json:"venue,omitempty"`
	StartsAt        time.Time      `json:"starts_at"`
	EndsAt          time.Time      `json:"ends_at"`
	RegistrationFee int64          `json:"registration_fee" gorm:"not null;default:0"` // 0 = free event
	MaxParticipants int            `json:"max_participants,omitempty"`
	IsPublished     bool           `json:"is_published" gorm:"not null;default:false;index"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
