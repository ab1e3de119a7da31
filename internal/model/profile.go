package model

import "time"

// Profile is the minimal slice of the user directory this service reads:
// display name and photo for enriching winner listings. Account management
// lives elsewhere.
type Profile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	FullName  string    `json:"full_name"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
