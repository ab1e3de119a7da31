package dto

import "time"

type EventCreateDTO struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	Venue           string    `json:"venue"`
	StartsAt        time.Time `json:"starts_at" binding:"required"`
	EndsAt          time.Time `json:"ends_at" binding:"required"`
	RegistrationFee int64     `json:"registration_fee" binding:"gte=0"`
	MaxParticipants int       `json:"max_participants" binding:"gte=0"`
}

type EventUpdateDTO struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Venue           *string    `json:"venue"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	RegistrationFee *int64     `json:"registration_fee" binding:"omitempty,gte=0"`
	MaxParticipants *int       `json:"max_participants" binding:"omitempty,gte=0"`
}

type EventResponseDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Venue           string    `json:"venue,omitempty"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	RegistrationFee int64     `json:"registration_fee"`
	MaxParticipants int       `json:"max_participants,omitempty"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
}
