package model

import "time"

// Payment order status values, following the gateway's transaction statuses.
const (
	PaymentPending = "pending"
	PaymentSettled = "settled"
	PaymentFailed  = "failed"
	PaymentExpired = "expired"
)

// PaymentOrder tracks one gateway order for a paid event registration.
// OrderID is the idempotency key sent to the gateway; while an order is
// pending, repeated initiations reuse it instead of opening a new one.
type PaymentOrder struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	OrderID         string    `json:"order_id" gorm:"not null;uniqueIndex;type:uuid"`
	UserID          uint      `json:"user_id" gorm:"not null;index:idx_orders_user_event"`
	EventID         uint      `json:"event_id" gorm:"not null;index:idx_orders_user_event"`
	Amount          int64     `json:"amount" gorm:"not null"`
	Status          string    `json:"status" gorm:"not null;default:'pending'"`
	SnapToken       string    `json:"snap_token,omitempty"`
	SnapRedirectURL string    `json:"snap_redirect_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
