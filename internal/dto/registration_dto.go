package dto

type InitiatePaymentDTO struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

type PaymentOrderDTO struct {
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	SnapToken   string `json:"snap_token,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// PaymentNotificationDTO is the subset of the gateway's HTTP notification the
// service acts on.
type PaymentNotificationDTO struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	FraudStatus       string `json:"fraud_status"`
}
