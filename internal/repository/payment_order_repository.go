package repository

import (
	"github.com/hackdesk/hackdesk/internal/model"
	"gorm.io/gorm"
)

type PaymentOrderRepository interface {
	Create(order *model.PaymentOrder) error
	Save(order *model.PaymentOrder) error
	FindByOrderID(orderID string) (*model.PaymentOrder, error)
	FindPendingByUserAndEvent(userID, eventID uint) (*model.PaymentOrder, error)
}

type paymentOrderRepository struct {
	db *gorm.DB
}

func NewPaymentOrderRepository(db *gorm.DB) PaymentOrderRepository {
	return &paymentOrderRepository{db: db}
}

func (r *paymentOrderRepository) Create(order *model.PaymentOrder) error {
	return r.db.Create(order).Error
}

func (r *paymentOrderRepository) Save(order *model.PaymentOrder) error {
	return r.db.Save(order).Error
}

func (r *paymentOrderRepository) FindByOrderID(orderID string) (*model.PaymentOrder, error) {
	var order model.PaymentOrder
	err := r.db.Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *paymentOrderRepository) FindPendingByUserAndEvent(userID, eventID uint) (*model.PaymentOrder, error) {
	var order model.PaymentOrder
	err := r.db.
		Where("user_id = ? AND event_id = ? AND status = ?", userID, eventID, model.PaymentPending).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
