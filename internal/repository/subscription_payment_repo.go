package repository

import (
	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
)

type SubscriptionPaymentRepository struct {
	db *gorm.DB
}

func NewSubscriptionPaymentRepository(db *gorm.DB) *SubscriptionPaymentRepository {
	return &SubscriptionPaymentRepository{db: db}
}

func (r *SubscriptionPaymentRepository) Create(payment *model.SubscriptionPayment) error {
	return r.db.Create(payment).Error
}

func (r *SubscriptionPaymentRepository) GetByID(id int64) (*model.SubscriptionPayment, error) {
	var payment model.SubscriptionPayment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *SubscriptionPaymentRepository) Update(payment *model.SubscriptionPayment) error {
	return r.db.Save(payment).Error
}

func (r *SubscriptionPaymentRepository) ListPending() ([]model.SubscriptionPayment, error) {
	var payments []model.SubscriptionPayment
	err := r.db.Where("status = ?", model.PaymentPending).Order("created_at").Find(&payments).Error
	return payments, err
}

func (r *SubscriptionPaymentRepository) ListByUser(userID int64) ([]model.SubscriptionPayment, error) {
	var payments []model.SubscriptionPayment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}
