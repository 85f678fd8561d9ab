package repository

import (
	"context"
	"time"

	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	UpsertByIntent(ctx context.Context, payment *model.Payment) error
	HasSucceededForOrder(ctx context.Context, orderID string) (bool, error)
	FindByOrder(ctx context.Context, orderID string) (*model.Payment, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Payment, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

// UpsertByIntent writes the payment keyed by the gateway intent id. A second
// observation of the same intent updates the existing row instead of
// recording a duplicate.
func (r *paymentRepoImpl) UpsertByIntent(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "payment_intent_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     payment.Status,
			"amount":     payment.Amount,
			"currency":   payment.Currency,
			"updated_at": time.Now(),
		}),
	}).Create(payment).Error
}

func (r *paymentRepoImpl) HasSucceededForOrder(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ?", orderID).
		Where("status = ?", model.IntentStatusSucceeded).
		Count(&count).Error

	return count > 0, err
}

func (r *paymentRepoImpl) FindByOrder(ctx context.Context, orderID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}
