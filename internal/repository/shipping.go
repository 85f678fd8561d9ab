package repository

import (
	"context"

	"storefront-api/internal/model"

	"gorm.io/gorm"
)

type ShippingRepository interface {
	Create(ctx context.Context, shipping *model.Shipping) error
	FindByOrder(ctx context.Context, orderID string) (*model.Shipping, error)
}

type shippingRepoImpl struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) ShippingRepository {
	return &shippingRepoImpl{
		db: db,
	}
}

func (r *shippingRepoImpl) Create(ctx context.Context, shipping *model.Shipping) error {
	return r.db.WithContext(ctx).Create(shipping).Error
}

func (r *shippingRepoImpl) FindByOrder(ctx context.Context, orderID string) (*model.Shipping, error) {
	var shipping model.Shipping
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&shipping).Error

	if err != nil {
		return nil, err
	}

	return &shipping, nil
}
