package repository

import (
	"context"

	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	RemoveItems(ctx context.Context, cartID string, productIDs []string, newTotal float64) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) FindByUser(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Order("id").
		Find(&cart.Items).Error

	if err != nil {
		return nil, err
	}

	return &cart, nil
}

// Save replaces the cart's line set wholesale. Last write wins across
// concurrent edits of the same cart.
func (r *cartRepoImpl) Save(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_price", "updated_at"}),
		}).Omit("Items").Create(cart).Error
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		if len(cart.Items) == 0 {
			return nil
		}

		items := make([]model.CartItem, len(cart.Items))
		for i, item := range cart.Items {
			items[i] = model.CartItem{
				CartID:    cart.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
		}

		return tx.Create(&items).Error
	})
}

// RemoveItems deletes the given lines and stores the recomputed total. A nil
// productIDs slice clears every line.
func (r *cartRepoImpl) RemoveItems(ctx context.Context, cartID string, productIDs []string, newTotal float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("cart_id = ?", cartID)
		if productIDs != nil {
			q = q.Where("product_id IN ?", productIDs)
		}
		if err := q.Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		return tx.Model(&model.Cart{}).
			Where("id = ?", cartID).
			Update("total_price", newTotal).Error
	})
}
