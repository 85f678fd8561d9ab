package repository

import (
	"context"
	"time"

	"storefront-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishListRepository interface {
	FindByUser(ctx context.Context, userID string) (*model.WishList, error)
	EnsureForUser(ctx context.Context, userID string, newID string) (*model.WishList, error)
	AddItem(ctx context.Context, wishlistID, productID string) error
	RemoveItem(ctx context.Context, wishlistID, productID string) error
}

type wishListRepoImpl struct {
	db *gorm.DB
}

func NewWishListRepository(db *gorm.DB) WishListRepository {
	return &wishListRepoImpl{
		db: db,
	}
}

func (r *wishListRepoImpl) FindByUser(ctx context.Context, userID string) (*model.WishList, error) {
	var wishlist model.WishList
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&wishlist).Error

	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("wish_list_id = ?", wishlist.ID).
		Order("id").
		Find(&wishlist.Items).Error

	if err != nil {
		return nil, err
	}

	return &wishlist, nil
}

// EnsureForUser returns the user's wishlist, creating an empty one with the
// provided id when none exists yet.
func (r *wishListRepoImpl) EnsureForUser(ctx context.Context, userID string, newID string) (*model.WishList, error) {
	wishlist := &model.WishList{ID: newID, UserID: userID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Omit("Items").Create(wishlist).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUser(ctx, userID)
}

// AddItem is idempotent per (wishlist, product).
func (r *wishListRepoImpl) AddItem(ctx context.Context, wishlistID, productID string) error {
	item := &model.WishListItem{
		WishListID: wishlistID,
		ProductID:  productID,
		AddedAt:    time.Now(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wish_list_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(item).Error
}

func (r *wishListRepoImpl) RemoveItem(ctx context.Context, wishlistID, productID string) error {
	return r.db.WithContext(ctx).
		Where("wish_list_id = ?", wishlistID).
		Where("product_id = ?", productID).
		Delete(&model.WishListItem{}).Error
}
