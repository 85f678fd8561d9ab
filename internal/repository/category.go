package repository

import (
	"context"

	"storefront-api/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepoImpl{
		db: db,
	}
}

// FindBySlug returns the category with its direct subcategories resolved.
func (r *categoryRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&category).Error

	if err != nil {
		return nil, err
	}

	var subcategories []*model.Category
	err = r.db.WithContext(ctx).
		Where("parent_id = ?", category.ID).
		Find(&subcategories).Error

	if err != nil {
		return nil, err
	}

	category.Subcategories = subcategories
	return &category, nil
}
