package service

import (
	"context"
	"fmt"

	"storefront-api/internal/apperror"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

// CatalogService is the read model over products and categories. Writes go
// through admin tooling, not this API.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	LatestProducts(ctx context.Context, limit int) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
}

type catalogServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *catalogServiceImpl) LatestProducts(ctx context.Context, limit int) ([]*model.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	return s.productRepo.Latest(ctx, limit)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("product with ID %s not found", productID)
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("category %s not found", slug)
		}
		return nil, fmt.Errorf("load category: %w", err)
	}

	return category, nil
}
