package service

import (
	"context"
	"fmt"

	"storefront-api/internal/apperror"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
)

type WishListService interface {
	AddProduct(ctx context.Context, userID, productID string) (*model.WishList, error)
	GetWishList(ctx context.Context, userID string) (*model.WishList, error)
	RemoveProduct(ctx context.Context, userID, productID string) (*model.WishList, error)
}

type wishListServiceImpl struct {
	wishListRepo repository.WishListRepository
	productRepo  repository.ProductRepository
}

func NewWishListService(
	wishListRepo repository.WishListRepository,
	productRepo repository.ProductRepository,
) WishListService {
	return &wishListServiceImpl{
		wishListRepo: wishListRepo,
		productRepo:  productRepo,
	}
}

func (s *wishListServiceImpl) AddProduct(ctx context.Context, userID, productID string) (*model.WishList, error) {
	if productID == "" {
		return nil, apperror.BadRequest("product id is required")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, fmt.Errorf("load product: %w", err)
	}

	wishlist, err := s.wishListRepo.EnsureForUser(ctx, userID, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("ensure wishlist: %w", err)
	}

	if err := s.wishListRepo.AddItem(ctx, wishlist.ID, productID); err != nil {
		return nil, fmt.Errorf("add wishlist item: %w", err)
	}

	return s.GetWishList(ctx, userID)
}

func (s *wishListServiceImpl) GetWishList(ctx context.Context, userID string) (*model.WishList, error) {
	wishlist, err := s.wishListRepo.FindByUser(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("wishlist is empty")
		}
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	if err := s.resolveProducts(ctx, wishlist); err != nil {
		return nil, err
	}

	return wishlist, nil
}

func (s *wishListServiceImpl) RemoveProduct(ctx context.Context, userID, productID string) (*model.WishList, error) {
	wishlist, err := s.wishListRepo.FindByUser(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("wishlist is empty")
		}
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	if err := s.wishListRepo.RemoveItem(ctx, wishlist.ID, productID); err != nil {
		return nil, fmt.Errorf("remove wishlist item: %w", err)
	}

	return s.GetWishList(ctx, userID)
}

func (s *wishListServiceImpl) resolveProducts(ctx context.Context, wishlist *model.WishList) error {
	if len(wishlist.Items) == 0 {
		return nil
	}

	ids := make([]string, len(wishlist.Items))
	for i, item := range wishlist.Items {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.FindMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("load wishlist products: %w", err)
	}

	byID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range wishlist.Items {
		wishlist.Items[i].Product = byID[wishlist.Items[i].ProductID]
	}

	return nil
}
