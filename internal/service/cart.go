package service

import (
	"context"
	"fmt"
	"os"

	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type CartService interface {
	AddItems(ctx context.Context, userID string, items []dto.CartItemInput) (*model.Cart, error)
	SetItems(ctx context.Context, userID string, items []dto.CartItemInput) (*model.Cart, error)
	GetCart(ctx context.Context, userID string) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error)
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) AddItems(ctx context.Context, userID string, items []dto.CartItemInput) (*model.Cart, error) {
	if len(items) == 0 {
		return nil, apperror.BadRequest("please provide valid products and quantities")
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		// created lazily on first add
		cart = &model.Cart{ID: uuid.NewString(), UserID: userID}
	}

	for _, item := range items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if item.ProductID == "" || quantity < 0 {
			return nil, apperror.BadRequest("invalid product or quantity")
		}

		if _, err := s.productRepo.FindByID(ctx, item.ProductID); err != nil {
			if repository.IsNotFound(err) {
				return nil, apperror.NotFound("product with ID %s not found", item.ProductID)
			}
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}

		merged := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == item.ProductID {
				cart.Items[i].Quantity += quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.Items = append(cart.Items, model.CartItem{
				CartID:    cart.ID,
				ProductID: item.ProductID,
				Quantity:  quantity,
			})
		}
	}

	return s.persist(ctx, cart)
}

func (s *cartServiceImpl) SetItems(ctx context.Context, userID string, items []dto.CartItemInput) (*model.Cart, error) {
	if len(items) == 0 {
		return nil, apperror.BadRequest("please provide valid products and quantities")
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("cart not found")
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, apperror.BadRequest("invalid product or quantity")
		}

		if _, err := s.productRepo.FindByID(ctx, item.ProductID); err != nil {
			if repository.IsNotFound(err) {
				return nil, apperror.NotFound("product with ID %s not found", item.ProductID)
			}
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}

		set := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == item.ProductID {
				cart.Items[i].Quantity = item.Quantity
				set = true
				break
			}
		}
		if !set {
			cart.Items = append(cart.Items, model.CartItem{
				CartID:    cart.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
	}

	return s.persist(ctx, cart)
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("cart is empty")
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if err := s.resolveProducts(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem filters the line out; removing an absent product is not an error.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("cart is empty")
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	return s.persist(ctx, cart)
}

// persist recomputes the cached total from current catalog prices and saves.
// Prices are never frozen at add time.
func (s *cartServiceImpl) persist(ctx context.Context, cart *model.Cart) (*model.Cart, error) {
	if err := s.resolveProducts(ctx, cart); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range cart.Items {
		if item.Product == nil {
			continue
		}
		price := decimal.NewFromFloat(item.Product.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	cart.TotalPrice = total.InexactFloat64()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	return cart, nil
}

func (s *cartServiceImpl) resolveProducts(ctx context.Context, cart *model.Cart) error {
	if len(cart.Items) == 0 {
		return nil
	}

	ids := make([]string, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.FindMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("load cart products: %w", err)
	}

	byID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range cart.Items {
		cart.Items[i].Product = byID[cart.Items[i].ProductID]
	}

	return nil
}
