package service

import (
	"context"
	"fmt"

	"storefront-api/internal/apperror"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutService interface {
	InitiatePayment(ctx context.Context, userID string, req *dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error)
	FinalizeOrder(ctx context.Context, userID, paymentIntentID string, productIDs []string) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]*model.Order, error)
	GetOrder(ctx context.Context, userID string, isAdmin bool, orderID string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, userID string, isAdmin bool, orderID, status string) (*model.Order, error)
	ListAllOrders(ctx context.Context) ([]*model.Order, error)
	DeleteAllOrders(ctx context.Context) error
}

type checkoutServiceImpl struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	stripeClient client.StripeClient
	checkoutCfg  config.Checkout
}

func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	stripeClient client.StripeClient,
	checkoutCfg config.Checkout,
) CheckoutService {
	return &checkoutServiceImpl{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		stripeClient: stripeClient,
		checkoutCfg:  checkoutCfg,
	}
}

var orderStatuses = map[string]bool{
	"pending":   true,
	"paid":      true,
	"succeeded": true,
	"failed":    true,
	"confirmed": true,
}

// InitiatePayment prices the current cart and opens a gateway intent for it.
// No Order exists yet; an abandoned checkout leaves nothing behind.
func (s *checkoutServiceImpl) InitiatePayment(ctx context.Context, userID string, req *dto.CreatePaymentIntentRequest) (*dto.CreatePaymentIntentResponse, error) {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	taxRate := s.checkoutCfg.TaxRate
	shippingFee := s.checkoutCfg.ShippingFee
	if req != nil && req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	if req != nil && req.ShippingFee != nil {
		shippingFee = *req.ShippingFee
	}

	subtotal := decimal.Zero
	for _, item := range cart.Items {
		if item.Product == nil {
			continue
		}
		subtotal = subtotal.Add(
			decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	total := subtotal.Add(tax).Add(decimal.NewFromFloat(shippingFee))
	amountMinor := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	intent, err := s.stripeClient.CreatePaymentIntent(ctx, amountMinor, s.checkoutCfg.Currency, map[string]string{
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &dto.CreatePaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		Amount:       total.InexactFloat64(),
	}, nil
}

// FinalizeOrder turns the cart, or the filtered subset of it, into an
// immutable order. The gateway is always consulted first: an order is never
// marked succeeded on the caller's word alone.
func (s *checkoutServiceImpl) FinalizeOrder(ctx context.Context, userID, paymentIntentID string, productIDs []string) (*model.Order, error) {
	if paymentIntentID == "" {
		return nil, apperror.BadRequest("payment intent id is required")
	}

	// one intent pays for one order
	if _, err := s.orderRepo.FindByPaymentIntent(ctx, paymentIntentID); err == nil {
		return nil, apperror.BadRequest("payment intent %s already used", paymentIntentID)
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("check payment intent: %w", err)
	}

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := cart.Items
	var consumed []string
	if len(productIDs) > 0 {
		// unmatched ids are stale client state, ignored
		wanted := make(map[string]bool, len(productIDs))
		for _, id := range productIDs {
			wanted[id] = true
		}
		lines = nil
		for _, item := range cart.Items {
			if wanted[item.ProductID] {
				lines = append(lines, item)
				consumed = append(consumed, item.ProductID)
			}
		}
		if len(lines) == 0 {
			return nil, apperror.BadRequest("cart is empty")
		}
	}

	intent, err := s.stripeClient.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("verify payment intent: %w", err)
	}
	if intent.Status != model.IntentStatusSucceeded {
		return nil, apperror.BadRequest("payment not completed, intent status is %s", intent.Status)
	}

	subtotal := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(lines))
	for _, item := range lines {
		if item.Product == nil {
			continue
		}
		price := decimal.NewFromFloat(item.Product.Price)
		amount := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(amount)

		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Image:     item.Product.Image,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			Amount:    amount.InexactFloat64(),
		})
	}
	if len(orderItems) == 0 {
		return nil, apperror.BadRequest("cart is empty")
	}

	tax := subtotal.Mul(decimal.NewFromFloat(s.checkoutCfg.TaxRate)).Round(2)
	shippingFee := decimal.NewFromFloat(s.checkoutCfg.ShippingFee)
	total := subtotal.Add(tax).Add(shippingFee)

	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           orderItems,
		Subtotal:        subtotal.InexactFloat64(),
		Tax:             tax.InexactFloat64(),
		ShippingFee:     shippingFee.InexactFloat64(),
		Total:           total.InexactFloat64(),
		PaymentIntentID: paymentIntentID,
		Status:          model.IntentStatusSucceeded,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	if err := s.clearConsumed(ctx, cart, consumed); err != nil {
		// order exists and payment is settled, a stale cart is recoverable
		logger.Error().Err(err).Str("order_id", order.ID).Msg("clear cart after checkout")
	}

	return order, nil
}

func (s *checkoutServiceImpl) ListUserOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.FindByUser(ctx, userID)
}

func (s *checkoutServiceImpl) GetOrder(ctx context.Context, userID string, isAdmin bool, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("no order with id %s", orderID)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	if !isAdmin && order.UserID != userID {
		return nil, apperror.Forbidden("not authorized to access this order")
	}

	return order, nil
}

func (s *checkoutServiceImpl) UpdateOrderStatus(ctx context.Context, userID string, isAdmin bool, orderID, status string) (*model.Order, error) {
	if !orderStatuses[status] {
		return nil, apperror.BadRequest("invalid order status %q", status)
	}

	order, err := s.GetOrder(ctx, userID, isAdmin, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = status
	return order, nil
}

func (s *checkoutServiceImpl) ListAllOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *checkoutServiceImpl) DeleteAllOrders(ctx context.Context) error {
	return s.orderRepo.DeleteAll(ctx)
}

// loadCart returns the user's cart with products resolved, or the empty-cart
// business error.
func (s *checkoutServiceImpl) loadCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.BadRequest("cart is empty")
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperror.BadRequest("cart is empty")
	}

	ids := make([]string, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ProductID
	}
	products, err := s.productRepo.FindMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}

	byID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range cart.Items {
		cart.Items[i].Product = byID[cart.Items[i].ProductID]
	}

	return cart, nil
}

// clearConsumed removes the ordered lines from the cart, all of them for a
// full checkout, and recomputes the cached total of whatever remains.
func (s *checkoutServiceImpl) clearConsumed(ctx context.Context, cart *model.Cart, consumed []string) error {
	if consumed == nil {
		return s.cartRepo.RemoveItems(ctx, cart.ID, nil, 0)
	}

	taken := make(map[string]bool, len(consumed))
	for _, id := range consumed {
		taken[id] = true
	}

	remaining := decimal.Zero
	for _, item := range cart.Items {
		if taken[item.ProductID] || item.Product == nil {
			continue
		}
		remaining = remaining.Add(
			decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return s.cartRepo.RemoveItems(ctx, cart.ID, consumed, remaining.InexactFloat64())
}
