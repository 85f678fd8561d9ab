package service

import (
	"context"
	"fmt"
	"time"

	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
)

// Mailer sends the shipment notification. A send failure never fails the
// shipment itself.
type Mailer interface {
	Send(to, subject, body string) error
}

type ShippingService interface {
	CreateShipment(ctx context.Context, req *dto.CreateShipmentRequest) (*model.Shipping, error)
	GetShipmentStatus(ctx context.Context, orderID string) (*model.Shipping, error)
}

type shippingServiceImpl struct {
	shippingRepo repository.ShippingRepository
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
	userRepo     repository.UserRepository
	mailer       Mailer
}

func NewShippingService(
	shippingRepo repository.ShippingRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	mailer Mailer,
) ShippingService {
	return &shippingServiceImpl{
		shippingRepo: shippingRepo,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		userRepo:     userRepo,
		mailer:       mailer,
	}
}

const deliveryEstimate = 5 * 24 * time.Hour

// CreateShipment is gated on a succeeded payment for the order. Nothing ships
// before the gateway has confirmed the money.
func (s *shippingServiceImpl) CreateShipment(ctx context.Context, req *dto.CreateShipmentRequest) (*model.Shipping, error) {
	if req.OrderID == "" {
		return nil, apperror.BadRequest("order id is required")
	}

	paid, err := s.paymentRepo.HasSucceededForOrder(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("check payment: %w", err)
	}
	if !paid {
		return nil, apperror.BadRequest("payment for order %s has not succeeded", req.OrderID)
	}

	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	owner, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("order owner not found")
		}
		return nil, fmt.Errorf("load order owner: %w", err)
	}

	carrier := req.Carrier
	if carrier == "" {
		carrier = "UPS"
	}

	shipping := &model.Shipping{
		ID:                    uuid.NewString(),
		UserID:                order.UserID,
		OrderID:               order.ID,
		Address:               req.Address,
		TrackingNumber:        req.TrackingNumber,
		Carrier:               carrier,
		Status:                "shipped",
		EstimatedDeliveryDate: time.Now().Add(deliveryEstimate),
	}

	if err := s.shippingRepo.Create(ctx, shipping); err != nil {
		return nil, fmt.Errorf("store shipping: %w", err)
	}

	s.notify(owner, shipping)

	return shipping, nil
}

func (s *shippingServiceImpl) GetShipmentStatus(ctx context.Context, orderID string) (*model.Shipping, error) {
	shipping, err := s.shippingRepo.FindByOrder(ctx, orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("shipping details not found")
		}
		return nil, fmt.Errorf("load shipping: %w", err)
	}

	return shipping, nil
}

func (s *shippingServiceImpl) notify(owner *model.User, shipping *model.Shipping) {
	if owner.Email == "" {
		logger.Error().Str("user_id", owner.ID).Msg("no email on file for shipment notification")
		return
	}

	subject := "Your Order Has Been Shipped!"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour order (#%s) has been shipped!\n\n"+
			"Tracking Number: %s\nCarrier: %s\nEstimated Delivery: %s\n\n"+
			"Thank you for shopping with us!",
		owner.Name,
		shipping.OrderID,
		shipping.TrackingNumber,
		shipping.Carrier,
		shipping.EstimatedDeliveryDate.Format("Mon Jan 2 2006"),
	)

	if err := s.mailer.Send(owner.Email, subject, body); err != nil {
		logger.Error().Err(err).Str("order_id", shipping.OrderID).Msg("send shipment notification")
	}
}
