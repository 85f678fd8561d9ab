package service

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-api/internal/apperror"
	"storefront-api/internal/client"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentService interface {
	RecordPayment(ctx context.Context, userID, orderID string) (*model.Payment, error)
	ListUserPayments(ctx context.Context, userID string) ([]*model.Payment, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

type paymentServiceImpl struct {
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
	stripeClient client.StripeClient
}

func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	stripeClient client.StripeClient,
) PaymentService {
	return &paymentServiceImpl{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		stripeClient: stripeClient,
	}
}

// RecordPayment is the explicit confirmation path. The gateway is the source
// of truth: the live intent status is checked before anything is recorded.
func (s *paymentServiceImpl) RecordPayment(ctx context.Context, userID, orderID string) (*model.Payment, error) {
	if orderID == "" {
		return nil, apperror.BadRequest("order id is required")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NotFound("order not found")
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	paid, err := s.paymentRepo.HasSucceededForOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}
	if paid {
		return nil, apperror.BadRequest("already paid")
	}

	if order.PaymentIntentID == "" {
		return nil, apperror.BadRequest("order has no payment intent")
	}

	intent, err := s.stripeClient.GetPaymentIntent(ctx, order.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("verify payment intent: %w", err)
	}
	if intent.Status != model.IntentStatusSucceeded {
		return nil, apperror.BadRequest("payment not completed, intent status is %s", intent.Status)
	}

	payment := &model.Payment{
		ID:              uuid.NewString(),
		UserID:          order.UserID,
		OrderID:         order.ID,
		PaymentIntentID: intent.ID,
		Amount:          minorToMajor(intent.Amount),
		Currency:        intent.Currency,
		Status:          intent.Status,
	}

	if err := s.paymentRepo.UpsertByIntent(ctx, payment); err != nil {
		return nil, fmt.Errorf("store payment: %w", err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, "paid"); err != nil {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	return payment, nil
}

func (s *paymentServiceImpl) ListUserPayments(ctx context.Context, userID string) ([]*model.Payment, error) {
	return s.paymentRepo.FindByUser(ctx, userID)
}

// HandleWebhook is the asynchronous path. The signature check is the only
// hard boundary; once it passes, every failure downstream, a payload that
// does not parse included, is logged and acknowledged so the gateway does
// not retry-storm.
func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if err := s.stripeClient.VerifyWebhookSignature(payload, signatureHeader); err != nil {
		return apperror.Signature("webhook signature verification failed", err)
	}

	var event model.StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		// signed but unparseable; acknowledge so the gateway does not retry
		logger.Error().Err(err).Msg("malformed webhook payload")
		return nil
	}

	switch event.Type {
	case model.EventPaymentSucceeded:
		s.handlePaymentSucceeded(ctx, &event.Data.Object)
	case model.EventPaymentFailed:
		s.handlePaymentFailed(ctx, &event.Data.Object)
	default:
		logger.Debug().Str("event_type", event.Type).Msg("ignoring webhook event")
	}

	return nil
}

func (s *paymentServiceImpl) handlePaymentSucceeded(ctx context.Context, intent *model.PaymentIntent) {
	order, err := s.findOrderForIntent(ctx, intent)
	if err != nil {
		logger.Error().Err(err).Str("intent_id", intent.ID).Msg("load order for webhook")
		return
	}
	if order == nil {
		// finalize may not have run yet, the explicit path will converge
		logger.Warn().Str("intent_id", intent.ID).Msg("no order for succeeded payment intent")
		return
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, "paid"); err != nil {
		logger.Error().Err(err).Str("order_id", order.ID).Msg("mark order paid")
		return
	}

	payment := &model.Payment{
		ID:              uuid.NewString(),
		UserID:          order.UserID,
		OrderID:         order.ID,
		PaymentIntentID: intent.ID,
		Amount:          minorToMajor(intent.Amount),
		Currency:        intent.Currency,
		Status:          model.IntentStatusSucceeded,
	}
	if err := s.paymentRepo.UpsertByIntent(ctx, payment); err != nil {
		logger.Error().Err(err).Str("order_id", order.ID).Msg("record payment from webhook")
	}
}

func (s *paymentServiceImpl) handlePaymentFailed(ctx context.Context, intent *model.PaymentIntent) {
	order, err := s.findOrderForIntent(ctx, intent)
	if err != nil {
		logger.Error().Err(err).Str("intent_id", intent.ID).Msg("load order for webhook")
		return
	}
	if order == nil {
		logger.Warn().Str("intent_id", intent.ID).Msg("no order for failed payment intent")
		return
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, "failed"); err != nil {
		logger.Error().Err(err).Str("order_id", order.ID).Msg("mark order failed")
	}
}

// findOrderForIntent resolves the order by intent id, falling back to the
// order id the gateway metadata may carry. A nil order means not found.
func (s *paymentServiceImpl) findOrderForIntent(ctx context.Context, intent *model.PaymentIntent) (*model.Order, error) {
	order, err := s.orderRepo.FindByPaymentIntent(ctx, intent.ID)
	if err == nil {
		return order, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	orderID := intent.Metadata["order_id"]
	if orderID == "" {
		return nil, nil
	}

	order, err = s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return order, nil
}

func minorToMajor(amount int64) float64 {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(100)).InexactFloat64()
}
