package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront-api/internal/apperror"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPaymentService(t *testing.T, stripe *fakeStripeClient) (PaymentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPaymentService(
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		stripe,
	)
	return svc, db
}

func seedOrder(t *testing.T, db *gorm.DB, id, userID, intentID, status string) *model.Order {
	t.Helper()
	order := &model.Order{
		ID:              id,
		UserID:          userID,
		Subtotal:        20.00,
		Tax:             2.00,
		ShippingFee:     5.00,
		Total:           27.00,
		PaymentIntentID: intentID,
		Status:          status,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func webhookPayload(t *testing.T, eventType string, intent model.PaymentIntent) []byte {
	t.Helper()
	payload, err := json.Marshal(model.StripeEvent{
		ID:   "evt_1",
		Type: eventType,
		Data: model.StripeEventData{Object: intent},
	})
	require.NoError(t, err)
	return payload
}

func TestRecordPayment_MarksOrderPaid(t *testing.T) {
	stripe := &fakeStripeClient{
		intent: &model.PaymentIntent{ID: "pi_1", Amount: 2700, Currency: "usd", Status: "succeeded"},
	}
	svc, db := newPaymentService(t, stripe)
	seedOrder(t, db, "order-1", "user-1", "pi_1", "succeeded")

	payment, err := svc.RecordPayment(context.Background(), "user-1", "order-1")
	require.NoError(t, err)

	assert.Equal(t, "pi_1", payment.PaymentIntentID)
	assert.Equal(t, "succeeded", payment.Status)
	assert.InDelta(t, 27.00, payment.Amount, 0.001)

	var order model.Order
	require.NoError(t, db.First(&order, "id = ?", "order-1").Error)
	assert.Equal(t, "paid", order.Status)
}

func TestRecordPayment_AlreadyPaid(t *testing.T) {
	stripe := &fakeStripeClient{
		intent: &model.PaymentIntent{ID: "pi_1", Amount: 2700, Currency: "usd", Status: "succeeded"},
	}
	svc, db := newPaymentService(t, stripe)
	seedOrder(t, db, "order-1", "user-1", "pi_1", "succeeded")

	_, err := svc.RecordPayment(context.Background(), "user-1", "order-1")
	require.NoError(t, err)

	_, err = svc.RecordPayment(context.Background(), "user-1", "order-1")
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	assert.ErrorContains(t, err, "already paid")
}

func TestRecordPayment_GatewayNotSucceeded(t *testing.T) {
	stripe := &fakeStripeClient{
		intent: &model.PaymentIntent{ID: "pi_1", Status: "requires_payment_method"},
	}
	svc, db := newPaymentService(t, stripe)
	seedOrder(t, db, "order-1", "user-1", "pi_1", "pending")

	_, err := svc.RecordPayment(context.Background(), "user-1", "order-1")

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordPayment_UnknownOrder(t *testing.T) {
	svc, _ := newPaymentService(t, &fakeStripeClient{})

	_, err := svc.RecordPayment(context.Background(), "user-1", "ghost")

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	stripe := &fakeStripeClient{verifyErr: errors.New("no matching v1 signature")}
	svc, db := newPaymentService(t, stripe)
	seedOrder(t, db, "order-1", "user-1", "pi_1", "pending")

	payload := webhookPayload(t, model.EventPaymentSucceeded, model.PaymentIntent{ID: "pi_1", Status: "succeeded"})
	err := svc.HandleWebhook(context.Background(), payload, "t=1,v1=bad")

	assert.True(t, apperror.IsKind(err, apperror.KindSignature))

	// a rejected delivery must leave no trace
	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
	var order model.Order
	require.NoError(t, db.First(&order, "id = ?", "order-1").Error)
	assert.Equal(t, "pending", order.Status)
}

// Past the signature boundary the gateway always gets its acknowledgment,
// even when the payload does not parse.
func TestHandleWebhook_MalformedButSignedPayloadIsAcknowledged(t *testing.T) {
	svc, db := newPaymentService(t, &fakeStripeClient{})
	seedOrder(t, db, "order-1", "user-1", "pi_1", "pending")

	err := svc.HandleWebhook(context.Background(), []byte("{not json"), "t=1,v1=ok")

	assert.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
	var order model.Order
	require.NoError(t, db.First(&order, "id = ?", "order-1").Error)
	assert.Equal(t, "pending", order.Status)
}

func TestHandleWebhook_PaymentSucceeded(t *testing.T) {
	svc, db := newPaymentService(t, &fakeStripeClient{})
	seedOrder(t, db, "order-1", "user-1", "pi_1", "pending")

	payload := webhookPayload(t, model.EventPaymentSucceeded,
		model.PaymentIntent{ID: "pi_1", Amount: 2700, Currency: "usd", Status: "succeeded"})
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))

	var order model.Order
	require.NoError(t, db.First(&order, "id = ?", "order-1").Error)
	assert.Equal(t, "paid", order.Status)

	var payment model.Payment
	require.NoError(t, db.First(&payment, "payment_intent_id = ?", "pi_1").Error)
	assert.Equal(t, "order-1", payment.OrderID)
	assert.InDelta(t, 27.00, payment.Amount, 0.001)
}

// The gateway redelivers; the intent id uniqueness turns the second delivery
// into an update of the same row.
func TestHandleWebhook_DuplicateDelivery(t *testing.T) {
	svc, db := newPaymentService(t, &fakeStripeClient{})
	seedOrder(t, db, "order-1", "user-1", "pi_1", "pending")

	payload := webhookPayload(t, model.EventPaymentSucceeded,
		model.PaymentIntent{ID: "pi_1", Amount: 2700, Currency: "usd", Status: "succeeded"})
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestHandleWebhook_MetadataOrderFallback(t *testing.T) {
	svc, db := newPaymentService(t, &fakeStripeClient{})
	// intent id on the order does not match, only the metadata does
	seedOrder(t, db, "order-1", "user-1", "", "pending")

	payload := webhookPayload(t, model.EventPaymentSucceeded, model.PaymentIntent{
		ID:       "pi_1",
		Amount:   2700,
		Currency: "usd",
		Status:   "succeeded",
		Metadata: map[string]string{"order_id": "order-1"},
	})
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))

	var order model.Order
	require.NoError(t, db.First(&order, "id = ?", "order-1").Error)
	assert.Equal(t, "paid", order.Status)
}

func TestHandleWebhook_UnknownIntentIsAcknowledged(t *testing.T) {
	svc, db := newPaymentService(t, &fakeStripeClient{})

	payload := webhookPayload(t, model.EventPaymentSucceeded,
		model.PaymentIntent{ID: "pi_ghost", Status: "succeeded"})
	assert.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHandleWebhook_PaymentFailed(t *testing.T) {
	svc, db := newPaymentService(t, &fakeStripeClient{})
	seedOrder(t, db, "order-1", "user-1", "pi_1", "pending")

	payload := webhookPayload(t, model.EventPaymentFailed,
		model.PaymentIntent{ID: "pi_1", Status: "requires_payment_method"})
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))

	var order model.Order
	require.NoError(t, db.First(&order, "id = ?", "order-1").Error)
	assert.Equal(t, "failed", order.Status)

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHandleWebhook_IgnoresUnrelatedEvents(t *testing.T) {
	svc, _ := newPaymentService(t, &fakeStripeClient{})

	payload := webhookPayload(t, "charge.refunded", model.PaymentIntent{ID: "pi_1"})
	assert.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))
}
