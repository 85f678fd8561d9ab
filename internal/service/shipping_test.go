package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newShippingService(t *testing.T, mailer *fakeMailer) (ShippingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewShippingService(
		repository.NewShippingRepository(db),
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewUserRepository(db),
		mailer,
	)
	return svc, db
}

func seedSucceededPayment(t *testing.T, db *gorm.DB, orderID, userID, intentID string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Payment{
		ID:              "pay-" + orderID,
		UserID:          userID,
		OrderID:         orderID,
		PaymentIntentID: intentID,
		Amount:          27.00,
		Currency:        "usd",
		Status:          "succeeded",
	}).Error)
}

func TestCreateShipment_RequiresSucceededPayment(t *testing.T) {
	mailer := &fakeMailer{}
	svc, db := newShippingService(t, mailer)
	seedUser(t, db, "user-1", "user1@example.com")
	seedOrder(t, db, "order-1", "user-1", "pi_1", "succeeded")

	_, err := svc.CreateShipment(context.Background(), &dto.CreateShipmentRequest{OrderID: "order-1"})

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
	assert.Empty(t, mailer.sent)
}

func TestCreateShipment_ShipsAndNotifies(t *testing.T) {
	mailer := &fakeMailer{}
	svc, db := newShippingService(t, mailer)
	seedUser(t, db, "user-1", "user1@example.com")
	seedOrder(t, db, "order-1", "user-1", "pi_1", "paid")
	seedSucceededPayment(t, db, "order-1", "user-1", "pi_1")

	before := time.Now()
	shipping, err := svc.CreateShipment(context.Background(), &dto.CreateShipmentRequest{
		OrderID:        "order-1",
		TrackingNumber: "1Z999",
		Address:        model.Address{Street: "1 Main St", City: "Springfield"},
	})
	require.NoError(t, err)

	assert.Equal(t, "shipped", shipping.Status)
	assert.Equal(t, "UPS", shipping.Carrier)
	estimate := shipping.EstimatedDeliveryDate.Sub(before)
	assert.InDelta(t, float64(5*24*time.Hour), float64(estimate), float64(time.Minute))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "user1@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, "1Z999")
	assert.Contains(t, mailer.sent[0].Body, "order-1")
}

func TestCreateShipment_MissingEmailStillShips(t *testing.T) {
	mailer := &fakeMailer{}
	svc, db := newShippingService(t, mailer)
	seedUser(t, db, "user-1", "")
	seedOrder(t, db, "order-1", "user-1", "pi_1", "paid")
	seedSucceededPayment(t, db, "order-1", "user-1", "pi_1")

	shipping, err := svc.CreateShipment(context.Background(), &dto.CreateShipmentRequest{OrderID: "order-1"})

	require.NoError(t, err)
	assert.Equal(t, "shipped", shipping.Status)
	assert.Empty(t, mailer.sent)
}

func TestCreateShipment_MailerFailureStillShips(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp: connection refused")}
	svc, db := newShippingService(t, mailer)
	seedUser(t, db, "user-1", "user1@example.com")
	seedOrder(t, db, "order-1", "user-1", "pi_1", "paid")
	seedSucceededPayment(t, db, "order-1", "user-1", "pi_1")

	shipping, err := svc.CreateShipment(context.Background(), &dto.CreateShipmentRequest{OrderID: "order-1"})

	require.NoError(t, err)
	assert.Equal(t, "shipped", shipping.Status)
}

func TestCreateShipment_RequiresOrderID(t *testing.T) {
	svc, _ := newShippingService(t, &fakeMailer{})

	_, err := svc.CreateShipment(context.Background(), &dto.CreateShipmentRequest{})

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestGetShipmentStatus_NotFound(t *testing.T) {
	svc, _ := newShippingService(t, &fakeMailer{})

	_, err := svc.GetShipmentStatus(context.Background(), "order-1")

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetShipmentStatus_ReturnsShipment(t *testing.T) {
	mailer := &fakeMailer{}
	svc, db := newShippingService(t, mailer)
	seedUser(t, db, "user-1", "user1@example.com")
	seedOrder(t, db, "order-1", "user-1", "pi_1", "paid")
	seedSucceededPayment(t, db, "order-1", "user-1", "pi_1")

	created, err := svc.CreateShipment(context.Background(), &dto.CreateShipmentRequest{OrderID: "order-1"})
	require.NoError(t, err)

	got, err := svc.GetShipmentStatus(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "shipped", got.Status)
}
