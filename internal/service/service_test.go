package service

import (
	"context"
	"testing"

	"storefront-api/internal/client"
	"storefront-api/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a fresh connection would see an empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, client.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, email string) *model.User {
	t.Helper()
	user := &model.User{ID: id, Name: "Test User", Email: email, Role: "user"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, id string, price float64) *model.Product {
	t.Helper()
	product := &model.Product{ID: id, Name: "Product " + id, Price: price, Image: "/uploads/" + id + ".jpeg"}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCategory(t *testing.T, db *gorm.DB, id, name, slug string, parentID *string) *model.Category {
	t.Helper()
	category := &model.Category{ID: id, Name: name, Slug: slug, ParentID: parentID}
	require.NoError(t, db.Create(category).Error)
	return category
}

// fakeStripeClient implements client.StripeClient for tests. Created intents
// are captured; GetPaymentIntent serves the configured intent.
type fakeStripeClient struct {
	createdAmounts  []int64
	createdCurrency string
	createErr       error

	intent *model.PaymentIntent
	getErr error

	verifyErr error
}

var _ client.StripeClient = (*fakeStripeClient)(nil)

func (f *fakeStripeClient) CreatePaymentIntent(_ context.Context, amount int64, currency string, metadata map[string]string) (*model.PaymentIntent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdAmounts = append(f.createdAmounts, amount)
	f.createdCurrency = currency
	return &model.PaymentIntent{
		ID:           "pi_test",
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
		ClientSecret: "pi_test_secret",
		Metadata:     metadata,
	}, nil
}

func (f *fakeStripeClient) GetPaymentIntent(_ context.Context, intentID string) (*model.PaymentIntent, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.intent != nil && f.intent.ID == intentID {
		return f.intent, nil
	}
	return &model.PaymentIntent{ID: intentID, Status: "requires_payment_method"}, nil
}

func (f *fakeStripeClient) VerifyWebhookSignature(_ []byte, _ string) error {
	return f.verifyErr
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
