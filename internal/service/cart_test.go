package service

import (
	"context"
	"testing"

	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartService(t *testing.T) (CartService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func TestAddItems_CreatesCartAndComputesTotal(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "p1", 10.50)
	seedProduct(t, db, "p2", 3.00)

	cart, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	})

	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.InDelta(t, 24.00, cart.TotalPrice, 0.001)
}

func TestAddItems_AccumulatesQuantityForExistingLine(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "p1", 5.00)

	_, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 2}})
	require.NoError(t, err)

	cart, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 3}})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.InDelta(t, 25.00, cart.TotalPrice, 0.001)
}

func TestAddItems_DefaultsQuantityToOne(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "p1", 7.00)

	cart, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1"}})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItems_EmptyInput(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.AddItems(context.Background(), "user-1", nil)

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestAddItems_UnknownProduct(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "ghost", Quantity: 1}})

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSetItems_OverwritesQuantity(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "p1", 4.00)

	_, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 5}})
	require.NoError(t, err)

	cart, err := svc.SetItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 2}})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.InDelta(t, 8.00, cart.TotalPrice, 0.001)
}

func TestSetItems_RejectsNonPositiveQuantity(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "p1", 4.00)

	_, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.SetItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 0}})

	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestSetItems_NoCart(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "p1", 4.00)

	_, err := svc.SetItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 1}})

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetCart_Missing(t *testing.T) {
	svc, _ := newCartService(t)

	_, err := svc.GetCart(context.Background(), "user-1")

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetCart_ResolvesProducts(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "p1", 9.99)

	_, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "p1", cart.Items[0].Product.ID)
}

func TestRemoveItem_RecomputesTotal(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "p1", 10.00)
	seedProduct(t, db, "p2", 2.50)

	_, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), "user-1", "p1")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
	assert.InDelta(t, 5.00, cart.TotalPrice, 0.001)
}

func TestRemoveItem_AbsentProductIsNoop(t *testing.T) {
	svc, db := newCartService(t)
	seedProduct(t, db, "p1", 10.00)

	_, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), "user-1", "ghost")
	require.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.InDelta(t, 10.00, cart.TotalPrice, 0.001)
}

// Prices are never frozen in the cart: the next mutation reprices every line
// from the catalog.
func TestCartTotal_FollowsCatalogPriceChange(t *testing.T) {
	svc, db := newCartService(t)
	product := seedProduct(t, db, "p1", 10.00)
	seedProduct(t, db, "p2", 1.00)

	_, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p1", Quantity: 2}})
	require.NoError(t, err)

	product.Price = 15.00
	require.NoError(t, db.Save(product).Error)

	cart, err := svc.AddItems(context.Background(), "user-1", []dto.CartItemInput{{ProductID: "p2", Quantity: 1}})
	require.NoError(t, err)

	assert.InDelta(t, 31.00, cart.TotalPrice, 0.001)
}
