package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
	"github.com/dokanlab/pos-terminal-api/pkg/apperror"
)

func newCartFixture(t *testing.T) (*CartService, *SessionManager, uuid.UUID) {
	t.Helper()

	catalog := &fakeCatalog{products: map[string]*entity.PosProduct{
		"prod-1": shirtProduct(),
		"prod-2": mugProduct(),
		"prod-3": soldOutProduct(),
	}}

	sessions := NewSessionManager(time.Hour)
	session := sessions.Create("main", uuid.New(), "Asha")
	return NewCartService(sessions, catalog), sessions, session.ID
}

func cartItems(t *testing.T, sessions *SessionManager, id uuid.UUID) []entity.CartLineItem {
	t.Helper()
	snapshot, err := sessions.Snapshot(id)
	require.NoError(t, err)
	return snapshot.Cart.Items
}

func TestAddProductMergesSameLine(t *testing.T) {
	cart, sessions, id := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddProduct(ctx, id, "prod-2", ""))
	require.NoError(t, cart.AddProduct(ctx, id, "prod-2", ""))

	items := cartItems(t, sessions, id)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(70000), items[0].LineTotal)
}

func TestAddProductVariantsAreSeparateLines(t *testing.T) {
	cart, sessions, id := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddProduct(ctx, id, "prod-1", "OX-M"))
	require.NoError(t, cart.AddProduct(ctx, id, "prod-2", ""))

	items := cartItems(t, sessions, id)
	require.Len(t, items, 2)
	assert.Equal(t, "OX-M", items[0].VariantSKU)
	assert.Equal(t, "M / White", items[0].VariantLabel)
	assert.Equal(t, int64(120000), items[0].UnitPrice)
}

func TestAddProductOutOfStock(t *testing.T) {
	cart, sessions, id := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, cart.AddProduct(ctx, id, "prod-2", ""))

	t.Run("branch stock gone", func(t *testing.T) {
		err := cart.AddProduct(ctx, id, "prod-3", "")
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})

	t.Run("variant stock gone", func(t *testing.T) {
		err := cart.AddProduct(ctx, id, "prod-1", "OX-L")
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})

	// A failed add leaves the cart untouched.
	items := cartItems(t, sessions, id)
	require.Len(t, items, 1)
	assert.Equal(t, "prod-2", items[0].ProductID)
}

func TestAddProductUnknown(t *testing.T) {
	cart, _, id := newCartFixture(t)

	err := cart.AddProduct(context.Background(), id, "nope", "")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateQuantity(t *testing.T) {
	cart, sessions, id := newCartFixture(t)
	ctx := context.Background()
	require.NoError(t, cart.AddProduct(ctx, id, "prod-2", ""))

	require.NoError(t, cart.UpdateQuantity(id, 0, 3))
	items := cartItems(t, sessions, id)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, int64(140000), items[0].LineTotal)

	t.Run("floors at one", func(t *testing.T) {
		require.NoError(t, cart.UpdateQuantity(id, 0, -10))
		items := cartItems(t, sessions, id)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, int64(35000), items[0].LineTotal)
	})

	t.Run("out of range index is a no-op", func(t *testing.T) {
		require.NoError(t, cart.UpdateQuantity(id, 5, 1))
		require.NoError(t, cart.UpdateQuantity(id, -1, 1))
		items := cartItems(t, sessions, id)
		assert.Equal(t, 1, items[0].Quantity)
	})
}

func TestRemoveItemKeepsOrder(t *testing.T) {
	cart, sessions, id := newCartFixture(t)
	ctx := context.Background()
	require.NoError(t, cart.AddProduct(ctx, id, "prod-1", "OX-M"))
	require.NoError(t, cart.AddProduct(ctx, id, "prod-2", ""))
	require.NoError(t, cart.AddProduct(ctx, id, "prod-1", ""))

	require.NoError(t, cart.RemoveItem(id, 1))

	items := cartItems(t, sessions, id)
	require.Len(t, items, 2)
	assert.Equal(t, "OX-M", items[0].VariantSKU)
	assert.Equal(t, "prod-1", items[1].ProductID)
	assert.Equal(t, "", items[1].VariantSKU)
}

func TestClearCartNeedsConfirmation(t *testing.T) {
	cart, sessions, id := newCartFixture(t)
	ctx := context.Background()
	require.NoError(t, cart.AddProduct(ctx, id, "prod-2", ""))
	require.NoError(t, cart.SetDiscount(id, "10"))

	err := cart.ClearCart(id, confirmNo())
	assert.ErrorIs(t, err, apperror.ErrConfirmationRequired)
	assert.Len(t, cartItems(t, sessions, id), 1)

	require.NoError(t, cart.ClearCart(id, confirmYes()))
	assert.Empty(t, cartItems(t, sessions, id))

	// Discount input survives a clear; only items are wiped.
	snapshot, err := sessions.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, "10", snapshot.Cart.DiscountInput)

	t.Run("empty cart clears without confirmation", func(t *testing.T) {
		assert.NoError(t, cart.ClearCart(id, confirmNo()))
	})
}

func TestSummaryFollowsCart(t *testing.T) {
	cart, _, id := newCartFixture(t)
	ctx := context.Background()
	require.NoError(t, cart.AddProduct(ctx, id, "prod-2", ""))
	require.NoError(t, cart.AddProduct(ctx, id, "prod-2", ""))
	require.NoError(t, cart.SetDiscount(id, "100"))

	summary, err := cart.Summary(id)
	require.NoError(t, err)
	assert.Equal(t, int64(70000), summary.Subtotal)
	assert.Equal(t, int64(10000), summary.Discount)
	assert.Equal(t, int64(60000), summary.Total)
	assert.Equal(t, 2, summary.ItemCount)
}

func TestCartUnknownSession(t *testing.T) {
	cart, _, _ := newCartFixture(t)
	err := cart.SetDiscount(uuid.New(), "5")
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
