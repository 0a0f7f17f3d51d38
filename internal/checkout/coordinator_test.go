package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pkgSmall = Package{ID: "pkg_500", Name: "Handful of Crystals", PriceCents: 499, Crystals: 500}
	pkgBig   = Package{ID: "pkg_5000", Name: "Crate of Crystals", PriceCents: 3_999, Crystals: 5_000}
	pkgHuge  = Package{ID: "pkg_12000", Name: "Vault of Crystals", PriceCents: 7_999, Crystals: 12_000}
)

func newCoordinator(t *testing.T, accountID string) (*Coordinator, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore()
	c, err := New(context.Background(), store, accountID)
	require.NoError(t, err)

	return c, store
}

func TestCartKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cart_42", CartKey("42"))
	assert.Equal(t, "cart_guest", CartKey(""))
}

func TestAddToCart_MergesSamePackage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	require.NoError(t, c.AddToCart(ctx, pkgBig))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, pkgSmall.ID, lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, pkgBig.ID, lines[1].ID)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAddToCart_RejectsInvalidPackage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	err := c.AddToCart(ctx, Package{Name: "no id", PriceCents: 100})
	assert.ErrorIs(t, err, ErrInvalidPackage)

	err = c.AddToCart(ctx, Package{ID: "freebie", PriceCents: 0})
	assert.ErrorIs(t, err, ErrInvalidPackage)

	assert.Empty(t, c.Lines())
}

func TestRemoveFromCart_DropsWholeLine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	require.NoError(t, c.AddToCart(ctx, pkgBig))

	require.NoError(t, c.RemoveFromCart(ctx, pkgSmall.ID))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, pkgBig.ID, lines[0].ID)

	// absent id is a no-op
	require.NoError(t, c.RemoveFromCart(ctx, "pkg_unknown"))
	assert.Len(t, c.Lines(), 1)
}

func TestSetQuantity_ClampsToOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))

	require.NoError(t, c.SetQuantity(ctx, pkgSmall.ID, 5))
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	require.NoError(t, c.SetQuantity(ctx, pkgSmall.ID, 0))
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	require.NoError(t, c.SetQuantity(ctx, pkgSmall.ID, -3))
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	// absent id is a no-op
	require.NoError(t, c.SetQuantity(ctx, "pkg_unknown", 3))
	assert.Len(t, c.Lines(), 1)
}

func TestBuyNow_EmptyCartCheckoutsImmediately(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	order, err := c.BuyNow(ctx, pkgBig)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.False(t, c.AwaitingChoice())
	require.Len(t, order.Items, 1)
	assert.Equal(t, pkgBig.ID, order.Items[0].PackageID)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, pkgBig.PriceCents, order.TotalCents)

	// the cart now holds the bought line until payment confirms
	require.Len(t, c.Lines(), 1)
}

func TestBuyNow_NonEmptyCartOpensDialog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))

	order, err := c.BuyNow(ctx, pkgBig)
	require.NoError(t, err)
	assert.Nil(t, order)

	require.True(t, c.AwaitingChoice())
	pending, ok := c.Pending()
	require.True(t, ok)
	assert.Equal(t, pkgBig, pending)

	// cart untouched while the dialog is open
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, pkgSmall.ID, lines[0].ID)
}

func TestClearAndCheckout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	_, err := c.BuyNow(ctx, pkgBig)
	require.NoError(t, err)

	order, err := c.ClearAndCheckout(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Len(t, order.Items, 1)
	assert.Equal(t, pkgBig.ID, order.Items[0].PackageID)
	assert.Equal(t, pkgBig.PriceCents, order.TotalCents)

	assert.False(t, c.AwaitingChoice())
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, pkgBig.ID, lines[0].ID)
}

func TestAddAndContinueShopping(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	_, err := c.BuyNow(ctx, pkgBig)
	require.NoError(t, err)

	require.NoError(t, c.AddAndContinueShopping(ctx))

	assert.False(t, c.AwaitingChoice())
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, pkgSmall.ID, lines[0].ID)
	assert.Equal(t, pkgBig.ID, lines[1].ID)
}

func TestAddAndCheckout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	_, err := c.BuyNow(ctx, pkgBig)
	require.NoError(t, err)

	order, err := c.AddAndCheckout(ctx)
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Len(t, order.Items, 2)
	assert.Equal(t, pkgSmall.PriceCents+pkgBig.PriceCents, order.TotalCents)
	assert.False(t, c.AwaitingChoice())
	assert.Len(t, c.Lines(), 2)
}

func TestCancel_LeavesCartUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	_, err := c.BuyNow(ctx, pkgBig)
	require.NoError(t, err)

	c.Cancel()

	assert.False(t, c.AwaitingChoice())
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, pkgSmall.ID, lines[0].ID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestResolutionsWithoutPendingSelection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))

	_, err := c.ClearAndCheckout(ctx)
	assert.ErrorIs(t, err, ErrNoPendingSelection)

	err = c.AddAndContinueShopping(ctx)
	assert.ErrorIs(t, err, ErrNoPendingSelection)

	_, err = c.AddAndCheckout(ctx)
	assert.ErrorIs(t, err, ErrNoPendingSelection)

	// each resolution consumes the staging value exactly once
	_, err = c.BuyNow(ctx, pkgBig)
	require.NoError(t, err)
	require.NoError(t, c.AddAndContinueShopping(ctx))
	err = c.AddAndContinueShopping(ctx)
	assert.ErrorIs(t, err, ErrNoPendingSelection)
}

func TestCheckout_EmptyCart(t *testing.T) {
	t.Parallel()

	c, _ := newCoordinator(t, "1")

	_, err := c.Checkout()
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_LeavesCartIntact(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	require.NoError(t, c.AddToCart(ctx, pkgHuge))

	order, err := c.Checkout()
	require.NoError(t, err)
	assert.Equal(t, pkgSmall.PriceCents+pkgHuge.PriceCents, order.TotalCents)

	// an abandoned payment must not lose the cart
	assert.Len(t, c.Lines(), 2)

	again, err := c.Checkout()
	require.NoError(t, err)
	assert.NotEqual(t, order.ID, again.ID)
	assert.Equal(t, order.TotalCents, again.TotalCents)
}

func TestConfirmPaymentSuccess_ClearsCartAndSlot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, store := newCoordinator(t, "1")

	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	_, err := c.Checkout()
	require.NoError(t, err)

	require.NoError(t, c.ConfirmPaymentSuccess(ctx))

	assert.Empty(t, c.Lines())
	assert.False(t, c.AwaitingChoice())

	persisted, err := store.Load(ctx, CartKey("1"))
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestSwitchAccount_ReplacesCartWithoutMerging(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	// account 2 has a persisted cart from an earlier session
	require.NoError(t, store.Save(ctx, CartKey("2"), []CartLine{
		{Package: pkgHuge, Quantity: 3},
	}))

	c, err := New(ctx, store, "")
	require.NoError(t, err)

	require.NoError(t, c.AddToCart(ctx, pkgSmall))
	_, err = c.BuyNow(ctx, pkgBig)
	require.NoError(t, err)
	require.True(t, c.AwaitingChoice())

	require.NoError(t, c.SwitchAccount(ctx, "2"))

	// the guest cart is replaced wholesale and the dialog is dropped
	assert.False(t, c.AwaitingChoice())
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, pkgHuge.ID, lines[0].ID)
	assert.Equal(t, 3, lines[0].Quantity)

	// the guest slot survives untouched for the next guest session
	guest, err := store.Load(ctx, CartKey(""))
	require.NoError(t, err)
	require.Len(t, guest, 1)
	assert.Equal(t, pkgSmall.ID, guest[0].ID)
}

func TestNew_NormalizesPersistedLines(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, CartKey("1"), []CartLine{
		{Package: pkgSmall, Quantity: 0},              // clamped to 1
		{Package: Package{ID: "", PriceCents: 100}},   // dropped
		{Package: Package{ID: "x", PriceCents: -100}}, // dropped
		{Package: pkgBig, Quantity: 2},
	}))

	c, err := New(ctx, store, "1")
	require.NoError(t, err)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, pkgSmall.ID, lines[0].ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, pkgBig.ID, lines[1].ID)
	assert.Equal(t, 2, lines[1].Quantity)
}
