// Package checkout owns the not-yet-purchased package selections for the
// active account and resolves the buy-now-with-non-empty-cart ambiguity into
// exactly four outcomes. It is single-session: one coordinator per active
// user, no concurrent mutation expected.
package checkout

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart blocks navigation to payment when there is nothing to buy.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoPendingSelection means a buy-now resolution was invoked outside
	// the choice dialog.
	ErrNoPendingSelection = errors.New("no pending selection")
)

// Coordinator holds the cart lines and the transient buy-now staging value.
// Every mutation persists the full cart to the account's store slot.
type Coordinator struct {
	store     Store
	accountID string
	lines     []CartLine
	pending   *Package
}

// New loads the persisted cart for accountID (empty string means guest).
func New(ctx context.Context, store Store, accountID string) (*Coordinator, error) {
	c := &Coordinator{store: store, accountID: accountID}

	err := c.reload(ctx)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Coordinator) reload(ctx context.Context) error {
	lines, err := c.store.Load(ctx, CartKey(c.accountID))
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	c.lines = normalizeLines(lines)

	return nil
}

func (c *Coordinator) persist(ctx context.Context) error {
	err := c.store.Save(ctx, CartKey(c.accountID), c.lines)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	return nil
}

// Lines returns a copy of the current cart contents in insertion order.
func (c *Coordinator) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)

	return out
}

// AwaitingChoice reports whether a buy-now conflict dialog is open.
func (c *Coordinator) AwaitingChoice() bool { return c.pending != nil }

// Pending returns the staged buy-now package, if any.
func (c *Coordinator) Pending() (Package, bool) {
	if c.pending == nil {
		return Package{}, false
	}

	return *c.pending, true
}

// SwitchAccount swaps to the given account's persisted cart. No merge: the
// previous account's lines are simply replaced. Any open dialog is dropped.
func (c *Coordinator) SwitchAccount(ctx context.Context, accountID string) error {
	c.accountID = accountID
	c.pending = nil

	return c.reload(ctx)
}

// AddToCart merges pkg into the cart: +1 on an existing line, else a new
// line at quantity 1.
func (c *Coordinator) AddToCart(ctx context.Context, pkg Package) error {
	err := pkg.Validate()
	if err != nil {
		return err
	}

	c.lines = mergeLine(c.lines, pkg)

	return c.persist(ctx)
}

// RemoveFromCart drops the whole line for packageID regardless of quantity.
// Absent lines are a no-op.
func (c *Coordinator) RemoveFromCart(ctx context.Context, packageID string) error {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ID != packageID {
			kept = append(kept, l)
		}
	}

	if len(kept) == len(c.lines) {
		return nil
	}

	c.lines = kept

	return c.persist(ctx)
}

// SetQuantity sets the line's quantity, clamped to a minimum of 1. Deleting
// a line goes through RemoveFromCart, never through a zero quantity.
func (c *Coordinator) SetQuantity(ctx context.Context, packageID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.lines {
		if c.lines[i].ID == packageID {
			c.lines[i].Quantity = quantity
			return c.persist(ctx)
		}
	}

	return nil
}

// BuyNow starts a purchase of pkg.
//
// Empty cart: the package becomes the whole cart and checkout proceeds
// immediately, so the returned order is non-nil and no dialog opens.
//
// Non-empty cart: pkg is staged as the pending selection, the returned order
// is nil, and the caller must resolve via exactly one of ClearAndCheckout,
// AddAndContinueShopping, AddAndCheckout or Cancel.
func (c *Coordinator) BuyNow(ctx context.Context, pkg Package) (*Order, error) {
	err := pkg.Validate()
	if err != nil {
		return nil, err
	}

	if len(c.lines) == 0 {
		err = c.AddToCart(ctx, pkg)
		if err != nil {
			return nil, err
		}

		return c.Checkout()
	}

	staged := pkg
	c.pending = &staged

	return nil, nil
}

// ClearAndCheckout discards the existing cart, keeps only the pending
// selection, and proceeds to checkout.
func (c *Coordinator) ClearAndCheckout(ctx context.Context) (*Order, error) {
	pkg, err := c.takePending()
	if err != nil {
		return nil, err
	}

	c.lines = nil

	err = c.AddToCart(ctx, pkg)
	if err != nil {
		return nil, err
	}

	return c.Checkout()
}

// AddAndContinueShopping merges the pending selection into the cart and
// stays on the current page.
func (c *Coordinator) AddAndContinueShopping(ctx context.Context) error {
	pkg, err := c.takePending()
	if err != nil {
		return err
	}

	return c.AddToCart(ctx, pkg)
}

// AddAndCheckout merges the pending selection into the cart and proceeds to
// checkout with the full merged cart.
func (c *Coordinator) AddAndCheckout(ctx context.Context) (*Order, error) {
	pkg, err := c.takePending()
	if err != nil {
		return nil, err
	}

	err = c.AddToCart(ctx, pkg)
	if err != nil {
		return nil, err
	}

	return c.Checkout()
}

// Cancel discards the pending selection and leaves the cart unchanged.
func (c *Coordinator) Cancel() {
	c.pending = nil
}

func (c *Coordinator) takePending() (Package, error) {
	if c.pending == nil {
		return Package{}, ErrNoPendingSelection
	}

	pkg := *c.pending
	c.pending = nil

	return pkg, nil
}

// Checkout assembles the order handed to the external payment flow. The cart
// is left intact; only a confirmed payment clears it.
func (c *Coordinator) Checkout() (*Order, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}

	return buildOrder(c.lines), nil
}

// ConfirmPaymentSuccess is invoked by the external payment flow after a
// confirmed success. It is the only terminal action that empties the cart
// and removes the persisted slot.
func (c *Coordinator) ConfirmPaymentSuccess(ctx context.Context) error {
	c.lines = nil
	c.pending = nil

	err := c.store.Delete(ctx, CartKey(c.accountID))
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}
