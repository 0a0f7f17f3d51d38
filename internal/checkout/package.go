package checkout

import (
	"errors"
	"fmt"
)

// Package is one purchasable crystal bundle as shown on the storefront.
// Prices are cents; Crystals is the in-game amount delivered on purchase.
type Package struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
	Crystals   int64  `json:"crystals"`
}

var ErrInvalidPackage = errors.New("invalid package")

// Validate rejects packages that cannot be priced into an order.
func (p Package) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidPackage)
	}
	if p.PriceCents <= 0 {
		return fmt.Errorf("%w: non-positive price for %q", ErrInvalidPackage, p.ID)
	}

	return nil
}
