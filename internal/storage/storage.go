package storage

import (
	"context"
	"errors"
)

// Store is the durable client-side key-value store behind the cart and the
// booking draft. The storefront originally kept these in browser local
// storage; any driver that honors Get/Set/Delete semantics is a valid medium.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes a key; deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("storage: key not found")

const (
	// KeyCart -> JSON list of cart items, written by the product pages.
	KeyCart = "cart"
	// KeyBookingDraft -> JSON contact/address data from the booking form.
	KeyBookingDraft = "bookingData"
)
