package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/storage"
)

// Item is one line in the client-side cart, as the product pages write it.
type Item struct {
	CosmeticID int    `json:"cosmetic_id"`
	Slug       string `json:"slug"`
	Quantity   int    `json:"quantity"`
}

var ErrInvalidQuantity = errors.New("cart: quantity must be positive")

// Store reads and writes the cart under its fixed storage key.
type Store struct {
	KV storage.Store
}

// Load returns the persisted cart, or an empty slice when none exists.
func (s *Store) Load(ctx context.Context) ([]Item, error) {
	b, err := s.KV.Get(ctx, storage.KeyCart)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (s *Store) Save(ctx context.Context, items []Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.KV.Set(ctx, storage.KeyCart, b)
}

// Add merges an item into the cart by cosmetic id, incrementing quantity
// when the product is already present.
func (s *Store) Add(ctx context.Context, it Item) error {
	if it.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	merged := false
	for i := range items {
		if items[i].CosmeticID == it.CosmeticID {
			items[i].Quantity += it.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, it)
	}
	return s.Save(ctx, items)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.KV.Delete(ctx, storage.KeyCart)
}
