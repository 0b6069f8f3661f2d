package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/storage"
)

// Draft holds the contact/address data collected on the booking form,
// persisted client-side until a payment submission succeeds.
type Draft struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	PostCode string `json:"post_code"`
}

type DraftStore struct {
	KV storage.Store
}

// Load returns nil when no draft has been saved; absence is not an error,
// the submission simply goes out without contact fields attached.
func (s *DraftStore) Load(ctx context.Context) (*Draft, error) {
	b, err := s.KV.Get(ctx, storage.KeyBookingDraft)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode booking draft: %w", err)
	}
	return &d, nil
}

func (s *DraftStore) Save(ctx context.Context, d Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.KV.Set(ctx, storage.KeyBookingDraft, b)
}

func (s *DraftStore) Clear(ctx context.Context) error {
	return s.KV.Delete(ctx, storage.KeyBookingDraft)
}
