package checkout

import (
	"context"
	"errors"

	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/booking"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/cart"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/catalog"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/pricing"
)

// ErrEmptyCart routes the user away from checkout: there is nothing to pay for.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Line pairs a cart entry with its fetched detail. Detail is zero-valued
// when the product id had no match; the line then prices at zero.
type Line struct {
	Item    cart.Item
	Detail  catalog.Detail
	Matched bool
}

// Session is one checkout view: cart lines, the optional booking draft and
// the derived summary. Details are fetched fresh per session.
type Session struct {
	Items   []cart.Item
	Lines   []Line
	Draft   *booking.Draft
	Details map[int]catalog.Detail
	Summary pricing.Summary
}

type Service struct {
	Cart    *cart.Store
	Drafts  *booking.DraftStore
	Catalog *catalog.Client
}

// Begin loads the cart, fetches every product detail concurrently and
// computes the summary. A failed fetch aborts the session; there is no
// partially rendered state.
func (s *Service) Begin(ctx context.Context) (*Session, error) {
	items, err := s.Cart.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	draft, err := s.Drafts.Load(ctx)
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(items))
	for _, it := range items {
		slugs = append(slugs, it.Slug)
	}
	details, err := s.Catalog.FetchDetails(ctx, slugs)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	for _, it := range items {
		d, ok := details[it.CosmeticID]
		lines = append(lines, Line{Item: it, Detail: d, Matched: ok})
	}

	return &Session{
		Items:   items,
		Lines:   lines,
		Draft:   draft,
		Details: details,
		Summary: pricing.Calculate(items, details),
	}, nil
}
