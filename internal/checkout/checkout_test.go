package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/booking"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/cart"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/catalog"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/storage"
)

type memStore struct {
	m map[string][]byte
}

func newMemStore() *memStore { return &memStore{m: map[string][]byte{}} }

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := s.m[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.m[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.m, key)
	return nil
}

func stubCatalog(t *testing.T, products map[string]catalog.Detail) *catalog.Client {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/cosmetic/{slug}", func(w http.ResponseWriter, req *http.Request) {
		d, ok := products[chi.URLParam(req, "slug")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"data": d}})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return catalog.NewClient(srv.URL)
}

func newService(t *testing.T, kv storage.Store, products map[string]catalog.Detail) *Service {
	t.Helper()
	return &Service{
		Cart:    &cart.Store{KV: kv},
		Drafts:  &booking.DraftStore{KV: kv},
		Catalog: stubCatalog(t, products),
	}
}

func TestBeginEmptyCartRoutesAway(t *testing.T) {
	svc := newService(t, newMemStore(), nil)
	_, err := svc.Begin(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBeginBuildsSummary(t *testing.T) {
	kv := newMemStore()
	svc := newService(t, kv, map[string]catalog.Detail{
		"glow-serum": {ID: 1, Name: "Glow Serum", Slug: "glow-serum", Price: 100000},
		"soft-toner": {ID: 2, Name: "Soft Toner", Slug: "soft-toner", Price: 75000},
	})
	ctx := context.Background()
	require.NoError(t, svc.Cart.Save(ctx, []cart.Item{
		{CosmeticID: 1, Slug: "glow-serum", Quantity: 2},
		{CosmeticID: 2, Slug: "soft-toner", Quantity: 1},
	}))

	sess, err := svc.Begin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 275000, sess.Summary.Subtotal)
	assert.Equal(t, 30250, sess.Summary.Tax)
	assert.Equal(t, 305250, sess.Summary.Total)
	assert.Equal(t, 3, sess.Summary.TotalQuantity)

	require.Len(t, sess.Lines, 2)
	assert.True(t, sess.Lines[0].Matched)
	assert.Equal(t, "Glow Serum", sess.Lines[0].Detail.Name)
	// no draft saved: tolerated, just absent
	assert.Nil(t, sess.Draft)
}

func TestBeginFetchFailureAbortsWholeSession(t *testing.T) {
	kv := newMemStore()
	svc := newService(t, kv, map[string]catalog.Detail{
		"glow-serum": {ID: 1, Slug: "glow-serum", Price: 100000},
	})
	ctx := context.Background()
	require.NoError(t, svc.Cart.Save(ctx, []cart.Item{
		{CosmeticID: 1, Slug: "glow-serum", Quantity: 1},
		{CosmeticID: 9, Slug: "discontinued", Quantity: 1},
	}))

	sess, err := svc.Begin(ctx)
	require.Error(t, err)
	// error state, never a partially populated summary
	assert.Nil(t, sess)
}

func TestBeginLoadsDraft(t *testing.T) {
	kv := newMemStore()
	svc := newService(t, kv, map[string]catalog.Detail{
		"glow-serum": {ID: 1, Slug: "glow-serum", Price: 100000},
	})
	ctx := context.Background()
	require.NoError(t, svc.Cart.Save(ctx, []cart.Item{{CosmeticID: 1, Slug: "glow-serum", Quantity: 1}}))
	require.NoError(t, svc.Drafts.Save(ctx, booking.Draft{Name: "Ayu", Email: "a@b.com"}))

	sess, err := svc.Begin(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess.Draft)
	assert.Equal(t, "Ayu", sess.Draft.Name)
}
