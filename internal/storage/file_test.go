package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundtrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyCart, []byte(`[{"cosmetic_id":1}]`)))
	b, err := s.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"cosmetic_id":1}]`, string(b))

	require.NoError(t, s.Delete(ctx, KeyCart))
	_, err = s.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreDeleteAbsentKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), KeyBookingDraft))
}

func TestFileStoreKeysAreIndependent(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyCart, []byte(`[]`)))
	require.NoError(t, s.Set(ctx, KeyBookingDraft, []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, KeyCart))

	b, err := s.Get(ctx, KeyBookingDraft)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}
