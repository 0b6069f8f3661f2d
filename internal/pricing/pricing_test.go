package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/cart"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/catalog"
)

func TestCalculate(t *testing.T) {
	items := []cart.Item{{CosmeticID: 1, Slug: "x", Quantity: 2}}
	details := map[int]catalog.Detail{1: {ID: 1, Price: 100000}}

	s := Calculate(items, details)
	assert.Equal(t, 200000, s.Subtotal)
	assert.Equal(t, 2, s.TotalQuantity)
	assert.Equal(t, 22000, s.Tax)
	assert.Equal(t, 222000, s.Total)
}

func TestCalculateUnmatchedItemsPriceAtZero(t *testing.T) {
	items := []cart.Item{
		{CosmeticID: 1, Slug: "serum", Quantity: 2},
		{CosmeticID: 99, Slug: "gone", Quantity: 3},
	}
	details := map[int]catalog.Detail{1: {ID: 1, Price: 50000}}

	s := Calculate(items, details)
	assert.Equal(t, 100000, s.Subtotal)
	// the unmatched line still counts toward the quantity
	assert.Equal(t, 5, s.TotalQuantity)
	assert.Equal(t, s.Subtotal+s.Tax, s.Total)
}

func TestCalculateEmptyCart(t *testing.T) {
	s := Calculate(nil, nil)
	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.Tax)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.TotalQuantity)
}

func TestCalculateTaxTruncates(t *testing.T) {
	items := []cart.Item{{CosmeticID: 1, Slug: "x", Quantity: 1}}
	details := map[int]catalog.Detail{1: {ID: 1, Price: 99999}}

	s := Calculate(items, details)
	// 99999 * 11 / 100 = 10999.89 -> 10999, total adds tax exactly
	assert.Equal(t, 10999, s.Tax)
	assert.Equal(t, 110998, s.Total)
}

func TestFormatIDR(t *testing.T) {
	assert.Equal(t, "Rp 200.000", FormatIDR(200000))
	assert.Equal(t, "Rp 1.222.000", FormatIDR(1222000))
	assert.Equal(t, "Rp 0", FormatIDR(0))
}
