package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/cart"
	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/catalog"
)

// TaxRatePercent is the fixed checkout tax rate.
const TaxRatePercent = 11

type Summary struct {
	Subtotal      int
	Tax           int
	Total         int
	TotalQuantity int
}

// Calculate derives the checkout summary from the cart and the fetched
// details. Pure and recomputable on every render: items without a matching
// detail contribute zero to the subtotal but still count toward the total
// quantity. Tax is truncating integer division on whole-rupiah prices;
// the total is subtotal plus tax with no independent rounding.
func Calculate(items []cart.Item, details map[int]catalog.Detail) Summary {
	var s Summary
	for _, it := range items {
		s.TotalQuantity += it.Quantity
		if d, ok := details[it.CosmeticID]; ok {
			s.Subtotal += d.Price * it.Quantity
		}
	}
	s.Tax = s.Subtotal * TaxRatePercent / 100
	s.Total = s.Subtotal + s.Tax
	return s
}

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR renders a whole-rupiah amount with Indonesian digit grouping,
// e.g. 200000 -> "Rp 200.000". No fractional minor units are shown.
func FormatIDR(amount int) string {
	return printer.Sprintf("Rp %d", amount)
}
