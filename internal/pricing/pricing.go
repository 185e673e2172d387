package pricing

// DiscountedUnitPrice applies a percentage discount to a unit price in cents,
// rounding half-up to the nearest cent. Rounding policy is fixed here and
// nowhere else; zero or out-of-range discounts leave the price unchanged.
func DiscountedUnitPrice(price int64, discountPercent int) int64 {
	if discountPercent <= 0 || discountPercent > 100 || price <= 0 {
		return price
	}
	return (price*int64(100-discountPercent) + 50) / 100
}

// TaxPolicy computes the tax amount for an order subtotal.
type TaxPolicy interface {
	TaxAmount(subtotal int64) int64
}

type ZeroTax struct{}

func (ZeroTax) TaxAmount(int64) int64 { return 0 }

// FlatRate taxes the subtotal at a fixed rate given in basis points,
// rounding half-up.
type FlatRate struct {
	BasisPoints int64
}

func (f FlatRate) TaxAmount(subtotal int64) int64 {
	if f.BasisPoints <= 0 || subtotal <= 0 {
		return 0
	}
	return (subtotal*f.BasisPoints + 5000) / 10000
}

// ThresholdShipping is the fallback shipping rule: free above FreeOver,
// flat Fee below it.
type ThresholdShipping struct {
	FreeOver int64
	Fee      int64
}

func (t ThresholdShipping) Cost(subtotal int64) int64 {
	if subtotal >= t.FreeOver {
		return 0
	}
	return t.Fee
}
