package catalog

import (
	"math"
	"strconv"
	"strings"
)

// TaxRate is the IVA applied uniformly to catalog prices.
const TaxRate = 0.19

// DiscountTiers are the fixed discounts offered off the tax-inclusive
// catalog price, steepest first.
var DiscountTiers = [4]float64{0.35, 0.30, 0.25, 0.20}

// Round2 rounds to two decimals, half away from zero on the cent.
func Round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// ExclusivePrice derives the tax-exclusive price from a tax-inclusive one.
// A zero input yields exactly zero rather than going through the division.
func ExclusivePrice(inclusive float64) float64 {
	if inclusive == 0 {
		return 0
	}
	return Round2(inclusive / (1 + TaxRate))
}

// Discounted applies a discount percentage to the tax-inclusive price.
func Discounted(inclusive, pct float64) float64 {
	return Round2(inclusive * (1 - pct))
}

// ParsePrice reads the API's decimal string. Comma decimals are accepted;
// anything non-numeric (or non-finite) is treated as zero.
func ParsePrice(raw string) float64 {
	n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// DeriveItem computes the full price ladder for one SKU.
func DeriveItem(sku, medida string, inclusive float64, inventory int) Item {
	return Item{
		SKU:          sku,
		Medida:       medida,
		Inventario:   inventory,
		PrecioSinIVA: ExclusivePrice(inclusive),
		PrecioConIVA: inclusive,
		Precio35:     Discounted(inclusive, DiscountTiers[0]),
		Precio30:     Discounted(inclusive, DiscountTiers[1]),
		Precio25:     Discounted(inclusive, DiscountTiers[2]),
		Precio20:     Discounted(inclusive, DiscountTiers[3]),
	}
}
