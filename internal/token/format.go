// internal/token/format.go
package token

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// localeFractionDigits matches the default maximumFractionDigits of en-US number formatting.
const localeFractionDigits = 3

// FormatUnits renders a base-unit amount with the given number of decimals, trimming
// trailing fractional zeros but keeping at least one digit: 10^18 with 18 decimals is "1.0".
// With zero decimals the integer is returned as is.
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		raw = new(big.Int)
	}
	if decimals == 0 {
		return raw.String()
	}

	sign := ""
	value := raw
	if raw.Sign() < 0 {
		sign = "-"
		value = new(big.Int).Neg(raw)
	}

	multiplier := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(value, multiplier, new(big.Int))

	fraction := frac.String()
	if pad := int(decimals) - len(fraction); pad > 0 {
		fraction = strings.Repeat("0", pad) + fraction
	}
	fraction = strings.TrimRight(fraction, "0")
	if fraction == "" {
		fraction = "0"
	}

	return sign + whole.String() + "." + fraction
}

// FormatLocale renders a decimal string the way an en-US locale displays numbers:
// grouped thousands and at most three fraction digits, rounded half away from zero.
// Unparsable input is returned unchanged.
func FormatLocale(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}

	rounded := d.Round(localeFractionDigits)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	whole := rounded.Truncate(0)
	out := sign + humanize.BigComma(whole.BigInt())

	frac := rounded.Sub(whole)
	if !frac.IsZero() {
		// "0.125" -> ".125"
		out += strings.TrimPrefix(frac.String(), "0")
	}
	return out
}
