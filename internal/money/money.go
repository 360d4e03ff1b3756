// Package money converts between operator-entered decimal amounts and the
// integer minor-unit representation used everywhere else. All monetary
// display and transmission goes through this package so cent amounts never
// leak as floats.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jakeadel/bank-demo/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ToMinorUnits parses a decimal currency string ("50", "25.00") and returns
// the amount in minor units (cents). Amounts with more than two fractional
// digits are rounded half up.
func ToMinorUnits(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q", domain.ErrNegativeAmount, s)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// Format renders a minor-unit amount as a dollar string with exactly two
// fractional digits, e.g. 5000 -> "$50.00".
func Format(minorUnits int64) string {
	return "$" + decimal.NewFromInt(minorUnits).Div(hundred).StringFixed(2)
}
