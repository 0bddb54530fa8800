/*
Package format renders derived money and date values for display.

PURPOSE:
  Every derived value the engine produces flows through here on its way
  to a table or statement. Fixed locale: Indian rupee with lakh/crore
  digit grouping (₹12,34,567.89), dates as dd/mm/yyyy.

TOTALITY:
  All functions are total. Non-finite or missing input renders as the
  zero/missing placeholder instead of panicking; the rendering layer
  never has to guard its inputs.

ROUNDING:
  Values are rounded to 2 fraction digits HERE and nowhere else. The
  derivation layer computes in full decimal precision.
*/
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/billing-engine/ledger"
)

const (
	rupee   = "₹"
	missing = "-"
)

// =============================================================================
// CURRENCY
// =============================================================================

// Currency renders a decimal amount as Indian rupees with lakh/crore
// grouping, always 2 fraction digits.
func Currency(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	out := rupee + groupIndian(intPart) + "." + fracPart
	if neg {
		return "-" + out
	}
	return out
}

// CurrencyFloat renders a float amount, defaulting non-finite input to
// zero rather than propagating NaN into the display.
func CurrencyFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Currency(decimal.Zero)
	}
	return Currency(decimal.NewFromFloat(f))
}

// CurrencyNull renders a nullable amount; missing values render as "-".
func CurrencyNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return missing
	}
	return Currency(d.Decimal)
}

// groupIndian applies en-IN digit grouping: the last three digits form
// one group, every group before that has two digits (12,34,567).
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	out := digits[len(digits)-3:]
	for len(head) > 2 {
		out = head[len(head)-2:] + "," + out
		head = head[:len(head)-2]
	}
	return head + "," + out
}

// =============================================================================
// DATES
// =============================================================================

// Date renders a time point as dd/mm/yyyy; the zero value renders as "-".
func Date(tp ledger.TimePoint) string {
	if tp.IsZero() {
		return missing
	}
	return tp.Time.Format("02/01/2006")
}

// DatePtr renders an optional time point; nil renders as "-".
func DatePtr(tp *ledger.TimePoint) string {
	if tp == nil {
		return missing
	}
	return Date(*tp)
}
