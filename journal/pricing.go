/*
pricing.go - Per-detail geometry and price arithmetic

PURPOSE:
  Stateless, deterministic functions over a single InvoiceDetail draft. The UI
  calls Recompute on every keystroke that changes a dependency; the engine
  calls it once more before storage so stored derived fields can never drift
  from their inputs.

THE CANONICAL FORMULAS:
  cubic = width * thickness * length * count
  total = unit_price * length * width * thickness * count

  Price and volume share the same four multiplicands. total is NOT defined as
  unit_price * cubic even though the two are numerically identical; the
  five-factor product is the formula the business signs off on.

ADJUSTED-PRICE OVERLAY:
  flat-deduction: adjusted unit price = overlay / cubic (cubic > 0 only),
                  difference = total - overlay
  owed-balance:   difference = total - overlay, no adjusted unit price

EDGE CASES:
  Zero or negative dimensions are not an error here; they simply produce zero
  (or signed) results. validate.go rejects them before the journal is touched.
  A zero cubic volume means "no adjusted price" rather than a division error.
*/
package journal

import "github.com/shopspring/decimal"

// Cubic returns width * thickness * length * count for a detail line.
// This is the unit of inventory quantity.
func Cubic(d InvoiceDetail) decimal.Decimal {
	return d.Width.
		Mul(d.Thickness).
		Mul(d.Length).
		Mul(decimal.NewFromInt(d.Count))
}

// Total returns unit_price * length * width * thickness * count.
func Total(d InvoiceDetail) decimal.Decimal {
	return d.UnitPrice.
		Mul(d.Length).
		Mul(d.Width).
		Mul(d.Thickness).
		Mul(decimal.NewFromInt(d.Count))
}

// AdjustedUnitPrice returns overlay / cubic for flat-deduction overlays.
// The second return is false when no adjusted price is defined: wrong mode,
// no overlay amount, or zero cubic volume. Callers must not display a value
// when it is false.
func AdjustedUnitPrice(d InvoiceDetail) (decimal.Decimal, bool) {
	if d.OverlayMode != OverlayFlatDeduction || d.OverlayAmount == nil {
		return decimal.Zero, false
	}
	cubic := Cubic(d)
	if !cubic.IsPositive() {
		return decimal.Zero, false
	}
	return d.OverlayAmount.Div(cubic), true
}

// Difference returns total - overlay amount for either overlay mode.
// The second return is false when no overlay is in effect.
func Difference(d InvoiceDetail) (decimal.Decimal, bool) {
	if d.OverlayAmount == nil {
		return decimal.Zero, false
	}
	switch d.OverlayMode {
	case OverlayFlatDeduction, OverlayOwedBalance:
		return Total(d).Sub(*d.OverlayAmount), true
	default:
		return decimal.Zero, false
	}
}

// Recompute fills the derived fields of a detail from its inputs. A count
// below 1 defaults to 1 before anything is derived.
func Recompute(d InvoiceDetail) InvoiceDetail {
	if d.Count < 1 {
		d.Count = 1
	}

	d.Cubic = Cubic(d)
	d.Total = Total(d)

	d.AdjustedUnitPrice = nil
	if adjusted, ok := AdjustedUnitPrice(d); ok {
		d.AdjustedUnitPrice = &adjusted
	}

	d.Difference = nil
	if diff, ok := Difference(d); ok {
		d.Difference = &diff
	}
	return d
}
