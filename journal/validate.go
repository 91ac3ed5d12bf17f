/*
validate.go - Pre-submit validation rules

PURPOSE:
  Rules the calling layer must satisfy before an invoice may reach the
  journal. Rejection here leaves the journal and every derived view untouched.

RULES:
  Invoice: customer name present, a known direction, at least one item,
           at least one detail per item.
  Detail:  width, thickness, length and unit price all present and non-zero.
           Count is not validated; it defaults to 1 when unset (pricing.go).

  Note the detail rule is presence/non-zero, not positivity. The reference
  behavior lets a negative dimension through and produces signed arithmetic;
  only empty/zero fields fail the user-facing check.
*/
package journal

// ValidateDetail checks the four required fields of a detail draft.
func ValidateDetail(d InvoiceDetail) error {
	switch {
	case d.Width.IsZero():
		return &ValidationError{Field: "width", Message: "width is required"}
	case d.Thickness.IsZero():
		return &ValidationError{Field: "thickness", Message: "thickness is required"}
	case d.Length.IsZero():
		return &ValidationError{Field: "length", Message: "length is required"}
	case d.UnitPrice.IsZero():
		return &ValidationError{Field: "unit_price", Message: "unit price is required"}
	}
	return nil
}

// Validate checks an invoice before it is accepted into the journal.
func Validate(inv Invoice) error {
	if inv.CustomerName == "" {
		return &ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if !inv.Direction.Valid() {
		return &ValidationError{Field: "direction", Message: "direction must be incoming or outgoing"}
	}
	if len(inv.Items) == 0 {
		return &ValidationError{Field: "items", Message: "invoice needs at least one item"}
	}
	for _, item := range inv.Items {
		if len(item.Details) == 0 {
			return &ValidationError{Field: "items", Message: "item needs at least one detail line"}
		}
		for _, d := range item.Details {
			if err := ValidateDetail(d); err != nil {
				return err
			}
		}
	}
	return nil
}
