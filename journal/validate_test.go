package journal_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alamer/timber-engine/journal"
)

func TestValidate_AcceptsCompleteInvoice(t *testing.T) {
	assert.NoError(t, journal.Validate(testInvoice()))
}

func TestValidate_RejectsMissingCustomerName(t *testing.T) {
	inv := testInvoice()
	inv.CustomerName = ""

	err := journal.Validate(inv)
	require.Error(t, err)
	assert.True(t, journal.IsValidation(err))

	var verr *journal.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "customer_name", verr.Field)
}

func TestValidate_RejectsUnknownDirection(t *testing.T) {
	inv := testInvoice()
	inv.Direction = "sideways"
	assert.True(t, journal.IsValidation(journal.Validate(inv)))
}

func TestValidate_RejectsEmptyItems(t *testing.T) {
	inv := testInvoice()
	inv.Items = nil
	assert.True(t, journal.IsValidation(journal.Validate(inv)))
}

func TestValidate_RejectsItemWithoutDetails(t *testing.T) {
	inv := testInvoice()
	inv.Items[0].Details = nil
	assert.True(t, journal.IsValidation(journal.Validate(inv)))
}

func TestValidateDetail_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		detail journal.InvoiceDetail
		field  string
	}{
		{"zero width", detail(0, 3, 4, 1, 10), "width"},
		{"zero thickness", detail(2, 0, 4, 1, 10), "thickness"},
		{"zero length", detail(2, 3, 0, 1, 10), "length"},
		{"zero unit price", detail(2, 3, 4, 1, 0), "unit_price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := journal.ValidateDetail(tc.detail)
			var verr *journal.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateDetail_NegativeDimensionAllowed(t *testing.T) {
	// The rule is presence/non-zero, not positivity.
	assert.NoError(t, journal.ValidateDetail(detail(-2, 3, 4, 1, 10)))
}
