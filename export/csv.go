/*
Package export serializes the invoice journal to delimited text.

PURPOSE:
  A read-only consumer of the journal: it renders the invoice list (optionally
  filtered by direction) as UTF-8 CSV with a leading byte-order mark so
  spreadsheet tools detect the encoding. Nothing here feeds back into the
  engine.

COLUMNS:
  invoice number, date, customer, direction, grand total, payment status,
  amount paid, amount remaining
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alamer/timber-engine/journal"
)

// utf8BOM makes Excel and friends open the file as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{
	"Invoice Number", "Date", "Customer", "Direction",
	"Grand Total", "Payment Status", "Amount Paid", "Amount Remaining",
}

// Invoices writes the invoice list as CSV. An empty direction exports the
// whole journal; otherwise only matching invoices are written.
func Invoices(w io.Writer, invoices []journal.Invoice, direction journal.Direction) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, inv := range invoices {
		if direction != "" && inv.Direction != direction {
			continue
		}
		record := []string{
			inv.Number,
			inv.Date,
			inv.CustomerName,
			string(inv.Direction),
			inv.GrandTotal.String(),
			string(inv.PaymentStatus),
			inv.AmountPaid.String(),
			inv.AmountRemaining.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write invoice %s: %w", inv.Number, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename returns the conventional export name for a direction and day,
// e.g. invoices_outgoing_2025-03-10.csv or invoices_all_2025-03-10.csv.
func Filename(direction journal.Direction, day time.Time) string {
	scope := "all"
	if direction != "" {
		scope = string(direction)
	}
	return fmt.Sprintf("invoices_%s_%s.csv", scope, day.Format("2006-01-02"))
}

// ToFile writes the export to path, creating or truncating it.
func ToFile(path string, invoices []journal.Invoice, direction journal.Direction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := Invoices(f, invoices, direction); err != nil {
		return err
	}
	return f.Close()
}
