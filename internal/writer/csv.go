package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/starascendin/lifeos-finance/internal/parser"
)

// Column sets for the per-account transaction export. Values are written as
// the original display strings, not the normalized minor-unit integers, so
// the files remain a faithful record of what the page rendered.
var (
	investmentColumns = []string{"date", "action", "description", "category", "quantity", "price", "amount"}
	cashColumns       = []string{"date", "description", "category", "amount"}
)

// CSVWriter writes raw transaction rows to CSV, one file per account.
type CSVWriter struct{}

// WriteFile writes rows to a CSV file at the given path.
func (w *CSVWriter) WriteFile(path string, rows []parser.RawRow, layout parser.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating transaction CSV %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, rows, layout)
}

// Write writes rows in CSV format with the layout's column set.
func (w *CSVWriter) Write(out io.Writer, rows []parser.RawRow, layout parser.Layout) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	columns := cashColumns
	if layout == parser.LayoutInvestment {
		columns = investmentColumns
	}
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range rows {
		var record []string
		if layout == parser.LayoutInvestment {
			record = []string{row.Date, row.Action, row.Description, row.Category, row.Quantity, row.Price, row.Amount}
		} else {
			record = []string{row.Date, row.Description, row.Category, row.Amount}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

var (
	unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	edgeUnderscores = regexp.MustCompile(`^_+|_+$`)
)

// AccountFileName builds a filesystem-safe per-account CSV name like
// "Charles_Schwab_0653.csv" from the raw institution string.
func AccountFileName(institution, identifier string) string {
	safe := unsafeFileChars.ReplaceAllString(institution, "_")
	safe = edgeUnderscores.ReplaceAllString(safe, "")
	if safe == "" {
		safe = "account"
	}
	return fmt.Sprintf("%s_%s.csv", safe, identifier)
}
