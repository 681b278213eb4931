package parser

import "regexp"

// The rendered table carries no column delimiters, so parsing synchronizes
// on the only two reliable anchors: per-row date tokens and the literal
// "Total" footer. The header block between the "Date" sentinel and the first
// date token tells us how many lines a row nominally spans.
const (
	headerSentinel = "Date"
	endSentinel    = "Total"

	// minRowSpan floors the cursor advance so a pathologically short header
	// block cannot stall the scan inside a row.
	minRowSpan = 4
	// amountWindow bounds the lookahead for the trailing amount field, which
	// may be followed by an optional running-balance column.
	amountWindow = 3
)

var rowDatePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

// RawRow is one carved-out transaction row, fields still in display form.
// Quantity and Price are populated only for investment layouts.
type RawRow struct {
	Date        string
	Action      string
	Description string
	Category    string
	Quantity    string
	Price       string
	Amount      string
}

// ParseTable walks the token sequence and carves out transaction rows until
// the end sentinel or the end of input. A missing header sentinel is a
// legitimate empty table, not an error. Tokens that match neither a date nor
// the sentinel are skipped one at a time (and counted as noise) so stray UI
// text cannot derail the scan.
func ParseTable(tokens []string, layout Layout, stats *Stats) []RawRow {
	headerIdx := -1
	for i, tok := range tokens {
		if tok == headerSentinel {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	// Header tokens run from the sentinel to the first date token.
	colCount := 0
	for i := headerIdx; i < len(tokens); i++ {
		if rowDatePattern.MatchString(tokens[i]) {
			break
		}
		colCount++
	}

	// Skip interactive affordances rendered between the header block and the
	// first row (e.g. an inline "add transaction" control).
	i := headerIdx + colCount
	for i < len(tokens) && !rowDatePattern.MatchString(tokens[i]) {
		i++
	}

	var rows []RawRow
	for i < len(tokens) {
		switch {
		case rowDatePattern.MatchString(tokens[i]):
			row := RawRow{Date: tokens[i]}
			if layout == LayoutInvestment {
				row.Action = tokenAt(tokens, i+1)
				row.Description = tokenAt(tokens, i+2)
				row.Category = tokenAt(tokens, i+3)
				row.Quantity = tokenAt(tokens, i+4)
				row.Price = tokenAt(tokens, i+5)
				row.Amount = lookaheadAmount(tokens, i+6)
			} else {
				row.Description = tokenAt(tokens, i+1)
				row.Category = tokenAt(tokens, i+2)
				row.Amount = lookaheadAmount(tokens, i+3)
			}
			rows = append(rows, row)
			i += max(colCount, minRowSpan)
		case tokens[i] == endSentinel:
			return rows
		default:
			if stats != nil {
				stats.NoiseSkips++
			}
			i++
		}
	}
	return rows
}

func tokenAt(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}

// lookaheadAmount collects up to amountWindow tokens starting at from,
// stopping early at the next date token or the end sentinel. The last token
// collected is the amount; anything before it belongs to optional trailing
// columns we do not keep.
func lookaheadAmount(tokens []string, from int) string {
	last := ""
	for j := from; j < from+amountWindow && j < len(tokens); j++ {
		if rowDatePattern.MatchString(tokens[j]) || tokens[j] == endSentinel {
			break
		}
		last = tokens[j]
	}
	return last
}
