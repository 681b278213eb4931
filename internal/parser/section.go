package parser

import "strings"

// Markers used to bound one account's transaction table inside a full page
// text dump. The search-box label is the only stable anchor preceding the
// table; the "Total" footer line or the legal-disclosure block ends it.
const (
	sectionStartMarker = "Search transactions"
	sectionEndMarker   = "\nTotal\n"
	legalMarker        = "Legal disclosures"
	emptyTableMarker   = "No transactions found"

	// sectionEndPad keeps the Total line itself inside the section so the
	// table parser can use it as the end sentinel.
	sectionEndPad = 50
	// sectionMaxLen caps the section when neither end marker is present.
	sectionMaxLen = 8000
)

// BoundSection carves the transaction-table substring out of a page text
// dump. Returns false when the search-box label is absent, which means no
// detail view was rendered at all.
func BoundSection(pageText string) (string, bool) {
	start := strings.Index(pageText, sectionStartMarker)
	if start < 0 {
		return "", false
	}

	end := start + sectionMaxLen
	if totalIdx := strings.Index(pageText[start:], sectionEndMarker); totalIdx >= 0 {
		end = start + totalIdx + sectionEndPad
	} else if legalIdx := strings.Index(pageText, legalMarker); legalIdx >= start {
		end = legalIdx
	}
	if end > len(pageText) {
		end = len(pageText)
	}

	return pageText[start:end], true
}

// HasTransactions reports whether a bounded section contains any rows.
// The source renders a literal placeholder for empty tables.
func HasTransactions(section string) bool {
	return !strings.Contains(section, emptyTableMarker)
}
