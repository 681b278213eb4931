package parser

// Layout is the row-shape variant governing how many and which fields
// follow a date anchor in a parsed row.
type Layout string

const (
	LayoutCash       Layout = "cash"
	LayoutInvestment Layout = "investment"
)

// Investment tables carry these extra column headers; cash/credit tables
// never do.
const (
	actionHeader   = "Action"
	quantityHeader = "Quantity"
)

// DetectLayout decides the layout for an entire token sequence. The decision
// is global per section: mixed row shapes within one table are not supported
// by the source and are not supported here.
func DetectLayout(tokens []string) Layout {
	hasAction, hasQuantity := false, false
	for _, tok := range tokens {
		switch tok {
		case actionHeader:
			hasAction = true
		case quantityHeader:
			hasQuantity = true
		}
		if hasAction && hasQuantity {
			return LayoutInvestment
		}
	}
	return LayoutCash
}
