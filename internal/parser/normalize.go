package parser

import "github.com/starascendin/lifeos-finance/internal/models"

// defaultCategory labels rows whose category cell rendered empty.
const defaultCategory = "Uncategorized"

// Normalize maps raw rows into typed transactions, routing every money and
// date field through the recovering parsers so fallbacks are counted in one
// place. Optional investment fields are set only when their tokens parse.
func Normalize(rows []RawRow, layout Layout, stats *Stats) []models.Transaction {
	txns := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		iso, ms := ParseDate(row.Date, stats)
		txn := models.Transaction{
			Date:            iso,
			DateEpochMillis: ms,
			Description:     row.Description,
			Category:        row.Category,
			AmountMinor:     ParseAmount(row.Amount, stats),
		}
		if txn.Category == "" {
			txn.Category = defaultCategory
		}
		if layout == LayoutInvestment {
			txn.Action = row.Action
			if q, ok := ParseQuantity(row.Quantity); ok {
				txn.Quantity = &q
			}
			if p, err := ParseMoney(row.Price); err == nil {
				txn.PriceMinor = &p
			}
		}
		txns = append(txns, txn)
	}
	return txns
}
