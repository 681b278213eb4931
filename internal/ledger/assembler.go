// Package ledger turns raw captures into classified account records and
// collects them into a deduplicated run snapshot.
package ledger

import (
	"errors"
	"strings"

	"github.com/starascendin/lifeos-finance/internal/classify"
	"github.com/starascendin/lifeos-finance/internal/models"
	"github.com/starascendin/lifeos-finance/internal/parser"
)

// ErrEmptySection marks a capture whose detail view produced no text at all.
// This is the one per-account hard failure: everything downstream of a
// captured section degrades gracefully instead.
var ErrEmptySection = errors.New("capture has no raw section")

// Assembler is a pure transformation from one capture to one record. It
// holds no mutable state, so a single Assembler is safe to use across
// goroutines for independent captures.
type Assembler struct {
	table *classify.Table
}

// NewAssembler builds an Assembler around a classification table.
func NewAssembler(table *classify.Table) *Assembler {
	return &Assembler{table: table}
}

// Result carries the assembled record plus the raw rows and layout needed
// for the display-string CSV export, and the parse fallback counters.
type Result struct {
	Record models.AccountRecord
	Rows   []parser.RawRow
	Layout parser.Layout
	Stats  parser.Stats
}

// Assemble parses, normalizes, and classifies a single capture.
func (a *Assembler) Assemble(capture models.RawCapture) (Result, error) {
	if strings.TrimSpace(capture.RawSection) == "" {
		return Result{}, ErrEmptySection
	}

	// Collaborators may send the full page dump instead of a pre-bounded
	// section; carve the table out when the anchor is present.
	section := capture.RawSection
	if bounded, ok := parser.BoundSection(section); ok {
		section = bounded
	}

	var stats parser.Stats
	tokens := parser.Tokenize(section)
	layout := parser.DetectLayout(tokens)

	var rows []parser.RawRow
	if parser.HasTransactions(section) {
		rows = parser.ParseTable(tokens, layout, &stats)
	}
	txns := parser.Normalize(rows, layout, &stats)

	cls := a.table.Classify(capture.AccountIdentifier)
	record := models.AccountRecord{
		AccountIdentifier: capture.AccountIdentifier,
		Institution:       a.table.CleanInstitution(capture.Institution),
		DisplayName:       a.table.CleanDisplayName(capture.AccountTitle, capture.AccountIdentifier),
		AccountType:       cls.Type,
		AccountSubtype:    cls.Subtype,
		AssetClass:        cls.AssetClass,
		BalanceMinor:      parser.ParseAmount(capture.Balance, &stats),
		IsDebt:            cls.AssetClass == models.AssetClassLiability,
		RawInstitution:    capture.Institution,
		RawDisplayName:    capture.AccountTitle,
		Transactions:      txns,
	}

	return Result{Record: record, Rows: rows, Layout: layout, Stats: stats}, nil
}

// Collection accumulates records across extraction passes, deduplicating by
// account identifier. First seen wins; later passes for the same identifier
// are ignored rather than merged, since each pass is a full snapshot.
type Collection struct {
	records []models.AccountRecord
	seen    map[string]bool
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{seen: make(map[string]bool)}
}

// Add appends a record unless its identifier was already collected.
// Reports whether the record was kept.
func (c *Collection) Add(record models.AccountRecord) bool {
	if c.seen[record.AccountIdentifier] {
		return false
	}
	c.seen[record.AccountIdentifier] = true
	c.records = append(c.records, record)
	return true
}

// Records returns the collected records in insertion order. Never nil.
func (c *Collection) Records() []models.AccountRecord {
	if c.records == nil {
		return []models.AccountRecord{}
	}
	return c.records
}

// Totals summarizes a snapshot in minor units.
type Totals struct {
	AssetsMinor      int64 `json:"assetsMinorUnits"`
	LiabilitiesMinor int64 `json:"liabilitiesMinorUnits"`
	NetWorthMinor    int64 `json:"netWorthMinorUnits"`
	Accounts         int   `json:"accounts"`
	Transactions     int   `json:"transactions"`
}

// Totals computes snapshot-level sums across the collected records.
func (c *Collection) Totals() Totals {
	var t Totals
	for _, rec := range c.records {
		if rec.AssetClass == models.AssetClassLiability {
			t.LiabilitiesMinor += rec.BalanceMinor
		} else {
			t.AssetsMinor += rec.BalanceMinor
		}
		t.Transactions += len(rec.Transactions)
	}
	t.Accounts = len(c.records)
	t.NetWorthMinor = t.AssetsMinor - t.LiabilitiesMinor
	return t
}
