// Package writer persists a run's artifacts: one CSV of original display
// strings per account, a combined JSON snapshot, a one-line-per-account
// summary CSV, and the net-worth history series.
package writer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/starascendin/lifeos-finance/internal/ledger"
	"github.com/starascendin/lifeos-finance/internal/models"
	"github.com/starascendin/lifeos-finance/internal/networth"
	"github.com/starascendin/lifeos-finance/internal/parser"
)

const (
	snapshotFile = "all_accounts.json"
	summaryFile  = "summary.csv"
	historyFile  = "net_worth_history.json"
)

// Store writes artifacts under a single output directory, creating it on
// first use.
type Store struct {
	dir string
	csv CSVWriter
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %q: %w", s.dir, err)
	}
	return nil
}

// WriteAccountCSV writes one account's raw rows as CSV named after its
// institution and identifier. Returns the path written.
func (s *Store) WriteAccountCSV(record models.AccountRecord, rows []parser.RawRow, layout parser.Layout) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, AccountFileName(record.RawInstitution, record.AccountIdentifier))
	if err := s.csv.WriteFile(path, rows, layout); err != nil {
		return "", err
	}
	return path, nil
}

// Snapshot is the combined JSON artifact for one run.
type Snapshot struct {
	ExtractedAt string                 `json:"extractedAt"`
	Totals      ledger.Totals          `json:"totals"`
	Stats       parser.Stats           `json:"stats"`
	Accounts    []models.AccountRecord `json:"accounts"`
}

// BuildSnapshot assembles the snapshot artifact from a finished collection.
func BuildSnapshot(c *ledger.Collection, stats parser.Stats, now time.Time) Snapshot {
	return Snapshot{
		ExtractedAt: now.UTC().Format(time.RFC3339),
		Totals:      c.Totals(),
		Stats:       stats,
		Accounts:    c.Records(),
	}
}

// WriteSnapshot writes the combined JSON snapshot. Returns the path written.
func (s *Store) WriteSnapshot(snap Snapshot) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, snapshotFile)
	if err := writeJSON(path, snap); err != nil {
		return "", err
	}
	return path, nil
}

// WriteSummary writes a one-line-per-account CSV overview. Returns the path
// written.
func (s *Store) WriteSummary(records []models.AccountRecord) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, summaryFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating summary CSV: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"identifier", "institution", "name", "type", "assetClass", "balanceMinorUnits", "transactions"}); err != nil {
		return "", fmt.Errorf("writing summary header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.AccountIdentifier,
			rec.Institution,
			rec.DisplayName,
			rec.AccountType,
			rec.AssetClass,
			strconv.FormatInt(rec.BalanceMinor, 10),
			strconv.Itoa(len(rec.Transactions)),
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("writing summary row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return path, nil
}

// WriteHistory writes the net-worth history series. Returns the path written.
func (s *Store) WriteHistory(points []networth.HistoryPoint) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, historyFile)
	if err := writeJSON(path, points); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %q: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}
