package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starascendin/lifeos-finance/internal/ledger"
	"github.com/starascendin/lifeos-finance/internal/models"
	"github.com/starascendin/lifeos-finance/internal/networth"
	"github.com/starascendin/lifeos-finance/internal/parser"
)

func TestWriteSnapshot(t *testing.T) {
	c := ledger.NewCollection()
	c.Add(models.AccountRecord{
		AccountIdentifier: "4824",
		Institution:       "Chase",
		AssetClass:        models.AssetClassAsset,
		BalanceMinor:      4451120,
		Transactions:      []models.Transaction{{Description: "Coffee Shop", AmountMinor: -450}},
	})

	store := NewStore(t.TempDir())
	snap := BuildSnapshot(c, parser.Stats{AmountFallbacks: 1}, time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC))

	path, err := store.WriteSnapshot(snap)
	if err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	for _, key := range []string{"extractedAt", "totals", "stats", "accounts"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("snapshot missing %q key", key)
		}
	}
	if !strings.Contains(string(data), `"balanceMinorUnits": 4451120`) {
		t.Error("snapshot missing account balance in minor units")
	}
	if !strings.Contains(string(data), `"2026-02-14T12:00:00Z"`) {
		t.Error("snapshot missing RFC3339 extractedAt")
	}
}

func TestWriteSummary(t *testing.T) {
	store := NewStore(t.TempDir())
	records := []models.AccountRecord{
		{AccountIdentifier: "4824", Institution: "Chase", DisplayName: "Total Checking", AccountType: "cash", AssetClass: "asset", BalanceMinor: 100},
		{AccountIdentifier: "2775", Institution: "Barclaycard", DisplayName: "Credit Card", AccountType: "credit_card", AssetClass: "liability", BalanceMinor: 40000},
	}

	path, err := store.WriteSummary(records)
	if err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "2775") || !strings.Contains(lines[2], "liability") {
		t.Errorf("unexpected summary line: %q", lines[2])
	}
}

func TestWriteHistory(t *testing.T) {
	store := NewStore(t.TempDir())
	points := []networth.HistoryPoint{
		{Date: "2026-01-01", NetWorthMinor: 10050},
		{Date: "2026-01-02", NetWorthMinor: 10100},
	}

	path, err := store.WriteHistory(points)
	if err != nil {
		t.Fatalf("WriteHistory failed: %v", err)
	}
	if filepath.Base(path) != "net_worth_history.json" {
		t.Errorf("unexpected history file name %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading history: %v", err)
	}
	var decoded []networth.HistoryPoint
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("history is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].NetWorthMinor != 10050 {
		t.Errorf("unexpected decoded history: %+v", decoded)
	}
}

func TestWriteAccountCSVCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	store := NewStore(dir)

	record := models.AccountRecord{AccountIdentifier: "4824", RawInstitution: "Chase4824 • 2h ago"}
	rows := []parser.RawRow{{Date: "2/14/2026", Description: "Coffee Shop", Category: "Dining", Amount: "-$4.50"}}

	path, err := store.WriteAccountCSV(record, rows, parser.LayoutCash)
	if err != nil {
		t.Fatalf("WriteAccountCSV failed: %v", err)
	}
	if filepath.Base(path) != "Chase4824_2h_ago_4824.csv" {
		t.Errorf("unexpected file name %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file on disk: %v", err)
	}
}
