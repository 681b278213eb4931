package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starascendin/lifeos-finance/internal/classify"
	"github.com/starascendin/lifeos-finance/internal/models"
	"github.com/starascendin/lifeos-finance/internal/parser"
)

const cashSection = `Search transactions
Date
Description
Category
2/14/2026
Coffee Shop
Dining
-$4.50
Total`

const investmentSection = `Search transactions
Date
Action
Description
Category
Quantity
Price
Amount
3/2/2026
Buy
AAPL
Equity
10
$150.00
$1500.00
Total`

func TestAssembleCashAccount(t *testing.T) {
	a := NewAssembler(classify.Default())

	res, err := a.Assemble(models.RawCapture{
		AccountIdentifier: "4824",
		Institution:       "Chase4824 • 2h ago",
		AccountTitle:      "Total Checking - Ending in 4824",
		Balance:           "$44,511.20",
		RawSection:        cashSection,
	})
	require.NoError(t, err)

	rec := res.Record
	assert.Equal(t, "Chase", rec.Institution)
	assert.Equal(t, "Total Checking", rec.DisplayName)
	assert.Equal(t, "cash", rec.AccountType)
	assert.Equal(t, models.AssetClassAsset, rec.AssetClass)
	assert.False(t, rec.IsDebt)
	assert.Equal(t, int64(4451120), rec.BalanceMinor)
	assert.Equal(t, "Chase4824 • 2h ago", rec.RawInstitution)

	require.Len(t, rec.Transactions, 1)
	txn := rec.Transactions[0]
	assert.Equal(t, "2026-02-14", txn.Date)
	assert.Equal(t, "Coffee Shop", txn.Description)
	assert.Equal(t, "Dining", txn.Category)
	assert.Equal(t, int64(-450), txn.AmountMinor)

	assert.Equal(t, parser.LayoutCash, res.Layout)
	assert.Zero(t, res.Stats.AmountFallbacks)
}

func TestAssembleInvestmentAccount(t *testing.T) {
	a := NewAssembler(classify.Default())

	res, err := a.Assemble(models.RawCapture{
		AccountIdentifier: "0653",
		Institution:       "Charles Schwab brokerage",
		AccountTitle:      "Individual - Ending in 0653",
		Balance:           "$120,000.00",
		RawSection:        investmentSection,
	})
	require.NoError(t, err)

	assert.Equal(t, parser.LayoutInvestment, res.Layout)
	require.Len(t, res.Record.Transactions, 1)

	txn := res.Record.Transactions[0]
	assert.Equal(t, "Buy", txn.Action)
	require.NotNil(t, txn.Quantity)
	assert.Equal(t, 10.0, *txn.Quantity)
	require.NotNil(t, txn.PriceMinor)
	assert.Equal(t, int64(15000), *txn.PriceMinor)
	assert.Equal(t, int64(150000), txn.AmountMinor)
}

func TestAssembleLiabilityDerivesIsDebt(t *testing.T) {
	a := NewAssembler(classify.Default())

	res, err := a.Assemble(models.RawCapture{
		AccountIdentifier: "2775",
		Institution:       "Barclaycard US",
		AccountTitle:      "Credit Card - Ending in 2775",
		Balance:           "$1,234.00",
		RawSection:        cashSection,
	})
	require.NoError(t, err)

	assert.Equal(t, models.AssetClassLiability, res.Record.AssetClass)
	assert.True(t, res.Record.IsDebt)
}

func TestAssembleUnknownAccountDefaults(t *testing.T) {
	a := NewAssembler(classify.Default())

	res, err := a.Assemble(models.RawCapture{
		AccountIdentifier: "9999",
		Institution:       "Mystery Bank",
		AccountTitle:      "whatever",
		Balance:           "$10.00",
		RawSection:        cashSection,
	})
	require.NoError(t, err)

	rec := res.Record
	assert.Equal(t, "other", rec.AccountType)
	assert.Equal(t, "other", rec.AccountSubtype)
	assert.Equal(t, models.AssetClassAsset, rec.AssetClass)
	assert.False(t, rec.IsDebt)
	assert.Equal(t, "Account ...9999", rec.DisplayName)
}

func TestAssembleEmptySectionFails(t *testing.T) {
	a := NewAssembler(classify.Default())

	_, err := a.Assemble(models.RawCapture{AccountIdentifier: "560", RawSection: "  \n "})
	assert.ErrorIs(t, err, ErrEmptySection)
}

func TestAssembleNoTransactionsPlaceholder(t *testing.T) {
	a := NewAssembler(classify.Default())

	res, err := a.Assemble(models.RawCapture{
		AccountIdentifier: "560",
		Institution:       "Chase",
		Balance:           "$5.00",
		RawSection:        "Search transactions\nNo transactions found\n",
	})
	require.NoError(t, err)
	assert.NotNil(t, res.Record.Transactions)
	assert.Empty(t, res.Record.Transactions)
}

func TestAssembleBoundsFullPageDump(t *testing.T) {
	a := NewAssembler(classify.Default())

	page := "Home\nNet Worth\nAccounts\n" + cashSection + "\nLegal disclosures\nfine print"
	res, err := a.Assemble(models.RawCapture{
		AccountIdentifier: "4824",
		Institution:       "Chase",
		Balance:           "$1.00",
		RawSection:        page,
	})
	require.NoError(t, err)
	require.Len(t, res.Record.Transactions, 1)
	assert.Equal(t, "Coffee Shop", res.Record.Transactions[0].Description)
}

func TestCollectionDedup(t *testing.T) {
	c := NewCollection()

	first := models.AccountRecord{AccountIdentifier: "4824", BalanceMinor: 100}
	second := models.AccountRecord{AccountIdentifier: "4824", BalanceMinor: 999}

	assert.True(t, c.Add(first))
	assert.False(t, c.Add(second))

	records := c.Records()
	require.Len(t, records, 1)
	assert.Equal(t, int64(100), records[0].BalanceMinor, "first seen wins")
}

func TestCollectionTotals(t *testing.T) {
	c := NewCollection()
	c.Add(models.AccountRecord{
		AccountIdentifier: "4824",
		AssetClass:        models.AssetClassAsset,
		BalanceMinor:      100000,
		Transactions:      []models.Transaction{{}, {}},
	})
	c.Add(models.AccountRecord{
		AccountIdentifier: "2775",
		AssetClass:        models.AssetClassLiability,
		BalanceMinor:      40000,
		Transactions:      []models.Transaction{{}},
	})

	totals := c.Totals()
	assert.Equal(t, int64(100000), totals.AssetsMinor)
	assert.Equal(t, int64(40000), totals.LiabilitiesMinor)
	assert.Equal(t, int64(60000), totals.NetWorthMinor)
	assert.Equal(t, 2, totals.Accounts)
	assert.Equal(t, 3, totals.Transactions)
}

func TestCollectionEmptyRecordsNotNil(t *testing.T) {
	assert.NotNil(t, NewCollection().Records())
}
