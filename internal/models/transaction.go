package models

// Transaction is a single normalized ledger entry. Amounts are integer minor
// units (cents), sign-preserving: debits are negative. The optional fields are
// populated only for investment-layout rows, and only when the raw token
// parsed — a nil Quantity means "unknown", not zero.
type Transaction struct {
	Date            string   `json:"date"`
	DateEpochMillis int64    `json:"dateEpochMillis"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	AmountMinor     int64    `json:"amountMinorUnits"`
	Action          string   `json:"action,omitempty"`
	Quantity        *float64 `json:"quantity,omitempty"`
	PriceMinor      *int64   `json:"priceMinorUnits,omitempty"`
}

// Asset class values for AccountRecord.AssetClass.
const (
	AssetClassAsset     = "asset"
	AssetClassLiability = "liability"
)

// AccountRecord is the exported snapshot of one account for a single run.
// Immutable once assembled; reconciliation across runs belongs to the caller.
// IsDebt is derived from AssetClass, never set independently.
type AccountRecord struct {
	AccountIdentifier string        `json:"accountIdentifier"`
	Institution       string        `json:"institution"`
	DisplayName       string        `json:"displayName"`
	AccountType       string        `json:"accountType"`
	AccountSubtype    string        `json:"accountSubtype"`
	AssetClass        string        `json:"assetClass"`
	BalanceMinor      int64         `json:"balanceMinorUnits"`
	IsDebt            bool          `json:"isDebt"`
	RawInstitution    string        `json:"rawInstitution"`
	RawDisplayName    string        `json:"rawDisplayName"`
	Transactions      []Transaction `json:"transactions"`
}

// RawCapture is the input contract from the browser-driving collaborator:
// one account's bounded text dump plus the sidecar strings read off the
// overview page. All fields are raw display strings; the identifier is the
// short 3-4 digit suffix the source uses to distinguish accounts.
type RawCapture struct {
	AccountIdentifier string `json:"accountIdentifier"`
	Institution       string `json:"institution"`
	AccountTitle      string `json:"accountTitle"`
	Balance           string `json:"balance"`
	RawSection        string `json:"rawSection"`
}
