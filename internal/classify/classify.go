// Package classify maps scraped account identifiers and display strings to
// canonical account metadata. The identifier-to-type table is configuration
// data: it ships with compiled defaults but can be replaced by a YAML file
// so new accounts never require a rebuild.
package classify

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starascendin/lifeos-finance/internal/models"
)

// Classification is the canonical account triple for one identifier.
type Classification struct {
	Type       string `yaml:"type" json:"type"`
	Subtype    string `yaml:"subtype" json:"subtype"`
	AssetClass string `yaml:"assetClass" json:"assetClass"`
}

// Table holds the identifier mapping plus the institution and title
// allow-lists used to clean raw display strings.
type Table struct {
	Accounts     map[string]Classification `yaml:"accounts"`
	Institutions []string                  `yaml:"institutions"`
	TitlePhrases []string                  `yaml:"titlePhrases"`
}

// Load reads a classification table from a YAML file. Allow-lists omitted
// from the file fall back to the compiled defaults so a minimal file only
// needs the accounts map.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading classification table: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing classification table: %w", err)
	}
	defaults := Default()
	if t.Accounts == nil {
		t.Accounts = map[string]Classification{}
	}
	if len(t.Institutions) == 0 {
		t.Institutions = defaults.Institutions
	}
	if len(t.TitlePhrases) == 0 {
		t.TitlePhrases = defaults.TitlePhrases
	}
	return &t, nil
}

// Save writes the table as YAML, e.g. to seed an editable config file.
func Save(path string, t *Table) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling classification table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing classification table: %w", err)
	}
	return nil
}

// Default returns the compiled-in table.
func Default() *Table {
	return &Table{
		Accounts: map[string]Classification{
			// Cash
			"4824": {Type: "cash", Subtype: "checking", AssetClass: models.AssetClassAsset},
			"560":  {Type: "cash", Subtype: "checking", AssetClass: models.AssetClassAsset},
			// Investments
			"0653": {Type: "investment", Subtype: "brokerage", AssetClass: models.AssetClassAsset},
			"4348": {Type: "investment", Subtype: "brokerage", AssetClass: models.AssetClassAsset},
			"880":  {Type: "investment", Subtype: "roth_ira", AssetClass: models.AssetClassAsset},
			"042":  {Type: "investment", Subtype: "individual", AssetClass: models.AssetClassAsset},
			"909":  {Type: "investment", Subtype: "rollover_ira", AssetClass: models.AssetClassAsset},
			"9957": {Type: "investment", Subtype: "other", AssetClass: models.AssetClassAsset},
			"3315": {Type: "investment", Subtype: "brokerage", AssetClass: models.AssetClassAsset},
			"0359": {Type: "investment", Subtype: "brokerage", AssetClass: models.AssetClassAsset},
			// Credit cards
			"2775": {Type: "credit_card", Subtype: "credit_card", AssetClass: models.AssetClassLiability},
			"4937": {Type: "credit_card", Subtype: "credit_card", AssetClass: models.AssetClassLiability},
			"7277": {Type: "credit_card", Subtype: "credit_card", AssetClass: models.AssetClassLiability},
			"4108": {Type: "credit_card", Subtype: "credit_card", AssetClass: models.AssetClassLiability},
			"2276": {Type: "credit_card", Subtype: "credit_card", AssetClass: models.AssetClassLiability},
		},
		Institutions: []string{
			"Chase",
			"Charles Schwab",
			"E*TRADE",
			"Fidelity Investments",
			"Barclaycard",
			"Wells Fargo",
			"Vanguard",
			"Venmo",
			"Wealthfront",
			"Citibank",
		},
		TitlePhrases: []string{
			"Total Checking",
			"Investor Checking",
			"Credit Card",
			"Roth Contributory Ira",
			"Rollover Ira",
			"Individual",
			"Self Directed",
			"Securities",
		},
	}
}

// Classify is total: every identifier yields a classification, unknown ones
// fall back to the default triple.
func (t *Table) Classify(identifier string) Classification {
	if c, ok := t.Accounts[identifier]; ok {
		return c
	}
	return Classification{Type: "other", Subtype: "other", AssetClass: models.AssetClassAsset}
}

var trailingDigits = regexp.MustCompile(`\d+$`)

// CleanInstitution extracts a known institution name from messy raw text via
// case-insensitive substring match, first match wins. Otherwise it keeps the
// first word with trailing digits stripped.
func (t *Table) CleanInstitution(raw string) string {
	lower := strings.ToLower(raw)
	for _, name := range t.Institutions {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}
	first := "Unknown"
	if fields := strings.Fields(raw); len(fields) > 0 {
		first = fields[0]
	}
	cleaned := strings.TrimSpace(trailingDigits.ReplaceAllString(first, ""))
	if cleaned == "" {
		return "Unknown"
	}
	return cleaned
}

var endingInPattern = regexp.MustCompile(`([\w\s/]+?)\s*-\s*Ending in\s*\d+`)

// CleanDisplayName extracts the account name preceding a
// "- Ending in <identifier>" suffix; otherwise it matches known title
// phrases; otherwise it falls back to "Account ...<identifier>".
func (t *Table) CleanDisplayName(rawTitle, identifier string) string {
	if m := endingInPattern.FindStringSubmatch(rawTitle); m != nil {
		return strings.TrimSpace(m[1])
	}
	lower := strings.ToLower(rawTitle)
	for _, phrase := range t.TitlePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return phrase
		}
	}
	return "Account ..." + identifier
}
