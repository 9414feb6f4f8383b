package models

// CatalogEntry maps one account prefix to its display name in a report
// section. The catalogue order is the report order.
type CatalogEntry struct {
	Prefix string `json:"prefix"`
	Name   string `json:"name"`
}

// PositionCategory is one named cash/bank row of the financial position
// section, mapped to one or more 1xx account prefixes.
type PositionCategory struct {
	Name     string   `json:"name"`
	Prefixes []string `json:"prefixes"`
}

// SettlementCategory is one row of the receivables/payables matrix. The
// receivable and payable columns are tracked independently, each fed by its
// own account prefixes.
type SettlementCategory struct {
	Name               string   `json:"name"`
	ReceivablePrefixes []string `json:"receivable_prefixes"`
	PayablePrefixes    []string `json:"payable_prefixes"`
}

// ReportCatalog is the versioned configuration driving report assembly: the
// fixed, ordered account catalogues and category definitions. It is data
// passed into the assembler, not code, so chart-of-accounts changes do not
// require recompiling the engine.
type ReportCatalog struct {
	Version          string               `json:"version"`
	Income           []CatalogEntry       `json:"income"`
	Expense          []CatalogEntry       `json:"expense"`
	Position         []PositionCategory   `json:"position"`
	IntentionsName   string               `json:"intentions_name"`
	IntentionsPrefix string               `json:"intentions_prefix"`
	Settlements      []SettlementCategory `json:"settlements"`
}

// SeedAccounts flattens the catalogue into chart-of-accounts entries, one
// account per catalogued prefix. Kind is left empty and inferred on insert.
func (c *ReportCatalog) SeedAccounts() []Account {
	var accounts []Account
	add := func(number, name string) {
		accounts = append(accounts, Account{Number: number, Name: name})
	}

	for _, entry := range c.Income {
		add(entry.Prefix, entry.Name)
	}
	for _, entry := range c.Expense {
		add(entry.Prefix, entry.Name)
	}
	for _, category := range c.Position {
		for _, prefix := range category.Prefixes {
			add(prefix, category.Name)
		}
	}
	add(c.IntentionsPrefix, c.IntentionsName)
	for _, category := range c.Settlements {
		for _, prefix := range category.ReceivablePrefixes {
			add(prefix, category.Name)
		}
		for _, prefix := range category.PayablePrefixes {
			add(prefix, category.Name)
		}
	}

	return accounts
}

// DefaultCatalog returns the congregation's current chart-of-accounts
// catalogue.
func DefaultCatalog() *ReportCatalog {
	return &ReportCatalog{
		Version: "2024.1",
		Income: []CatalogEntry{
			{Prefix: "701", Name: "Taca"},
			{Prefix: "702", Name: "Ofiary"},
			{Prefix: "703", Name: "Darowizny celowe"},
			{Prefix: "704", Name: "Czynsze i dzierżawy"},
			{Prefix: "705", Name: "Odsetki bankowe"},
			{Prefix: "706", Name: "Sprzedaż wydawnictw"},
			{Prefix: "707", Name: "Kolęda"},
			{Prefix: "709", Name: "Inne przychody"},
		},
		Expense: []CatalogEntry{
			{Prefix: "401", Name: "Utrzymanie kościoła"},
			{Prefix: "402", Name: "Media"},
			{Prefix: "403", Name: "Remonty i konserwacja"},
			{Prefix: "404", Name: "Wynagrodzenia"},
			{Prefix: "405", Name: "Ubezpieczenia"},
			{Prefix: "406", Name: "Materiały duszpasterskie"},
			{Prefix: "407", Name: "Transport"},
			{Prefix: "409", Name: "Inne wydatki"},
		},
		Position: []PositionCategory{
			{Name: "Kasa domu", Prefixes: []string{"100"}},
			{Name: "Kasa dzieł", Prefixes: []string{"101"}},
			{Name: "Rachunek bieżący", Prefixes: []string{"110"}},
			{Name: "Lokaty", Prefixes: []string{"120"}},
			{Name: "Gotówka w drodze", Prefixes: []string{"130"}},
		},
		IntentionsName:   "Intencje mszalne",
		IntentionsPrefix: "201",
		Settlements: []SettlementCategory{
			{
				Name:               "Sumy przechodnie",
				ReceivablePrefixes: []string{"200-1"},
				PayablePrefixes:    []string{"200-2"},
			},
			{
				Name:               "Pożyczki",
				ReceivablePrefixes: []string{"203"},
				PayablePrefixes:    []string{"204"},
			},
			{
				Name:               "Rozliczenia z kurią",
				ReceivablePrefixes: []string{"205"},
				PayablePrefixes:    []string{"206"},
			},
			{
				Name:               "Rozliczenia z innymi",
				ReceivablePrefixes: []string{"207"},
				PayablePrefixes:    []string{"208"},
			},
		},
	}
}
