package services

import (
	"time"

	"parish-ledger/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

type ledgerGenerator struct {
	faker *gofakeit.Faker
}

// NewLedgerGenerator creates a generator of plausible parish ledger months.
// A fixed seed makes the output reproducible in tests; seed 0 randomizes.
func NewLedgerGenerator(seed uint64) LedgerGeneratorInterface {
	return &ledgerGenerator{
		faker: gofakeit.New(seed),
	}
}

var sampleDescriptions = map[string][]string{
	"income": {
		"Taca niedzielna",
		"Ofiary indywidualne",
		"Darowizna celowa na remont",
		"Czynsz za wynajem sali",
		"Sprzedaż prasy katolickiej",
	},
	"expense": {
		"Energia elektryczna",
		"Gaz i ogrzewanie",
		"Zakup świec i hostii",
		"Naprawa dachu",
		"Wynagrodzenie organisty",
		"Ubezpieczenie budynku",
	},
	"intention": {
		"Intencja mszalna przyjęta",
		"Intencja odprawiona",
	},
}

// GenerateMonth produces count transactions within one calendar month for a
// location, drawing accounts from the provided chart. Roughly 40% income
// rows (credit 7xx against cash), 45% expense rows (debit 4xx against cash)
// and 15% intention rows, mirroring a typical parish month.
func (g *ledgerGenerator) GenerateMonth(accounts []models.Account, locationID string, year, month, count int) []models.Transaction {
	incomeAccounts := filterByKind(accounts, models.AccountKindIncome)
	expenseAccounts := filterByKind(accounts, models.AccountKindExpense)
	cashAccounts := filterByKind(accounts, models.AccountKindAsset)
	intentionAccounts := filterByPrefix(accounts, "201")

	if len(cashAccounts) == 0 {
		return nil
	}

	transactions := make([]models.Transaction, 0, count)
	daysInMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()

	for i := 0; i < count; i++ {
		date := time.Date(year, time.Month(month), g.faker.IntRange(1, daysInMonth), 0, 0, 0, 0, time.UTC)
		amount := decimal.NewFromFloat(g.faker.Price(20, 4000)).Round(2)
		cash := g.pick(cashAccounts)

		var txn models.Transaction
		roll := g.faker.IntRange(1, 100)
		switch {
		case roll <= 40 && len(incomeAccounts) > 0:
			txn = models.Transaction{
				Date:            date,
				DebitAccountID:  cash.ID,
				CreditAccountID: g.pick(incomeAccounts).ID,
				Amount:          amount,
				Description:     g.pickDescription("income"),
				LocationID:      locationID,
			}
		case roll <= 85 && len(expenseAccounts) > 0:
			txn = models.Transaction{
				Date:            date,
				DebitAccountID:  g.pick(expenseAccounts).ID,
				CreditAccountID: cash.ID,
				Amount:          amount,
				Description:     g.pickDescription("expense"),
				LocationID:      locationID,
			}
		case len(intentionAccounts) > 0:
			txn = models.Transaction{
				Date:            date,
				DebitAccountID:  cash.ID,
				CreditAccountID: g.pick(intentionAccounts).ID,
				Amount:          amount,
				Description:     g.pickDescription("intention"),
				LocationID:      locationID,
			}
		default:
			continue
		}

		txn.Currency = "PLN"
		transactions = append(transactions, txn)
	}

	return transactions
}

func (g *ledgerGenerator) pick(accounts []models.Account) models.Account {
	return accounts[g.faker.IntRange(0, len(accounts)-1)]
}

func (g *ledgerGenerator) pickDescription(kind string) string {
	descriptions := sampleDescriptions[kind]
	return descriptions[g.faker.IntRange(0, len(descriptions)-1)]
}

func filterByKind(accounts []models.Account, kind string) []models.Account {
	var filtered []models.Account
	for i := range accounts {
		if accounts[i].Kind == kind {
			filtered = append(filtered, accounts[i])
		}
	}
	return filtered
}

func filterByPrefix(accounts []models.Account, prefix string) []models.Account {
	var filtered []models.Account
	for i := range accounts {
		if models.MatchesPrefix(accounts[i].Number, []string{prefix}) {
			filtered = append(filtered, accounts[i])
		}
	}
	return filtered
}
