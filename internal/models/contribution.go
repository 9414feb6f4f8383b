package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side identifies one leg of a double-entry transaction.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Category is the reporting bucket a classified leg contributes to.
type Category string

const (
	// CategoryIncome and CategoryExpense feed the P&L sections and the
	// report balance.
	CategoryIncome  Category = "income"
	CategoryExpense Category = "expense"
	// CategoryPosition is the cash/bank running balance of 1xx accounts,
	// signed positively for debit legs and negatively for credit legs.
	CategoryPosition Category = "position"
	// CategorySettlement collects the receivables/payables accounts
	// (the "200" prefix) excluded from P&L entirely.
	CategorySettlement Category = "settlement"
)

// Contribution is the derived, non-persistent result of classifying one
// transaction leg: the synthetic account it rolls up to, the side it fell on
// and the category it feeds. A single transaction yields 0-2 contributions.
type Contribution struct {
	SyntheticAccount string          `json:"synthetic_account"`
	AccountName      string          `json:"account_name"`
	Side             Side            `json:"side"`
	Category         Category        `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
}

// Warning records a ledger row excluded from aggregation by the soft-fail
// policy, reported back alongside the result instead of aborting it.
type Warning struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Reason        string    `json:"reason"`
}
