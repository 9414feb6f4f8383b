package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBucket accumulates the debit and credit totals of one synthetic
// account over a period.
type AccountBucket struct {
	Name   string          `json:"name"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// PeriodAggregate holds the classified totals of one location over one closed
// date interval. It is built fresh per query, never persisted, and merging is
// commutative and associative: partitioning the same transaction set into any
// sub-ranges and merging the partial aggregates equals a single pass.
type PeriodAggregate struct {
	PeriodStart time.Time                   `json:"period_start"`
	PeriodEnd   time.Time                   `json:"period_end"`
	LocationID  string                      `json:"location_id"`
	Accounts    map[string]*AccountBucket   `json:"accounts"`
	PerCategory map[Category]decimal.Decimal `json:"per_category"`
	Warnings    []Warning                   `json:"warnings,omitempty"`
}

// NewPeriodAggregate returns an empty aggregate for the given scope.
func NewPeriodAggregate(locationID string, start, end time.Time) *PeriodAggregate {
	return &PeriodAggregate{
		PeriodStart: start,
		PeriodEnd:   end,
		LocationID:  locationID,
		Accounts:    make(map[string]*AccountBucket),
		PerCategory: make(map[Category]decimal.Decimal),
	}
}

// Add folds one contribution into the aggregate. Contributions with the same
// (synthetic account, side) key simply add; there is no deduplication.
func (a *PeriodAggregate) Add(c Contribution) {
	bucket, ok := a.Accounts[c.SyntheticAccount]
	if !ok {
		bucket = &AccountBucket{Name: c.AccountName}
		a.Accounts[c.SyntheticAccount] = bucket
	}
	if bucket.Name == "" {
		bucket.Name = c.AccountName
	}

	switch c.Side {
	case SideDebit:
		bucket.Debit = bucket.Debit.Add(c.Amount)
	case SideCredit:
		bucket.Credit = bucket.Credit.Add(c.Amount)
	}

	// The position category is a signed running balance, not a magnitude.
	if c.Category == CategoryPosition && c.Side == SideCredit {
		a.PerCategory[c.Category] = a.PerCategory[c.Category].Sub(c.Amount)
		return
	}
	a.PerCategory[c.Category] = a.PerCategory[c.Category].Add(c.Amount)
}

// Merge folds another aggregate into this one bucket-wise and extends the
// covered period. Both operands must belong to the same location.
func (a *PeriodAggregate) Merge(other *PeriodAggregate) {
	if other == nil {
		return
	}
	for number, bucket := range other.Accounts {
		target, ok := a.Accounts[number]
		if !ok {
			target = &AccountBucket{Name: bucket.Name}
			a.Accounts[number] = target
		}
		if target.Name == "" {
			target.Name = bucket.Name
		}
		target.Debit = target.Debit.Add(bucket.Debit)
		target.Credit = target.Credit.Add(bucket.Credit)
	}
	for category, total := range other.PerCategory {
		a.PerCategory[category] = a.PerCategory[category].Add(total)
	}
	a.Warnings = append(a.Warnings, other.Warnings...)

	if other.PeriodStart.Before(a.PeriodStart) {
		a.PeriodStart = other.PeriodStart
	}
	if other.PeriodEnd.After(a.PeriodEnd) {
		a.PeriodEnd = other.PeriodEnd
	}
}

// TotalIncome is the income category total of the period.
func (a *PeriodAggregate) TotalIncome() decimal.Decimal {
	return a.PerCategory[CategoryIncome]
}

// TotalExpense is the expense category total of the period.
func (a *PeriodAggregate) TotalExpense() decimal.Decimal {
	return a.PerCategory[CategoryExpense]
}

// PrefixTotal sums one side of every bucket whose synthetic number equals the
// prefix or is a hyphen-child of it.
func (a *PeriodAggregate) PrefixTotal(prefix string, side Side) decimal.Decimal {
	total := decimal.Zero
	for number, bucket := range a.Accounts {
		if !MatchesCatalogPrefix(number, prefix) {
			continue
		}
		if side == SideDebit {
			total = total.Add(bucket.Debit)
		} else {
			total = total.Add(bucket.Credit)
		}
	}
	return total
}

// PrefixesTotal sums PrefixTotal over a set of prefixes.
func (a *PeriodAggregate) PrefixesTotal(prefixes []string, side Side) decimal.Decimal {
	total := decimal.Zero
	for _, prefix := range prefixes {
		total = total.Add(a.PrefixTotal(prefix, side))
	}
	return total
}
