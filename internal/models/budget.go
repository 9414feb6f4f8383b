package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BudgetStatusDraft     = "draft"
	BudgetStatusSubmitted = "submitted"
	BudgetStatusApproved  = "approved"

	BudgetItemKindIncome  = "income"
	BudgetItemKindExpense = "expense"

	ForecastMethodLastYear  = "last_year"
	ForecastMethodAvg3Years = "avg_3_years"
)

var (
	ErrInvalidForecastMethod = errors.New("invalid forecast method")
	ErrInvalidBudgetStatus   = errors.New("invalid budget status transition")
	ErrBudgetNotDraft        = errors.New("budget plan is mutable only while in draft")
)

// BudgetPlan is the annual budget of one location. At most one plan exists
// per (location, year); items are mutable only while the plan is in draft and
// only approved plans feed realization comparisons.
type BudgetPlan struct {
	ID         uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	LocationID string       `gorm:"type:varchar(32);not null;uniqueIndex:idx_budget_plans_location_year" json:"location_id"`
	Year       int          `gorm:"not null;uniqueIndex:idx_budget_plans_location_year" json:"year"`
	Status     string       `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	Items      []BudgetItem `gorm:"foreignKey:PlanID" json:"items,omitempty"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updated_at"`
}

func (p *BudgetPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = BudgetStatusDraft
	}
	return nil
}

func (p *BudgetPlan) TableName() string {
	return "budget_plans"
}

// CanTransitionTo checks the draft -> submitted -> approved lifecycle.
func (p *BudgetPlan) CanTransitionTo(newStatus string) bool {
	validTransitions := map[string][]string{
		BudgetStatusDraft:     {BudgetStatusSubmitted},
		BudgetStatusSubmitted: {BudgetStatusApproved, BudgetStatusDraft},
		BudgetStatusApproved:  {},
	}
	for _, status := range validTransitions[p.Status] {
		if status == newStatus {
			return true
		}
	}
	return false
}

// BudgetItem is one account-level line of a budget plan.
type BudgetItem struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	PlanID             uuid.UUID        `gorm:"type:uuid;not null;index" json:"plan_id"`
	AccountPrefix      string           `gorm:"type:varchar(32);not null" json:"account_prefix"`
	AccountName        string           `gorm:"type:varchar(255);not null" json:"account_name"`
	Kind               string           `gorm:"type:varchar(20);not null" json:"kind"`
	PlannedAmount      decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"planned_amount"`
	PreviousYearAmount *decimal.Decimal `gorm:"type:decimal(15,2)" json:"previous_year_amount,omitempty"`
	CreatedAt          time.Time        `gorm:"not null" json:"created_at"`
}

func (i *BudgetItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *BudgetItem) TableName() string {
	return "budget_items"
}

// IsValidForecastMethod checks if the forecast method is supported.
func IsValidForecastMethod(method string) bool {
	switch method {
	case ForecastMethodLastYear, ForecastMethodAvg3Years:
		return true
	default:
		return false
	}
}

// Realization statuses bucket the actual-to-budget percentage. Boundary
// values belong to the lower-named bucket: 50 and 80 are green, 100 is
// orange.
const (
	RealizationStatusGray   = "gray"
	RealizationStatusGreen  = "green"
	RealizationStatusOrange = "orange"
	RealizationStatusRed    = "red"
)

// Realization is the monthly actual-vs-budget result for one location.
type Realization struct {
	LocationID    string          `json:"location_id"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	Actual        decimal.Decimal `json:"actual"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	Percentage    decimal.Decimal `json:"percentage"`
	Status        string          `json:"status"`
}

// Comparison is a year-over-year or month-over-month delta of one report
// metric. Expense increases and income/balance increases are both positive
// changes; presentation inverts meaning for expenses.
type Comparison struct {
	Metric        string          `json:"metric"`
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}
