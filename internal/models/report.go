package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ReportStatusDraft         = "draft"
	ReportStatusSubmitted     = "submitted"
	ReportStatusApproved      = "approved"
	ReportStatusToBeCorrected = "to_be_corrected"
)

var ErrInvalidReportStatus = errors.New("invalid report status transition")

// Report is one monthly report of one location. Its numbers live in the
// derived ReportDetails snapshot, which is a cache: always recomputable from
// the ledger and invalidated whenever the report returns to draft.
type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LocationID string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_reports_location_period" json:"location_id"`
	Month      int       `gorm:"not null;uniqueIndex:idx_reports_location_period" json:"month"`
	Year       int       `gorm:"not null;uniqueIndex:idx_reports_location_period" json:"year"`
	Status     string    `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReportStatusDraft
	}
	return nil
}

func (r *Report) TableName() string {
	return "reports"
}

// CanTransitionTo checks whether the report status lifecycle permits moving
// to the new status.
func (r *Report) CanTransitionTo(newStatus string) bool {
	validTransitions := map[string][]string{
		ReportStatusDraft:         {ReportStatusSubmitted},
		ReportStatusSubmitted:     {ReportStatusApproved, ReportStatusToBeCorrected},
		ReportStatusToBeCorrected: {ReportStatusDraft},
		ReportStatusApproved:      {},
	}
	for _, status := range validTransitions[r.Status] {
		if status == newStatus {
			return true
		}
	}
	return false
}

// BalanceMap stores per-category carried balances as a JSON column, keyed by
// category name.
type BalanceMap map[string]decimal.Decimal

func (m BalanceMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	// Return string for SQLite compatibility
	return string(bytes), nil
}

func (m *BalanceMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into BalanceMap", value)
	}
	return json.Unmarshal(bytes, m)
}

// ReportDetails is the materialized snapshot of one Report Assembler run.
// Writing it is a full replace keyed by ReportID, so concurrent recomputation
// resolves as last-writer-wins.
type ReportDetails struct {
	ReportID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"report_id"`
	IncomeTotal      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"income_total"`
	ExpenseTotal     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"expense_total"`
	Balance          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	SettlementsTotal decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"settlements_total"`
	OpeningBalance   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"opening_balance"`
	ClosingBalances  BalanceMap      `gorm:"type:text" json:"closing_balances"`
	GeneratedAt      time.Time       `gorm:"not null" json:"generated_at"`
}

func (d *ReportDetails) TableName() string {
	return "report_details"
}

// SectionLine is one catalogue row of the income or expense section.
type SectionLine struct {
	Prefix string          `json:"prefix"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// PositionLine is one cash/bank category row of the financial position
// section: closing = opening + income - expense.
type PositionLine struct {
	Name    string          `json:"name"`
	Opening decimal.Decimal `json:"opening"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Closing decimal.Decimal `json:"closing"`
}

// IntentionsSection is the single carried mass-intentions balance, tracked
// outside ordinary P&L.
type IntentionsSection struct {
	Opening            decimal.Decimal `json:"opening"`
	Received           decimal.Decimal `json:"received"`
	CelebratedAndGiven decimal.Decimal `json:"celebrated_and_given"`
	Closing            decimal.Decimal `json:"closing"`
}

// SettlementLine is one row of the receivables/payables matrix, with
// opening/change/closing tracked independently for each column.
type SettlementLine struct {
	Name              string          `json:"name"`
	ReceivableOpening decimal.Decimal `json:"receivable_opening"`
	ReceivableChange  decimal.Decimal `json:"receivable_change"`
	ReceivableClosing decimal.Decimal `json:"receivable_closing"`
	PayableOpening    decimal.Decimal `json:"payable_opening"`
	PayableChange     decimal.Decimal `json:"payable_change"`
	PayableClosing    decimal.Decimal `json:"payable_closing"`
}

// AssembledReport is the full five-section monthly report produced by the
// Report Assembler. It is derived output, never persisted as such; only the
// ReportDetails snapshot is cached.
type AssembledReport struct {
	ReportID         uuid.UUID         `json:"report_id"`
	LocationID       string            `json:"location_id"`
	Month            int               `json:"month"`
	Year             int               `json:"year"`
	Status           string            `json:"status"`
	Income           []SectionLine     `json:"income"`
	IncomeTotal      decimal.Decimal   `json:"income_total"`
	Expense          []SectionLine     `json:"expense"`
	ExpenseTotal     decimal.Decimal   `json:"expense_total"`
	Balance          decimal.Decimal   `json:"balance"`
	Position         []PositionLine    `json:"position"`
	PositionSaldo    PositionLine      `json:"position_saldo"`
	Intentions       IntentionsSection `json:"intentions"`
	Settlements      []SettlementLine  `json:"settlements"`
	SettlementsTotal decimal.Decimal   `json:"settlements_total"`
	Warnings         []Warning         `json:"warnings,omitempty"`
	GeneratedAt      time.Time         `json:"generated_at"`
}
