package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNegativeAmount      = errors.New("transaction amounts must be non-negative")
	ErrMissingLegAccount   = errors.New("transaction requires both a debit and a credit account")
	ErrMissingLocation     = errors.New("transaction requires a location")
	ErrMissingLegAmounts   = errors.New("transaction requires split amounts or a shared amount")
	ErrInvalidExchangeRate = errors.New("exchange rate must be positive when present")
)

// Transaction is one immutable double-entry ledger record: a debit leg and a
// credit leg, each against an account. When only one of DebitAmount and
// CreditAmount is present both legs use the shared Amount; when both are
// present they need not be equal (currency conversion).
type Transaction struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Date            time.Time        `gorm:"not null;index" json:"date"`
	DebitAccountID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"debit_account_id"`
	CreditAccountID uuid.UUID        `gorm:"type:uuid;not null;index" json:"credit_account_id"`
	DebitAmount     *decimal.Decimal `gorm:"type:decimal(15,2)" json:"debit_amount,omitempty"`
	CreditAmount    *decimal.Decimal `gorm:"type:decimal(15,2)" json:"credit_amount,omitempty"`
	Amount          decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"amount"`
	Currency        string           `gorm:"type:varchar(3);not null;default:'PLN'" json:"currency"`
	ExchangeRate    *decimal.Decimal `gorm:"type:decimal(12,6)" json:"exchange_rate,omitempty"`
	Description     string           `gorm:"type:text" json:"description"`
	LocationID      string           `gorm:"type:varchar(32);not null;index" json:"location_id"`
	CreatedAt       time.Time        `gorm:"not null" json:"created_at"`

	// Associations
	DebitAccount  Account `gorm:"foreignKey:DebitAccountID" json:"-"`
	CreditAccount Account `gorm:"foreignKey:CreditAccountID" json:"-"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Currency == "" {
		t.Currency = "PLN"
	}
	return t.Validate()
}

// Validate enforces the structural invariants of a ledger row. Rows that are
// merely inconsistent in value (negative amounts) are also caught here so they
// can be excluded softly at classification time.
func (t *Transaction) Validate() error {
	if t.DebitAccountID == uuid.Nil || t.CreditAccountID == uuid.Nil {
		return ErrMissingLegAccount
	}
	if t.LocationID == "" {
		return ErrMissingLocation
	}
	if err := t.CheckAmounts(); err != nil {
		return err
	}
	if t.ExchangeRate != nil && t.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidExchangeRate
	}
	return nil
}

// CheckAmounts verifies that every populated amount field is non-negative.
func (t *Transaction) CheckAmounts() error {
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if t.DebitAmount != nil && t.DebitAmount.IsNegative() {
		return ErrNegativeAmount
	}
	if t.CreditAmount != nil && t.CreditAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// LegAmount resolves the effective amount of one leg, preferring the explicit
// split amount over the shared Amount when present.
func (t *Transaction) LegAmount(side Side) decimal.Decimal {
	if side == SideDebit && t.DebitAmount != nil {
		return *t.DebitAmount
	}
	if side == SideCredit && t.CreditAmount != nil {
		return *t.CreditAmount
	}
	return t.Amount
}

// LegAccount returns the account of one leg. Associations must be preloaded.
func (t *Transaction) LegAccount(side Side) *Account {
	if side == SideDebit {
		return &t.DebitAccount
	}
	return &t.CreditAccount
}

func (t *Transaction) TableName() string {
	return "transactions"
}
