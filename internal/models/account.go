package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AccountKindAsset     = "asset"
	AccountKindLiability = "liability"
	AccountKindEquity    = "equity"
	AccountKindIncome    = "income"
	AccountKindExpense   = "expense"
	AccountKindOther     = "other"
)

// syntheticSegments is the maximum number of hyphen-separated segments in a
// synthetic account number. Longer ("analytical") numbers roll up into the
// synthetic parent formed by their first three segments.
const syntheticSegments = 3

var (
	ErrInvalidAccountNumber = errors.New("account number must be non-empty hyphen-segmented digits")
	ErrAccountKindMismatch  = errors.New("account kind does not match its number prefix")
)

// Account is one entry in the congregation's chart of accounts. Numbers are
// hyphen-segmented hierarchical codes such as "701-2-2" or "110-3-1-1".
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Number    string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"number"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Kind == "" {
		a.Kind = KindFromNumber(a.Number)
	}
	return a.Validate()
}

// Validate checks the number format and that any explicitly stored kind
// agrees with the kind inferred from the number's first digit.
func (a *Account) Validate() error {
	if !IsValidAccountNumber(a.Number) {
		return ErrInvalidAccountNumber
	}
	if a.Kind != KindFromNumber(a.Number) {
		return ErrAccountKindMismatch
	}
	return nil
}

func (a *Account) TableName() string {
	return "accounts"
}

// SyntheticNumber truncates an account number to at most three
// hyphen-segments. Numbers that already have three or fewer segments are
// returned unchanged, so the operation is idempotent.
func SyntheticNumber(number string) string {
	segments := strings.Split(number, "-")
	if len(segments) <= syntheticSegments {
		return number
	}
	return strings.Join(segments[:syntheticSegments], "-")
}

// MatchesPrefix reports whether the account number starts with any of the
// given prefixes. Prefixes are compared as strings, not numeric ranges:
// "2029" matches prefix "202".
func MatchesPrefix(number string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(number, prefix) {
			return true
		}
	}
	return false
}

// MatchesCatalogPrefix reports whether a synthetic number belongs to a
// catalogue entry: either it equals the entry's prefix or it is a child of
// it ("701-2" under prefix "701", but never "7012" under "701").
func MatchesCatalogPrefix(number, prefix string) bool {
	return number == prefix || strings.HasPrefix(number, prefix+"-")
}

// KindFromNumber infers the account kind from the first digit of the first
// segment of the account number.
func KindFromNumber(number string) string {
	if number == "" {
		return AccountKindOther
	}
	switch number[0] {
	case '1':
		return AccountKindAsset
	case '2':
		return AccountKindLiability
	case '3':
		return AccountKindEquity
	case '4':
		return AccountKindExpense
	case '7':
		return AccountKindIncome
	default:
		return AccountKindOther
	}
}

// IsValidAccountNumber checks that the number is non-empty, hyphen-segmented
// and every segment consists of digits only.
func IsValidAccountNumber(number string) bool {
	if number == "" {
		return false
	}
	for _, segment := range strings.Split(number, "-") {
		if segment == "" {
			return false
		}
		for _, r := range segment {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
