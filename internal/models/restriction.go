package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRestriction excludes accounts under a number prefix from reporting
// for every location whose identifier starts with the given category prefix.
// Restrictions are applied before classification.
type AccountRestriction struct {
	ID                     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LocationCategoryPrefix string    `gorm:"type:varchar(16);not null;index" json:"location_category_prefix"`
	AccountNumberPrefix    string    `gorm:"type:varchar(32);not null" json:"account_number_prefix"`
	IsRestricted           bool      `gorm:"not null;default:true" json:"is_restricted"`
	CreatedAt              time.Time `gorm:"not null" json:"created_at"`
}

func (r *AccountRestriction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *AccountRestriction) TableName() string {
	return "account_restrictions"
}

// LocationCategory derives the category prefix of a location identifier: its
// leading segment before the first hyphen.
func LocationCategory(locationID string) string {
	if idx := strings.Index(locationID, "-"); idx >= 0 {
		return locationID[:idx]
	}
	return locationID
}

// IsAccountRestricted reports whether any restriction in the set marks the
// account number as restricted. A nil or empty set restricts nothing.
func IsAccountRestricted(restrictions []AccountRestriction, accountNumber string) bool {
	for i := range restrictions {
		r := &restrictions[i]
		if r.IsRestricted && strings.HasPrefix(accountNumber, r.AccountNumberPrefix) {
			return true
		}
	}
	return false
}
