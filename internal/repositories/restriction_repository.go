package repositories

import (
	"context"
	"fmt"

	"parish-ledger/internal/models"

	"gorm.io/gorm"
)

// restrictionRepository implements RestrictionRepositoryInterface
type restrictionRepository struct {
	db *gorm.DB
}

// NewRestrictionRepository creates a new restriction repository
func NewRestrictionRepository(db *gorm.DB) RestrictionRepositoryInterface {
	return &restrictionRepository{
		db: db,
	}
}

// GetByCategoryPrefix retrieves the restrictions for a location category.
// No rows is a valid result, not an error.
func (r *restrictionRepository) GetByCategoryPrefix(ctx context.Context, categoryPrefix string) ([]models.AccountRestriction, error) {
	var restrictions []models.AccountRestriction
	if err := r.db.WithContext(ctx).
		Where("location_category_prefix = ?", categoryPrefix).
		Find(&restrictions).Error; err != nil {
		return nil, fmt.Errorf("failed to get restrictions: %w", err)
	}
	return restrictions, nil
}

// Create creates a new account restriction
func (r *restrictionRepository) Create(restriction *models.AccountRestriction) error {
	if err := r.db.Create(restriction).Error; err != nil {
		return fmt.Errorf("failed to create restriction: %w", err)
	}
	return nil
}
