package repositories

import (
	"errors"
	"fmt"

	"parish-ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBudgetPlanNotFound  = errors.New("budget plan not found")
	ErrDuplicateBudgetPlan = errors.New("budget plan already exists for this location and year")
)

// budgetRepository implements BudgetRepositoryInterface
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{
		db: db,
	}
}

// GetByID retrieves a plan by ID with its items
func (r *budgetRepository) GetByID(id uuid.UUID) (*models.BudgetPlan, error) {
	var plan models.BudgetPlan
	if err := r.db.Preload("Items").First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetPlanNotFound
		}
		return nil, fmt.Errorf("failed to get budget plan: %w", err)
	}
	return &plan, nil
}

// GetByLocationAndYear retrieves the plan for (location, year) with its items
func (r *budgetRepository) GetByLocationAndYear(locationID string, year int) (*models.BudgetPlan, error) {
	var plan models.BudgetPlan
	err := r.db.Preload("Items").
		Where("location_id = ? AND year = ?", locationID, year).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetPlanNotFound
		}
		return nil, fmt.Errorf("failed to get budget plan: %w", err)
	}
	return &plan, nil
}

// CreateWithItems creates a plan together with its items. The uniqueness of
// (location, year) is checked inside the transaction so a duplicate leaves no
// partial item insert behind.
func (r *budgetRepository) CreateWithItems(plan *models.BudgetPlan, items []models.BudgetItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BudgetPlan{}).
			Where("location_id = ? AND year = ?", plan.LocationID, plan.Year).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check budget plan uniqueness: %w", err)
		}
		if count > 0 {
			return ErrDuplicateBudgetPlan
		}

		if err := tx.Create(plan).Error; err != nil {
			return fmt.Errorf("failed to create budget plan: %w", err)
		}

		for i := range items {
			items[i].PlanID = plan.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to create budget items: %w", err)
			}
		}
		return nil
	})
}

// InsertItems appends items to an existing draft plan
func (r *budgetRepository) InsertItems(planID uuid.UUID, items []models.BudgetItem) error {
	if len(items) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var plan models.BudgetPlan
		if err := tx.First(&plan, "id = ?", planID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBudgetPlanNotFound
			}
			return fmt.Errorf("failed to get budget plan: %w", err)
		}
		if plan.Status != models.BudgetStatusDraft {
			return models.ErrBudgetNotDraft
		}

		for i := range items {
			items[i].PlanID = planID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to insert budget items: %w", err)
		}
		return nil
	})
}

// UpdateStatus updates the plan status
func (r *budgetRepository) UpdateStatus(id uuid.UUID, status string) error {
	result := r.db.Model(&models.BudgetPlan{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update budget plan status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetPlanNotFound
	}
	return nil
}
