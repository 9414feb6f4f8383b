package repositories

import (
	"errors"
	"fmt"

	"parish-ledger/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{
		db: db,
	}
}

// GetByNumber retrieves an account by its exact number
func (r *accountRepository) GetByNumber(number string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("number = ?", number).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return &account, nil
}

// GetByNumbers retrieves the accounts matching the given numbers. Numbers
// without a matching account are silently absent from the result.
func (r *accountRepository) GetByNumbers(numbers []string) ([]models.Account, error) {
	if len(numbers) == 0 {
		return nil, nil
	}
	var accounts []models.Account
	if err := r.db.Where("number IN ?", numbers).
		Order("number ASC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts by numbers: %w", err)
	}
	return accounts, nil
}

// GetAll retrieves the whole chart of accounts ordered by number
func (r *accountRepository) GetAll() ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Order("number ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

// Create creates a new account
func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}
