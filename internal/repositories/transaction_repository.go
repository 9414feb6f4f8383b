package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parish-ledger/internal/models"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// GetByLocationAndRange retrieves transactions for a location within a closed
// date interval, oldest first, with both leg accounts preloaded.
func (r *transactionRepository) GetByLocationAndRange(ctx context.Context, locationID string, from, to time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.WithContext(ctx).
		Preload("DebitAccount").
		Preload("CreditAccount").
		Where("location_id = ? AND date BETWEEN ? AND ?", locationID, from, to).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

// FirstTransactionDate returns the date of the location's earliest ledger row.
func (r *transactionRepository) FirstTransactionDate(ctx context.Context, locationID string) (*time.Time, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("date ASC").
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get first transaction date: %w", err)
	}
	return &transaction.Date, nil
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch creates multiple transactions in a single database transaction
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return fmt.Errorf("failed to create batch transactions: %w", err)
		}
		return nil
	})
}
