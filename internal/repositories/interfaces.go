package repositories

import (
	"context"
	"time"

	"parish-ledger/internal/models"

	"github.com/google/uuid"
)

// TransactionRepositoryInterface defines ledger queries. Fetches take a
// context because the engine treats the ledger store as a cancellable
// external collaborator with no retry logic of its own.
type TransactionRepositoryInterface interface {
	// GetByLocationAndRange returns all transactions of one location whose
	// date falls within [from, to], inclusive on both ends, with both leg
	// accounts preloaded.
	GetByLocationAndRange(ctx context.Context, locationID string, from, to time.Time) ([]models.Transaction, error)
	// FirstTransactionDate returns the date of the location's earliest
	// transaction, or nil when the location has no ledger history.
	FirstTransactionDate(ctx context.Context, locationID string) (*time.Time, error)
	Create(transaction *models.Transaction) error
	CreateBatch(transactions []models.Transaction) error
}

// AccountRepositoryInterface defines chart-of-accounts queries.
type AccountRepositoryInterface interface {
	GetByNumber(number string) (*models.Account, error)
	GetByNumbers(numbers []string) ([]models.Account, error)
	GetAll() ([]models.Account, error)
	Create(account *models.Account) error
}

// RestrictionRepositoryInterface defines account restriction queries.
type RestrictionRepositoryInterface interface {
	// GetByCategoryPrefix returns the restrictions applying to locations
	// whose identifier starts with the category prefix. An empty result is
	// not an error; reporting proceeds unrestricted.
	GetByCategoryPrefix(ctx context.Context, categoryPrefix string) ([]models.AccountRestriction, error)
	Create(restriction *models.AccountRestriction) error
}

// ReportRepositoryInterface defines report and snapshot persistence.
type ReportRepositoryInterface interface {
	GetOrCreate(locationID string, month, year int) (*models.Report, error)
	GetByID(id uuid.UUID) (*models.Report, error)
	UpdateStatus(id uuid.UUID, status string) error
	GetDetails(reportID uuid.UUID) (*models.ReportDetails, error)
	// UpsertDetails is a full replace keyed by report ID; last-writer-wins
	// is acceptable because the snapshot is always recomputable.
	UpsertDetails(details *models.ReportDetails) error
	DeleteDetails(reportID uuid.UUID) error
	// GetLatestDetailsBefore returns the most recent cached snapshot of the
	// location strictly before (year, month), with its report, or nil when
	// none exists.
	GetLatestDetailsBefore(ctx context.Context, locationID string, year, month int) (*models.Report, *models.ReportDetails, error)
}

// BudgetRepositoryInterface defines budget plan persistence.
type BudgetRepositoryInterface interface {
	GetByID(id uuid.UUID) (*models.BudgetPlan, error)
	GetByLocationAndYear(locationID string, year int) (*models.BudgetPlan, error)
	// CreateWithItems creates the plan and its items in one database
	// transaction; a duplicate (location, year) aborts with no partial
	// item insert.
	CreateWithItems(plan *models.BudgetPlan, items []models.BudgetItem) error
	InsertItems(planID uuid.UUID, items []models.BudgetItem) error
	UpdateStatus(id uuid.UUID, status string) error
}
