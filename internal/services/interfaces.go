package services

import (
	"context"
	"time"

	"parish-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClassifierServiceInterface defines the per-transaction classification
// rules: which legs contribute to which reporting category.
type ClassifierServiceInterface interface {
	// ClassifyTransaction routes the two legs of one transaction into 0-2
	// contributions. Rows with a negative amount are excluded softly: no
	// contributions and a non-nil warning.
	ClassifyTransaction(txn *models.Transaction, restrictions []models.AccountRestriction) ([]models.Contribution, *models.Warning)
}

// AggregatorServiceInterface defines period aggregation over the ledger.
type AggregatorServiceInterface interface {
	// Aggregate classifies and sums every transaction of the location in
	// [from, to], a closed date interval.
	Aggregate(ctx context.Context, locationID string, from, to time.Time) (*models.PeriodAggregate, error)
	// AggregateMonth aggregates one calendar month.
	AggregateMonth(ctx context.Context, locationID string, year, month int) (*models.PeriodAggregate, error)
}

// ReportServiceInterface defines report assembly and the report lifecycle.
type ReportServiceInterface interface {
	// AssembleReport builds the five-section monthly report, carrying
	// opening balances forward from the last cached snapshot or from the
	// start of the location's reporting history.
	AssembleReport(ctx context.Context, locationID string, month, year int) (*models.AssembledReport, error)
	// UpdateReportStatus moves a report through its lifecycle; returning to
	// draft invalidates the cached snapshot.
	UpdateReportStatus(reportID uuid.UUID, status string) (*models.Report, error)
}

// BudgetServiceInterface defines budget forecasting and realization.
type BudgetServiceInterface interface {
	// ForecastBudget projects per-account budget items for the target year
	// from historical aggregates, without persisting anything.
	ForecastBudget(ctx context.Context, locationID string, targetYear int, method string, additionalExpenses, plannedCostReduction decimal.Decimal) ([]models.BudgetItem, error)
	// CreateBudgetPlan forecasts and persists a draft plan. A plan already
	// existing for (location, year) is rejected without side effects.
	CreateBudgetPlan(ctx context.Context, locationID string, targetYear int, method string, additionalExpenses, plannedCostReduction decimal.Decimal) (*models.BudgetPlan, error)
	// UpdateBudgetStatus moves a plan through draft -> submitted -> approved.
	UpdateBudgetStatus(planID uuid.UUID, status string) (*models.BudgetPlan, error)
	// Realization compares the month's actual expense total against the
	// approved plan's monthly budget.
	Realization(ctx context.Context, locationID string, year, month int) (*models.Realization, error)
}

// ComparatorServiceInterface defines multi-period comparisons.
type ComparatorServiceInterface interface {
	Compare(metric string, current, previous decimal.Decimal) models.Comparison
	CompareReports(current, previous *models.AssembledReport, metric string) (models.Comparison, error)
}

// MetricsRecorderInterface abstracts engine metrics recording.
type MetricsRecorderInterface interface {
	RecordAggregation(locationID string, duration time.Duration)
	RecordReportAssembled(locationID string, duration time.Duration)
	RecordClassificationWarnings(locationID string, count int)
	RecordForecast(method string)
}

// LedgerGeneratorInterface produces plausible sample ledger months for dev
// seeding and tests.
type LedgerGeneratorInterface interface {
	GenerateMonth(accounts []models.Account, locationID string, year, month, count int) []models.Transaction
}
