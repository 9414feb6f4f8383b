package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parish-ledger/internal/models"
	"parish-ledger/internal/repositories"
)

var (
	ErrInvalidPeriod   = errors.New("period start must not be after period end")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
	ErrDataUnavailable = errors.New("ledger data unavailable")
)

type aggregationService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	restrictionRepo repositories.RestrictionRepositoryInterface
	classifier      ClassifierServiceInterface
	metrics         MetricsRecorderInterface
}

func NewAggregationService(
	transactionRepo repositories.TransactionRepositoryInterface,
	restrictionRepo repositories.RestrictionRepositoryInterface,
	classifier ClassifierServiceInterface,
	metrics MetricsRecorderInterface,
) AggregatorServiceInterface {
	return &aggregationService{
		transactionRepo: transactionRepo,
		restrictionRepo: restrictionRepo,
		classifier:      classifier,
		metrics:         metrics,
	}
}

// Aggregate classifies every transaction of the location within [from, to]
// and folds the contributions into a fresh PeriodAggregate. The fold is a
// commutative-monoid reduction, so the same transaction set aggregated in any
// partitioning merges to the same result.
func (s *aggregationService) Aggregate(ctx context.Context, locationID string, from, to time.Time) (*models.PeriodAggregate, error) {
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}

	started := time.Now()

	restrictions, err := s.restrictionRepo.GetByCategoryPrefix(ctx, models.LocationCategory(locationID))
	if err != nil {
		// Missing restriction data is not an error: reporting proceeds
		// unrestricted rather than failing closed.
		slog.Warn("restriction data unavailable, proceeding unrestricted",
			"location_id", locationID,
			"error", err)
		restrictions = nil
	}

	transactions, err := s.transactionRepo.GetByLocationAndRange(ctx, locationID, from, to)
	if err != nil {
		slog.Error("failed to fetch transactions for aggregation",
			"location_id", locationID,
			"error", err)
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	aggregate := models.NewPeriodAggregate(locationID, from, to)
	for i := range transactions {
		contributions, warning := s.classifier.ClassifyTransaction(&transactions[i], restrictions)
		if warning != nil {
			slog.Warn("transaction excluded from aggregation",
				"location_id", locationID,
				"transaction_id", warning.TransactionID,
				"reason", warning.Reason)
			aggregate.Warnings = append(aggregate.Warnings, *warning)
			continue
		}
		for _, contribution := range contributions {
			aggregate.Add(contribution)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordAggregation(locationID, time.Since(started))
		if len(aggregate.Warnings) > 0 {
			s.metrics.RecordClassificationWarnings(locationID, len(aggregate.Warnings))
		}
	}

	slog.Info("period aggregated",
		"location_id", locationID,
		"from", from.Format(time.DateOnly),
		"to", to.Format(time.DateOnly),
		"transaction_count", len(transactions),
		"bucket_count", len(aggregate.Accounts),
		"warning_count", len(aggregate.Warnings))

	return aggregate, nil
}

// AggregateMonth aggregates one calendar month of the location.
func (s *aggregationService) AggregateMonth(ctx context.Context, locationID string, year, month int) (*models.PeriodAggregate, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	from, to := MonthRange(year, month)
	return s.Aggregate(ctx, locationID, from, to)
}

// MonthRange returns the closed interval covering one calendar month.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// YearRange returns the closed interval covering one calendar year.
func YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0).Add(-time.Second)
	return start, end
}
