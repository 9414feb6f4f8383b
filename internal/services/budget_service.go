package services

import (
	"context"
	"errors"
	"log/slog"

	"parish-ledger/internal/models"
	"parish-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrDuplicatePlan  = errors.New("a budget plan already exists for this location and year")
	ErrNoApprovedPlan = errors.New("no approved budget plan for this location and year")
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

type budgetService struct {
	aggregator AggregatorServiceInterface
	budgetRepo repositories.BudgetRepositoryInterface
	catalog    *models.ReportCatalog
	metrics    MetricsRecorderInterface
}

func NewBudgetService(
	aggregator AggregatorServiceInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	catalog *models.ReportCatalog,
	metrics MetricsRecorderInterface,
) BudgetServiceInterface {
	return &budgetService{
		aggregator: aggregator,
		budgetRepo: budgetRepo,
		catalog:    catalog,
		metrics:    metrics,
	}
}

// ForecastBudget projects account-level budget items for the target year.
// Method last_year takes the previous year's aggregates as-is; avg_3_years
// averages the three preceding years. Years without ledger data contribute
// zero, not an error. The expense adjustment spreads
// (additionalExpenses - plannedCostReduction) evenly over the expense items
// and clamps every adjusted amount to >= 0; income items are never adjusted.
func (s *budgetService) ForecastBudget(ctx context.Context, locationID string, targetYear int, method string, additionalExpenses, plannedCostReduction decimal.Decimal) ([]models.BudgetItem, error) {
	if !models.IsValidForecastMethod(method) {
		return nil, models.ErrInvalidForecastMethod
	}

	years := []int{targetYear - 1}
	if method == models.ForecastMethodAvg3Years {
		years = []int{targetYear - 1, targetYear - 2, targetYear - 3}
	}

	aggregates := make([]*models.PeriodAggregate, 0, len(years))
	for _, year := range years {
		from, to := YearRange(year)
		aggregate, err := s.aggregator.Aggregate(ctx, locationID, from, to)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	items := make([]models.BudgetItem, 0, len(s.catalog.Income)+len(s.catalog.Expense))
	for _, entry := range s.catalog.Income {
		items = append(items, s.forecastItem(entry, models.BudgetItemKindIncome, models.SideCredit, aggregates))
	}

	expenseStart := len(items)
	for _, entry := range s.catalog.Expense {
		items = append(items, s.forecastItem(entry, models.BudgetItemKindExpense, models.SideDebit, aggregates))
	}

	expenseCount := len(items) - expenseStart
	if expenseCount > 0 {
		perItem := additionalExpenses.Sub(plannedCostReduction).
			Div(decimal.NewFromInt(int64(expenseCount)))
		for i := expenseStart; i < len(items); i++ {
			adjusted := items[i].PlannedAmount.Add(perItem)
			if adjusted.IsNegative() {
				adjusted = decimal.Zero
			}
			items[i].PlannedAmount = adjusted
		}
	}

	if s.metrics != nil {
		s.metrics.RecordForecast(method)
	}

	slog.Info("budget forecast computed",
		"location_id", locationID,
		"target_year", targetYear,
		"method", method,
		"item_count", len(items))

	return items, nil
}

func (s *budgetService) forecastItem(entry models.CatalogEntry, kind string, side models.Side, aggregates []*models.PeriodAggregate) models.BudgetItem {
	sum := decimal.Zero
	for _, aggregate := range aggregates {
		sum = sum.Add(aggregate.PrefixTotal(entry.Prefix, side))
	}
	planned := sum.Div(decimal.NewFromInt(int64(len(aggregates))))

	// The first aggregate is always the year immediately before the target.
	previous := aggregates[0].PrefixTotal(entry.Prefix, side)

	return models.BudgetItem{
		AccountPrefix:      entry.Prefix,
		AccountName:        entry.Name,
		Kind:               kind,
		PlannedAmount:      planned,
		PreviousYearAmount: &previous,
	}
}

// CreateBudgetPlan forecasts and persists a draft plan for (location, year).
// An existing plan is rejected without any partial item insert.
func (s *budgetService) CreateBudgetPlan(ctx context.Context, locationID string, targetYear int, method string, additionalExpenses, plannedCostReduction decimal.Decimal) (*models.BudgetPlan, error) {
	items, err := s.ForecastBudget(ctx, locationID, targetYear, method, additionalExpenses, plannedCostReduction)
	if err != nil {
		return nil, err
	}

	plan := &models.BudgetPlan{
		LocationID: locationID,
		Year:       targetYear,
		Status:     models.BudgetStatusDraft,
	}
	if err := s.budgetRepo.CreateWithItems(plan, items); err != nil {
		if errors.Is(err, repositories.ErrDuplicateBudgetPlan) {
			return nil, ErrDuplicatePlan
		}
		return nil, err
	}
	plan.Items = items

	slog.Info("budget plan created",
		"location_id", locationID,
		"year", targetYear,
		"plan_id", plan.ID,
		"item_count", len(items))

	return plan, nil
}

// UpdateBudgetStatus moves a plan through draft -> submitted -> approved.
func (s *budgetService) UpdateBudgetStatus(planID uuid.UUID, status string) (*models.BudgetPlan, error) {
	plan, err := s.budgetRepo.GetByID(planID)
	if err != nil {
		return nil, err
	}

	if !plan.CanTransitionTo(status) {
		return nil, models.ErrInvalidBudgetStatus
	}

	if err := s.budgetRepo.UpdateStatus(planID, status); err != nil {
		return nil, err
	}
	plan.Status = status
	return plan, nil
}

// Realization compares the month's actual expense total against the approved
// plan's monthly budget (annual planned expenses divided by 12) and buckets
// the percentage: below 50 gray, up to and including 80 green, up to and
// including 100 orange, above red.
func (s *budgetService) Realization(ctx context.Context, locationID string, year, month int) (*models.Realization, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	plan, err := s.budgetRepo.GetByLocationAndYear(locationID, year)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetPlanNotFound) {
			return nil, ErrNoApprovedPlan
		}
		return nil, err
	}
	if plan.Status != models.BudgetStatusApproved {
		return nil, ErrNoApprovedPlan
	}

	annualBudget := decimal.Zero
	for i := range plan.Items {
		if plan.Items[i].Kind == models.BudgetItemKindExpense {
			annualBudget = annualBudget.Add(plan.Items[i].PlannedAmount)
		}
	}
	monthlyBudget := annualBudget.Div(twelve)

	aggregate, err := s.aggregator.AggregateMonth(ctx, locationID, year, month)
	if err != nil {
		return nil, err
	}
	actual := aggregate.TotalExpense()

	percentage := decimal.Zero
	if monthlyBudget.IsPositive() {
		percentage = actual.Div(monthlyBudget).Mul(hundred)
	}

	return &models.Realization{
		LocationID:    locationID,
		Year:          year,
		Month:         month,
		Actual:        actual,
		MonthlyBudget: monthlyBudget,
		Percentage:    percentage,
		Status:        RealizationStatusFor(percentage),
	}, nil
}

// RealizationStatusFor buckets an actual-to-budget percentage. Boundary
// values belong to the lower-named bucket: 50 and 80 are green, 100 is
// orange.
func RealizationStatusFor(percentage decimal.Decimal) string {
	fifty := decimal.NewFromInt(50)
	eighty := decimal.NewFromInt(80)

	switch {
	case percentage.LessThan(fifty):
		return models.RealizationStatusGray
	case percentage.LessThanOrEqual(eighty):
		return models.RealizationStatusGreen
	case percentage.LessThanOrEqual(hundred):
		return models.RealizationStatusOrange
	default:
		return models.RealizationStatusRed
	}
}
