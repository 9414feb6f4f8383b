package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parish-ledger/internal/models"
	"parish-ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type reportService struct {
	aggregator      AggregatorServiceInterface
	reportRepo      repositories.ReportRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	catalog         *models.ReportCatalog
	metrics         MetricsRecorderInterface
}

func NewReportService(
	aggregator AggregatorServiceInterface,
	reportRepo repositories.ReportRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	catalog *models.ReportCatalog,
	metrics MetricsRecorderInterface,
) ReportServiceInterface {
	return &reportService{
		aggregator:      aggregator,
		reportRepo:      reportRepo,
		transactionRepo: transactionRepo,
		catalog:         catalog,
		metrics:         metrics,
	}
}

// AssembleReport builds the five-section report for one month. Opening
// balances are carried forward month by month, starting from the last cached
// snapshot before the target month, or from the start of the location's
// reporting history when no snapshot exists. Carrying is the only sequential
// dependency of the engine: months must be walked in chronological order.
func (s *reportService) AssembleReport(ctx context.Context, locationID string, month, year int) (*models.AssembledReport, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	started := time.Now()

	report, err := s.reportRepo.GetOrCreate(locationID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	opening, cursorYear, cursorMonth, err := s.openingBalances(ctx, locationID, year, month)
	if err != nil {
		return nil, err
	}

	// Roll intermediate months into the opening balances.
	for cursorYear < year || (cursorYear == year && cursorMonth < month) {
		aggregate, err := s.aggregator.AggregateMonth(ctx, locationID, cursorYear, cursorMonth)
		if err != nil {
			return nil, err
		}
		s.carryForward(opening, aggregate)
		cursorYear, cursorMonth = nextMonth(cursorYear, cursorMonth)
	}

	aggregate, err := s.aggregator.AggregateMonth(ctx, locationID, year, month)
	if err != nil {
		return nil, err
	}

	assembled := s.buildSections(report, aggregate, opening)

	if report.Status == models.ReportStatusDraft {
		if err := s.reportRepo.UpsertDetails(s.snapshot(report.ID, assembled, opening)); err != nil {
			// The snapshot is a cache; failing to write it must not fail
			// the report itself.
			slog.Warn("failed to cache report snapshot",
				"report_id", report.ID,
				"error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordReportAssembled(locationID, time.Since(started))
	}

	slog.Info("report assembled",
		"location_id", locationID,
		"month", month,
		"year", year,
		"income_total", assembled.IncomeTotal,
		"expense_total", assembled.ExpenseTotal,
		"warning_count", len(assembled.Warnings))

	return assembled, nil
}

// UpdateReportStatus moves a report through its lifecycle. A report returning
// to draft has its cached snapshot invalidated so the next assembly
// recomputes it from the ledger.
func (s *reportService) UpdateReportStatus(reportID uuid.UUID, status string) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, err
	}

	if !report.CanTransitionTo(status) {
		return nil, models.ErrInvalidReportStatus
	}

	if err := s.reportRepo.UpdateStatus(reportID, status); err != nil {
		return nil, err
	}

	if status == models.ReportStatusDraft {
		if err := s.reportRepo.DeleteDetails(reportID); err != nil {
			return nil, err
		}
		slog.Info("report snapshot invalidated",
			"report_id", reportID)
	}

	report.Status = status
	return report, nil
}

// openingBalances determines where carrying starts: the closing balances of
// the last cached snapshot, or empty balances at the location's first ledger
// month when no snapshot exists.
func (s *reportService) openingBalances(ctx context.Context, locationID string, year, month int) (models.BalanceMap, int, int, error) {
	priorReport, priorDetails, err := s.reportRepo.GetLatestDetailsBefore(ctx, locationID, year, month)
	if err != nil {
		return nil, 0, 0, err
	}
	if priorReport != nil {
		opening := make(models.BalanceMap, len(priorDetails.ClosingBalances))
		for key, value := range priorDetails.ClosingBalances {
			opening[key] = value
		}
		cursorYear, cursorMonth := nextMonth(priorReport.Year, priorReport.Month)
		return opening, cursorYear, cursorMonth, nil
	}

	first, err := s.transactionRepo.FirstTransactionDate(ctx, locationID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if first == nil || !first.Before(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)) {
		// No prior history: nothing to carry.
		return models.BalanceMap{}, year, month, nil
	}
	return models.BalanceMap{}, first.Year(), int(first.Month()), nil
}

// carryForward applies one month's aggregate to the carried balances:
// position categories, the intentions balance and both settlement columns.
func (s *reportService) carryForward(balances models.BalanceMap, aggregate *models.PeriodAggregate) {
	for _, category := range s.catalog.Position {
		delta := aggregate.PrefixesTotal(category.Prefixes, models.SideDebit).
			Sub(aggregate.PrefixesTotal(category.Prefixes, models.SideCredit))
		balances[positionKey(category.Name)] = balances[positionKey(category.Name)].Add(delta)
	}

	intentionsDelta := aggregate.PrefixTotal(s.catalog.IntentionsPrefix, models.SideCredit).
		Sub(aggregate.PrefixTotal(s.catalog.IntentionsPrefix, models.SideDebit))
	balances[intentionsKey] = balances[intentionsKey].Add(intentionsDelta)

	for _, category := range s.catalog.Settlements {
		receivableDelta := aggregate.PrefixesTotal(category.ReceivablePrefixes, models.SideDebit).
			Sub(aggregate.PrefixesTotal(category.ReceivablePrefixes, models.SideCredit))
		balances[receivableKey(category.Name)] = balances[receivableKey(category.Name)].Add(receivableDelta)

		payableDelta := aggregate.PrefixesTotal(category.PayablePrefixes, models.SideCredit).
			Sub(aggregate.PrefixesTotal(category.PayablePrefixes, models.SideDebit))
		balances[payableKey(category.Name)] = balances[payableKey(category.Name)].Add(payableDelta)
	}
}

// buildSections assembles the five report sections from the month's aggregate
// and the carried opening balances. Sections 3-5 never affect the balance:
// it is strictly incomeTotal - expenseTotal of the month's P&L categories.
func (s *reportService) buildSections(report *models.Report, aggregate *models.PeriodAggregate, opening models.BalanceMap) *models.AssembledReport {
	assembled := &models.AssembledReport{
		ReportID:    report.ID,
		LocationID:  report.LocationID,
		Month:       report.Month,
		Year:        report.Year,
		Status:      report.Status,
		Warnings:    aggregate.Warnings,
		GeneratedAt: time.Now(),
	}

	// Section 1: income catalogue. Unlisted income activity is omitted from
	// the section but still included in the P&L totals below.
	for _, entry := range s.catalog.Income {
		assembled.Income = append(assembled.Income, models.SectionLine{
			Prefix: entry.Prefix,
			Name:   entry.Name,
			Amount: aggregate.PrefixTotal(entry.Prefix, models.SideCredit),
		})
	}

	// Section 2: expense catalogue.
	for _, entry := range s.catalog.Expense {
		assembled.Expense = append(assembled.Expense, models.SectionLine{
			Prefix: entry.Prefix,
			Name:   entry.Name,
			Amount: aggregate.PrefixTotal(entry.Prefix, models.SideDebit),
		})
	}

	assembled.IncomeTotal = aggregate.TotalIncome()
	assembled.ExpenseTotal = aggregate.TotalExpense()
	assembled.Balance = assembled.IncomeTotal.Sub(assembled.ExpenseTotal)

	// Section 3: financial position with a SALDO row over all categories.
	saldo := models.PositionLine{Name: "SALDO"}
	for _, category := range s.catalog.Position {
		line := models.PositionLine{
			Name:    category.Name,
			Opening: opening[positionKey(category.Name)],
			Income:  aggregate.PrefixesTotal(category.Prefixes, models.SideDebit),
			Expense: aggregate.PrefixesTotal(category.Prefixes, models.SideCredit),
		}
		line.Closing = line.Opening.Add(line.Income).Sub(line.Expense)
		assembled.Position = append(assembled.Position, line)

		saldo.Opening = saldo.Opening.Add(line.Opening)
		saldo.Income = saldo.Income.Add(line.Income)
		saldo.Expense = saldo.Expense.Add(line.Expense)
		saldo.Closing = saldo.Closing.Add(line.Closing)
	}
	assembled.PositionSaldo = saldo

	// Section 4: the carried intentions balance.
	assembled.Intentions = models.IntentionsSection{
		Opening:            opening[intentionsKey],
		Received:           aggregate.PrefixTotal(s.catalog.IntentionsPrefix, models.SideCredit),
		CelebratedAndGiven: aggregate.PrefixTotal(s.catalog.IntentionsPrefix, models.SideDebit),
	}
	assembled.Intentions.Closing = assembled.Intentions.Opening.
		Add(assembled.Intentions.Received).
		Sub(assembled.Intentions.CelebratedAndGiven)

	// Section 5: receivables/payables matrix; the total is net payables
	// minus net receivables at closing.
	settlementsTotal := decimal.Zero
	for _, category := range s.catalog.Settlements {
		line := models.SettlementLine{
			Name:              category.Name,
			ReceivableOpening: opening[receivableKey(category.Name)],
			PayableOpening:    opening[payableKey(category.Name)],
			ReceivableChange: aggregate.PrefixesTotal(category.ReceivablePrefixes, models.SideDebit).
				Sub(aggregate.PrefixesTotal(category.ReceivablePrefixes, models.SideCredit)),
			PayableChange: aggregate.PrefixesTotal(category.PayablePrefixes, models.SideCredit).
				Sub(aggregate.PrefixesTotal(category.PayablePrefixes, models.SideDebit)),
		}
		line.ReceivableClosing = line.ReceivableOpening.Add(line.ReceivableChange)
		line.PayableClosing = line.PayableOpening.Add(line.PayableChange)
		assembled.Settlements = append(assembled.Settlements, line)

		settlementsTotal = settlementsTotal.Add(line.PayableClosing).Sub(line.ReceivableClosing)
	}
	assembled.SettlementsTotal = settlementsTotal

	return assembled
}

// snapshot materializes the assembled report into the cached ReportDetails,
// including the closing balances the next month will open with.
func (s *reportService) snapshot(reportID uuid.UUID, assembled *models.AssembledReport, opening models.BalanceMap) *models.ReportDetails {
	closing := make(models.BalanceMap, len(opening))
	for key, value := range opening {
		closing[key] = value
	}

	for _, line := range assembled.Position {
		closing[positionKey(line.Name)] = line.Closing
	}
	closing[intentionsKey] = assembled.Intentions.Closing
	for _, line := range assembled.Settlements {
		closing[receivableKey(line.Name)] = line.ReceivableClosing
		closing[payableKey(line.Name)] = line.PayableClosing
	}

	return &models.ReportDetails{
		ReportID:         reportID,
		IncomeTotal:      assembled.IncomeTotal,
		ExpenseTotal:     assembled.ExpenseTotal,
		Balance:          assembled.Balance,
		SettlementsTotal: assembled.SettlementsTotal,
		OpeningBalance:   assembled.PositionSaldo.Opening,
		ClosingBalances:  closing,
		GeneratedAt:      time.Now(),
	}
}

const intentionsKey = "intentions"

func positionKey(name string) string {
	return "position:" + name
}

func receivableKey(name string) string {
	return "settlement:receivable:" + name
}

func payableKey(name string) string {
	return "settlement:payable:" + name
}

func nextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}
