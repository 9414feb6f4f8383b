package services

import (
	"errors"

	"parish-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Comparison metrics accepted by CompareReports.
const (
	MetricIncomeTotal      = "income_total"
	MetricExpenseTotal     = "expense_total"
	MetricBalance          = "balance"
	MetricSettlementsTotal = "settlements_total"
)

var ErrUnknownMetric = errors.New("unknown comparison metric")

type comparatorService struct{}

// NewComparatorService creates a new ComparatorServiceInterface instance
func NewComparatorService() ComparatorServiceInterface {
	return &comparatorService{}
}

// Compare computes the period-over-period delta of one metric. The sign
// convention is fixed: any increase is a positive change, for expenses as
// much as for income, so presentation can invert meaning for expenses.
func (s *comparatorService) Compare(metric string, current, previous decimal.Decimal) models.Comparison {
	change := current.Sub(previous)

	changePercent := decimal.Zero
	if !previous.IsZero() {
		changePercent = change.Div(previous.Abs()).Mul(hundred)
	}

	return models.Comparison{
		Metric:        metric,
		Current:       current,
		Previous:      previous,
		Change:        change,
		ChangePercent: changePercent,
	}
}

// CompareReports compares one metric of two assembled reports.
func (s *comparatorService) CompareReports(current, previous *models.AssembledReport, metric string) (models.Comparison, error) {
	currentValue, err := reportMetric(current, metric)
	if err != nil {
		return models.Comparison{}, err
	}
	previousValue, err := reportMetric(previous, metric)
	if err != nil {
		return models.Comparison{}, err
	}
	return s.Compare(metric, currentValue, previousValue), nil
}

func reportMetric(report *models.AssembledReport, metric string) (decimal.Decimal, error) {
	switch metric {
	case MetricIncomeTotal:
		return report.IncomeTotal, nil
	case MetricExpenseTotal:
		return report.ExpenseTotal, nil
	case MetricBalance:
		return report.Balance, nil
	case MetricSettlementsTotal:
		return report.SettlementsTotal, nil
	default:
		return decimal.Zero, ErrUnknownMetric
	}
}
