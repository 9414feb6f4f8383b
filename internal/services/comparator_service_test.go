package services

import (
	"testing"

	"parish-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ComparatorServiceSuite struct {
	suite.Suite
	service ComparatorServiceInterface
}

func TestComparatorServiceSuite(t *testing.T) {
	suite.Run(t, new(ComparatorServiceSuite))
}

func (s *ComparatorServiceSuite) SetupTest() {
	s.service = NewComparatorService()
}

func (s *ComparatorServiceSuite) TestCompare() {
	testCases := []struct {
		name            string
		current         int64
		previous        int64
		expectedChange  int64
		expectedPercent string
	}{
		{"increase", 150, 100, 50, "50"},
		{"decrease", 80, 100, -20, "-20"},
		{"unchanged", 100, 100, 0, "0"},
		{"zero previous", 100, 0, 100, "0"},
		{"negative previous", 50, -100, 150, "150"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cmp := s.service.Compare(MetricIncomeTotal,
				decimal.NewFromInt(tc.current), decimal.NewFromInt(tc.previous))

			s.True(cmp.Change.Equal(decimal.NewFromInt(tc.expectedChange)))
			expectedPercent, err := decimal.NewFromString(tc.expectedPercent)
			s.Require().NoError(err)
			s.True(cmp.ChangePercent.Equal(expectedPercent), "got %s", cmp.ChangePercent)
		})
	}
}

func (s *ComparatorServiceSuite) TestCompareReports() {
	current := &models.AssembledReport{
		IncomeTotal:  decimal.NewFromInt(300),
		ExpenseTotal: decimal.NewFromInt(120),
		Balance:      decimal.NewFromInt(180),
	}
	previous := &models.AssembledReport{
		IncomeTotal:  decimal.NewFromInt(200),
		ExpenseTotal: decimal.NewFromInt(100),
		Balance:      decimal.NewFromInt(100),
	}

	cmp, err := s.service.CompareReports(current, previous, MetricExpenseTotal)
	s.Require().NoError(err)
	s.True(cmp.Change.Equal(decimal.NewFromInt(20)))
	s.True(cmp.ChangePercent.Equal(decimal.NewFromInt(20)))

	cmp, err = s.service.CompareReports(current, previous, MetricBalance)
	s.Require().NoError(err)
	s.True(cmp.Change.Equal(decimal.NewFromInt(80)))
}

func (s *ComparatorServiceSuite) TestCompareReports_UnknownMetric() {
	_, err := s.service.CompareReports(&models.AssembledReport{}, &models.AssembledReport{}, "warnings")
	s.ErrorIs(err, ErrUnknownMetric)
}
