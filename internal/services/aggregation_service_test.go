package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"parish-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeTransactionRepo serves a fixed transaction set filtered by date range.
type fakeTransactionRepo struct {
	transactions []models.Transaction
	firstDate    *time.Time
	err          error
}

func (f *fakeTransactionRepo) GetByLocationAndRange(ctx context.Context, locationID string, from, to time.Time) ([]models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []models.Transaction
	for _, txn := range f.transactions {
		if txn.LocationID != locationID {
			continue
		}
		if txn.Date.Before(from) || txn.Date.After(to) {
			continue
		}
		result = append(result, txn)
	}
	return result, nil
}

func (f *fakeTransactionRepo) FirstTransactionDate(ctx context.Context, locationID string) (*time.Time, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.firstDate, nil
}

func (f *fakeTransactionRepo) Create(transaction *models.Transaction) error {
	f.transactions = append(f.transactions, *transaction)
	return nil
}

func (f *fakeTransactionRepo) CreateBatch(transactions []models.Transaction) error {
	f.transactions = append(f.transactions, transactions...)
	return nil
}

type fakeRestrictionRepo struct {
	restrictions []models.AccountRestriction
	err          error
}

func (f *fakeRestrictionRepo) GetByCategoryPrefix(ctx context.Context, categoryPrefix string) ([]models.AccountRestriction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []models.AccountRestriction
	for _, r := range f.restrictions {
		if r.LocationCategoryPrefix == categoryPrefix {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRestrictionRepo) Create(restriction *models.AccountRestriction) error {
	f.restrictions = append(f.restrictions, *restriction)
	return nil
}

type AggregationServiceSuite struct {
	suite.Suite
	transactionRepo *fakeTransactionRepo
	restrictionRepo *fakeRestrictionRepo
	service         AggregatorServiceInterface
}

func TestAggregationServiceSuite(t *testing.T) {
	suite.Run(t, new(AggregationServiceSuite))
}

func (s *AggregationServiceSuite) SetupTest() {
	s.transactionRepo = &fakeTransactionRepo{}
	s.restrictionRepo = &fakeRestrictionRepo{}
	s.service = NewAggregationService(s.transactionRepo, s.restrictionRepo, NewClassifierService(), nil)
}

func (s *AggregationServiceSuite) addTransaction(locationID string, date time.Time, debitNumber, creditNumber string, amount int64) {
	s.transactionRepo.transactions = append(s.transactionRepo.transactions, models.Transaction{
		ID:            uuid.New(),
		Date:          date,
		Amount:        decimal.NewFromInt(amount),
		LocationID:    locationID,
		DebitAccount:  models.Account{Number: debitNumber, Name: debitNumber},
		CreditAccount: models.Account{Number: creditNumber, Name: creditNumber},
	})
}

func (s *AggregationServiceSuite) TestAggregate_SumsClassifiedLegs() {
	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	s.addTransaction("WAW-001", jan, "100", "701", 100)
	s.addTransaction("WAW-001", jan.AddDate(0, 0, 5), "401-1", "100", 40)
	s.addTransaction("GDA-002", jan, "100", "701", 999)

	aggregate, err := s.service.AggregateMonth(context.Background(), "WAW-001", 2024, 1)
	s.Require().NoError(err)

	s.True(aggregate.TotalIncome().Equal(decimal.NewFromInt(100)))
	s.True(aggregate.TotalExpense().Equal(decimal.NewFromInt(40)))
	s.True(aggregate.PerCategory[models.CategoryPosition].Equal(decimal.NewFromInt(60)))
	s.Empty(aggregate.Warnings)
}

func (s *AggregationServiceSuite) TestAggregate_ClosedInterval() {
	firstSecond := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	lastSecond := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)
	february := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	s.addTransaction("WAW-001", firstSecond, "100", "701", 10)
	s.addTransaction("WAW-001", lastSecond, "100", "701", 20)
	s.addTransaction("WAW-001", february, "100", "701", 40)

	aggregate, err := s.service.AggregateMonth(context.Background(), "WAW-001", 2024, 1)
	s.Require().NoError(err)
	s.True(aggregate.TotalIncome().Equal(decimal.NewFromInt(30)))
}

func (s *AggregationServiceSuite) TestAggregate_PartitionInvariance() {
	for day := 1; day <= 28; day++ {
		date := time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC)
		s.addTransaction("WAW-001", date, "100", "701", int64(day))
		s.addTransaction("WAW-001", date, "401-1", "100", int64(day%7))
	}

	ctx := context.Background()
	from, to := MonthRange(2024, 3)

	whole, err := s.service.Aggregate(ctx, "WAW-001", from, to)
	s.Require().NoError(err)

	mid := time.Date(2024, time.March, 14, 23, 59, 59, 0, time.UTC)
	first, err := s.service.Aggregate(ctx, "WAW-001", from, mid)
	s.Require().NoError(err)
	second, err := s.service.Aggregate(ctx, "WAW-001", mid.Add(time.Second), to)
	s.Require().NoError(err)

	first.Merge(second)

	s.True(whole.TotalIncome().Equal(first.TotalIncome()))
	s.True(whole.TotalExpense().Equal(first.TotalExpense()))
	s.Equal(len(whole.Accounts), len(first.Accounts))
	for number, bucket := range whole.Accounts {
		s.True(bucket.Debit.Equal(first.Accounts[number].Debit), "debit of %s", number)
		s.True(bucket.Credit.Equal(first.Accounts[number].Credit), "credit of %s", number)
	}
}

func (s *AggregationServiceSuite) TestAggregate_InvalidPeriod() {
	from := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)

	_, err := s.service.Aggregate(context.Background(), "WAW-001", from, to)
	s.ErrorIs(err, ErrInvalidPeriod)
}

func (s *AggregationServiceSuite) TestAggregateMonth_InvalidMonth() {
	_, err := s.service.AggregateMonth(context.Background(), "WAW-001", 2024, 13)
	s.ErrorIs(err, ErrInvalidMonth)

	_, err = s.service.AggregateMonth(context.Background(), "WAW-001", 2024, 0)
	s.ErrorIs(err, ErrInvalidMonth)
}

func (s *AggregationServiceSuite) TestAggregate_TransactionFetchFailure() {
	s.transactionRepo.err = errors.New("connection refused")

	_, err := s.service.AggregateMonth(context.Background(), "WAW-001", 2024, 1)
	s.ErrorIs(err, ErrDataUnavailable)
}

func (s *AggregationServiceSuite) TestAggregate_RestrictionFailureProceedsUnrestricted() {
	s.restrictionRepo.err = errors.New("restriction store down")
	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	s.addTransaction("WAW-001", jan, "100", "701", 100)

	aggregate, err := s.service.AggregateMonth(context.Background(), "WAW-001", 2024, 1)
	s.Require().NoError(err)
	s.True(aggregate.TotalIncome().Equal(decimal.NewFromInt(100)))
}

func (s *AggregationServiceSuite) TestAggregate_RestrictionsApplyByLocationCategory() {
	s.restrictionRepo.restrictions = []models.AccountRestriction{
		{LocationCategoryPrefix: "WAW", AccountNumberPrefix: "701", IsRestricted: true},
	}
	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	s.addTransaction("WAW-001", jan, "100", "701", 100)
	s.addTransaction("WAW-001", jan, "100", "702", 40)

	aggregate, err := s.service.AggregateMonth(context.Background(), "WAW-001", 2024, 1)
	s.Require().NoError(err)
	s.True(aggregate.TotalIncome().Equal(decimal.NewFromInt(40)))
}

func (s *AggregationServiceSuite) TestAggregate_NegativeRowWarnsAndContinues() {
	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	s.addTransaction("WAW-001", jan, "100", "701", 100)

	negative := decimal.NewFromInt(-50)
	s.transactionRepo.transactions = append(s.transactionRepo.transactions, models.Transaction{
		ID:            uuid.New(),
		Date:          jan,
		Amount:        decimal.NewFromInt(50),
		DebitAmount:   &negative,
		LocationID:    "WAW-001",
		DebitAccount:  models.Account{Number: "401-1"},
		CreditAccount: models.Account{Number: "100"},
	})

	aggregate, err := s.service.AggregateMonth(context.Background(), "WAW-001", 2024, 1)
	s.Require().NoError(err)
	s.True(aggregate.TotalIncome().Equal(decimal.NewFromInt(100)))
	s.True(aggregate.TotalExpense().IsZero())
	s.Len(aggregate.Warnings, 1)
}
