package repositories

import (
	"context"
	"testing"
	"time"

	"parish-ledger/internal/database"
	"parish-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositorySuite struct {
	suite.Suite
	db     *database.DB
	repo   TransactionRepositoryInterface
	cash   *models.Account
	income *models.Account
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.cash = database.CreateTestAccount(s.T(), s.db, "100", "Kasa domu")
	s.income = database.CreateTestAccount(s.T(), s.db, "701", "Taca")
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionRepositorySuite) TestGetByLocationAndRange_ClosedInterval() {
	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC)

	database.CreateTestTransaction(s.T(), s.db, "WAW-001", from, s.cash, s.income, decimal.NewFromInt(10))
	database.CreateTestTransaction(s.T(), s.db, "WAW-001", to, s.cash, s.income, decimal.NewFromInt(20))
	database.CreateTestTransaction(s.T(), s.db, "WAW-001", to.Add(time.Second), s.cash, s.income, decimal.NewFromInt(40))
	database.CreateTestTransaction(s.T(), s.db, "GDA-002", from, s.cash, s.income, decimal.NewFromInt(80))

	transactions, err := s.repo.GetByLocationAndRange(context.Background(), "WAW-001", from, to)
	s.Require().NoError(err)
	s.Len(transactions, 2)

	// Oldest first, with both leg accounts preloaded.
	s.True(transactions[0].Amount.Equal(decimal.NewFromInt(10)))
	s.Equal("100", transactions[0].DebitAccount.Number)
	s.Equal("701", transactions[0].CreditAccount.Number)
}

func (s *TransactionRepositorySuite) TestFirstTransactionDate() {
	first, err := s.repo.FirstTransactionDate(context.Background(), "WAW-001")
	s.Require().NoError(err)
	s.Nil(first)

	earliest := time.Date(2023, time.March, 2, 0, 0, 0, 0, time.UTC)
	database.CreateTestTransaction(s.T(), s.db, "WAW-001",
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), s.cash, s.income, decimal.NewFromInt(10))
	database.CreateTestTransaction(s.T(), s.db, "WAW-001", earliest, s.cash, s.income, decimal.NewFromInt(20))

	first, err = s.repo.FirstTransactionDate(context.Background(), "WAW-001")
	s.Require().NoError(err)
	s.Require().NotNil(first)
	s.True(first.Equal(earliest))
}

func (s *TransactionRepositorySuite) TestCreate_RejectsNegativeAmount() {
	txn := &models.Transaction{
		Date:            time.Now(),
		DebitAccountID:  s.cash.ID,
		CreditAccountID: s.income.ID,
		Amount:          decimal.NewFromInt(-5),
		LocationID:      "WAW-001",
	}
	s.ErrorIs(s.repo.Create(txn), models.ErrNegativeAmount)
}

func (s *TransactionRepositorySuite) TestCreateBatch() {
	s.NoError(s.repo.CreateBatch(nil))

	batch := []models.Transaction{
		{
			Date:            time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			DebitAccountID:  s.cash.ID,
			CreditAccountID: s.income.ID,
			Amount:          decimal.NewFromInt(10),
			LocationID:      "WAW-001",
		},
		{
			Date:            time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
			DebitAccountID:  s.cash.ID,
			CreditAccountID: s.income.ID,
			Amount:          decimal.NewFromInt(20),
			LocationID:      "WAW-001",
		},
	}
	s.Require().NoError(s.repo.CreateBatch(batch))

	from, to := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	transactions, err := s.repo.GetByLocationAndRange(context.Background(), "WAW-001", from, to)
	s.Require().NoError(err)
	s.Len(transactions, 2)
}
