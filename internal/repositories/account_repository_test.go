package repositories

import (
	"testing"

	"parish-ledger/internal/database"
	"parish-ledger/internal/models"

	"github.com/stretchr/testify/suite"
)

type AccountRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo AccountRepositoryInterface
}

func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountRepositorySuite))
}

func (s *AccountRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAccountRepository(s.db.DB)
}

func (s *AccountRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AccountRepositorySuite) TestGetByNumber() {
	database.CreateTestAccount(s.T(), s.db, "701", "Ofiary niedzielne")

	account, err := s.repo.GetByNumber("701")
	s.Require().NoError(err)
	s.Equal("Ofiary niedzielne", account.Name)
	s.Equal(models.AccountKindIncome, account.Kind)

	_, err = s.repo.GetByNumber("999")
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestGetByNumbers() {
	database.CreateTestAccount(s.T(), s.db, "701", "Ofiary niedzielne")
	database.CreateTestAccount(s.T(), s.db, "401", "Energia elektryczna")

	accounts, err := s.repo.GetByNumbers([]string{"701", "401", "999"})
	s.Require().NoError(err)
	s.Require().Len(accounts, 2)
	s.Equal("401", accounts[0].Number)
	s.Equal("701", accounts[1].Number)

	accounts, err = s.repo.GetByNumbers(nil)
	s.Require().NoError(err)
	s.Empty(accounts)
}

func (s *AccountRepositorySuite) TestGetAll_OrderedByNumber() {
	database.CreateTestAccount(s.T(), s.db, "701", "Ofiary niedzielne")
	database.CreateTestAccount(s.T(), s.db, "100", "Kasa domu")
	database.CreateTestAccount(s.T(), s.db, "401", "Energia elektryczna")

	accounts, err := s.repo.GetAll()
	s.Require().NoError(err)
	s.Require().Len(accounts, 3)
	s.Equal("100", accounts[0].Number)
	s.Equal("401", accounts[1].Number)
	s.Equal("701", accounts[2].Number)
}

func (s *AccountRepositorySuite) TestCreate_InfersKind() {
	err := s.repo.Create(&models.Account{Number: "204-1", Name: "Rozrachunki z kuria"})
	s.Require().NoError(err)

	account, err := s.repo.GetByNumber("204-1")
	s.Require().NoError(err)
	s.Equal(models.AccountKindLiability, account.Kind)
}
