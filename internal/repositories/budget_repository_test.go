package repositories

import (
	"testing"

	"parish-ledger/internal/database"
	"parish-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo BudgetRepositoryInterface
}

func TestBudgetRepositorySuite(t *testing.T) {
	suite.Run(t, new(BudgetRepositorySuite))
}

func (s *BudgetRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBudgetRepository(s.db.DB)
}

func (s *BudgetRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *BudgetRepositorySuite) item(prefix, name, kind string, amount int64) models.BudgetItem {
	return models.BudgetItem{
		AccountPrefix: prefix,
		AccountName:   name,
		Kind:          kind,
		PlannedAmount: decimal.NewFromInt(amount),
	}
}

func (s *BudgetRepositorySuite) TestCreateWithItems() {
	plan := &models.BudgetPlan{LocationID: "WAW-001", Year: 2025}
	items := []models.BudgetItem{
		s.item("701", "Ofiary niedzielne", models.AccountKindIncome, 1200),
		s.item("401", "Energia elektryczna", models.AccountKindExpense, 600),
	}
	s.Require().NoError(s.repo.CreateWithItems(plan, items))
	s.Equal(models.BudgetStatusDraft, plan.Status)

	loaded, err := s.repo.GetByID(plan.ID)
	s.Require().NoError(err)
	s.Len(loaded.Items, 2)
	for _, item := range loaded.Items {
		s.Equal(plan.ID, item.PlanID)
	}
}

func (s *BudgetRepositorySuite) TestCreateWithItems_DuplicateLeavesNoItems() {
	first := &models.BudgetPlan{LocationID: "WAW-001", Year: 2025}
	s.Require().NoError(s.repo.CreateWithItems(first, []models.BudgetItem{
		s.item("701", "Ofiary niedzielne", models.AccountKindIncome, 1200),
	}))

	duplicate := &models.BudgetPlan{LocationID: "WAW-001", Year: 2025}
	err := s.repo.CreateWithItems(duplicate, []models.BudgetItem{
		s.item("401", "Energia elektryczna", models.AccountKindExpense, 600),
	})
	s.ErrorIs(err, ErrDuplicateBudgetPlan)

	var count int64
	s.Require().NoError(s.db.Model(&models.BudgetItem{}).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *BudgetRepositorySuite) TestGetByLocationAndYear() {
	plan := &models.BudgetPlan{LocationID: "WAW-001", Year: 2025}
	s.Require().NoError(s.repo.CreateWithItems(plan, []models.BudgetItem{
		s.item("701", "Ofiary niedzielne", models.AccountKindIncome, 1200),
	}))

	loaded, err := s.repo.GetByLocationAndYear("WAW-001", 2025)
	s.Require().NoError(err)
	s.Equal(plan.ID, loaded.ID)
	s.Len(loaded.Items, 1)

	_, err = s.repo.GetByLocationAndYear("WAW-001", 2026)
	s.ErrorIs(err, ErrBudgetPlanNotFound)

	_, err = s.repo.GetByLocationAndYear("GDA-002", 2025)
	s.ErrorIs(err, ErrBudgetPlanNotFound)
}

func (s *BudgetRepositorySuite) TestInsertItems_DraftOnly() {
	plan := &models.BudgetPlan{LocationID: "WAW-001", Year: 2025}
	s.Require().NoError(s.repo.CreateWithItems(plan, nil))

	s.Require().NoError(s.repo.InsertItems(plan.ID, []models.BudgetItem{
		s.item("402", "Woda i kanalizacja", models.AccountKindExpense, 300),
	}))

	s.Require().NoError(s.repo.UpdateStatus(plan.ID, models.BudgetStatusSubmitted))

	err := s.repo.InsertItems(plan.ID, []models.BudgetItem{
		s.item("403", "Ogrzewanie", models.AccountKindExpense, 900),
	})
	s.ErrorIs(err, models.ErrBudgetNotDraft)

	loaded, err := s.repo.GetByID(plan.ID)
	s.Require().NoError(err)
	s.Len(loaded.Items, 1)
}

func (s *BudgetRepositorySuite) TestInsertItems_PlanNotFound() {
	err := s.repo.InsertItems(uuid.New(), []models.BudgetItem{
		s.item("401", "Energia elektryczna", models.AccountKindExpense, 600),
	})
	s.ErrorIs(err, ErrBudgetPlanNotFound)
}

func (s *BudgetRepositorySuite) TestUpdateStatus_NotFound() {
	s.ErrorIs(s.repo.UpdateStatus(uuid.New(), models.BudgetStatusApproved), ErrBudgetPlanNotFound)
}
