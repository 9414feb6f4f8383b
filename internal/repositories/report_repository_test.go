package repositories

import (
	"context"
	"testing"
	"time"

	"parish-ledger/internal/database"
	"parish-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo ReportRepositoryInterface
}

func TestReportRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReportRepositorySuite))
}

func (s *ReportRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewReportRepository(s.db.DB)
}

func (s *ReportRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ReportRepositorySuite) details(reportID uuid.UUID, income int64) *models.ReportDetails {
	return &models.ReportDetails{
		ReportID:    reportID,
		IncomeTotal: decimal.NewFromInt(income),
		ClosingBalances: models.BalanceMap{
			"position:Kasa domu": decimal.NewFromInt(income),
		},
		GeneratedAt: time.Now(),
	}
}

func (s *ReportRepositorySuite) TestGetOrCreate_Idempotent() {
	first, err := s.repo.GetOrCreate("WAW-001", 6, 2024)
	s.Require().NoError(err)
	s.Equal(models.ReportStatusDraft, first.Status)

	second, err := s.repo.GetOrCreate("WAW-001", 6, 2024)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)

	other, err := s.repo.GetOrCreate("WAW-001", 7, 2024)
	s.Require().NoError(err)
	s.NotEqual(first.ID, other.ID)
}

func (s *ReportRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrReportNotFound)
}

func (s *ReportRepositorySuite) TestUpdateStatus() {
	report, err := s.repo.GetOrCreate("WAW-001", 6, 2024)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.UpdateStatus(report.ID, models.ReportStatusSubmitted))

	updated, err := s.repo.GetByID(report.ID)
	s.Require().NoError(err)
	s.Equal(models.ReportStatusSubmitted, updated.Status)

	s.ErrorIs(s.repo.UpdateStatus(uuid.New(), models.ReportStatusSubmitted), ErrReportNotFound)
}

func (s *ReportRepositorySuite) TestUpsertDetails_FullReplace() {
	report, err := s.repo.GetOrCreate("WAW-001", 6, 2024)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.UpsertDetails(s.details(report.ID, 100)))
	s.Require().NoError(s.repo.UpsertDetails(s.details(report.ID, 250)))

	details, err := s.repo.GetDetails(report.ID)
	s.Require().NoError(err)
	s.True(details.IncomeTotal.Equal(decimal.NewFromInt(250)))
	s.True(details.ClosingBalances["position:Kasa domu"].Equal(decimal.NewFromInt(250)))
}

func (s *ReportRepositorySuite) TestDeleteDetails() {
	report, err := s.repo.GetOrCreate("WAW-001", 6, 2024)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.UpsertDetails(s.details(report.ID, 100)))

	s.Require().NoError(s.repo.DeleteDetails(report.ID))

	_, err = s.repo.GetDetails(report.ID)
	s.ErrorIs(err, ErrReportDetailsNotFound)
}

func (s *ReportRepositorySuite) TestGetLatestDetailsBefore() {
	ctx := context.Background()

	// No snapshots at all.
	report, details, err := s.repo.GetLatestDetailsBefore(ctx, "WAW-001", 2024, 7)
	s.Require().NoError(err)
	s.Nil(report)
	s.Nil(details)

	may, err := s.repo.GetOrCreate("WAW-001", 5, 2024)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.UpsertDetails(s.details(may.ID, 50)))

	june, err := s.repo.GetOrCreate("WAW-001", 6, 2024)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.UpsertDetails(s.details(june.ID, 60)))

	// A report without a snapshot must not be picked.
	_, err = s.repo.GetOrCreate("WAW-001", 7, 2024)
	s.Require().NoError(err)

	// Another location's snapshot must not leak in.
	other, err := s.repo.GetOrCreate("GDA-002", 6, 2024)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.UpsertDetails(s.details(other.ID, 999)))

	report, details, err = s.repo.GetLatestDetailsBefore(ctx, "WAW-001", 2024, 8)
	s.Require().NoError(err)
	s.Require().NotNil(report)
	s.Equal(june.ID, report.ID)
	s.True(details.IncomeTotal.Equal(decimal.NewFromInt(60)))

	// Strictly before: the June snapshot is invisible to June itself.
	report, _, err = s.repo.GetLatestDetailsBefore(ctx, "WAW-001", 2024, 6)
	s.Require().NoError(err)
	s.Require().NotNil(report)
	s.Equal(may.ID, report.ID)
}

func (s *ReportRepositorySuite) TestGetLatestDetailsBefore_AcrossYears() {
	december, err := s.repo.GetOrCreate("WAW-001", 12, 2023)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.UpsertDetails(s.details(december.ID, 120)))

	report, _, err := s.repo.GetLatestDetailsBefore(context.Background(), "WAW-001", 2024, 1)
	s.Require().NoError(err)
	s.Require().NotNil(report)
	s.Equal(december.ID, report.ID)
}
