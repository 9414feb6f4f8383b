package handlers

import (
	"net/http"
	"strconv"

	"parish-ledger/internal/errors"
	"parish-ledger/internal/models"
	"parish-ledger/internal/repositories"
	"parish-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	transactionRepo repositories.TransactionRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	generator       services.LedgerGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(
	transactionRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	generator services.LedgerGeneratorInterface,
) *DevHandler {
	return &DevHandler{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		generator:       generator,
	}
}

// SeedLedgerMonth generates a plausible month of sample transactions for a location
//
// Method: POST /api/v1/dev/locations/:locationId/seed/:year/:month
// Environment: Development only
//
// Query parameters:
//   - count: Number of transactions to generate (default: 100, max: 1000)
func (h *DevHandler) SeedLedgerMonth(c echo.Context) error {
	locationID := c.Param("locationId")
	if locationID == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Location ID is required"))
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid year"))
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return SendError(c, errors.PeriodInvalidMonth)
	}

	count := getIntParam(c, "count", 100)
	if count < 1 {
		count = 1
	}
	if count > 1000 {
		count = 1000
	}

	accounts, err := h.accountRepo.GetAll()
	if err != nil {
		return SendSystemError(c, err)
	}
	if len(accounts) == 0 {
		return SendError(c, errors.LedgerAccountNotFound, errors.WithDetails("No accounts to post against; seed the chart of accounts first"))
	}

	transactions := h.generator.GenerateMonth(accounts, locationID, year, month, count)
	if err := h.transactionRepo.CreateBatch(transactions); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Sample ledger month generated",
		Meta: map[string]int{
			"transactions_created": len(transactions),
		},
	})
}

// SeedChartOfAccounts inserts the default catalogue accounts for development use
//
// Method: POST /api/v1/dev/accounts/seed
// Environment: Development only
func (h *DevHandler) SeedChartOfAccounts(c echo.Context) error {
	catalog := models.DefaultCatalog()
	accounts := catalog.SeedAccounts()

	created := 0
	for i := range accounts {
		if _, err := h.accountRepo.GetByNumber(accounts[i].Number); err == nil {
			continue
		}
		if err := h.accountRepo.Create(&accounts[i]); err != nil {
			return SendSystemError(c, err)
		}
		created++
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Chart of accounts seeded",
		Meta: map[string]int{
			"accounts_created": created,
		},
	})
}
