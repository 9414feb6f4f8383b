package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"parish-ledger/internal/dto"
	"parish-ledger/internal/errors"
	"parish-ledger/internal/models"
	"parish-ledger/internal/repositories"
	"parish-ledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget plan HTTP requests
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// ForecastBudget projects budget items from ledger history without saving them
// @Summary Forecast budget items
// @Description Project per-account budget items for the target year from historical aggregates
// @Tags Budgets
// @Accept json
// @Produce json
// @Param request body dto.ForecastBudgetRequest true "Forecast parameters"
// @Success 200 {object} dto.ForecastResponse "Projected budget items"
// @Failure 400 {object} errors.ErrorResponse "BUDGET_003 - Invalid forecast method"
// @Router /budgets/forecast [post]
func (h *BudgetHandler) ForecastBudget(c echo.Context) error {
	var req dto.ForecastBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	additional, err := parseAmount(req.AdditionalExpenses)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid additional expenses amount"))
	}
	reduction, err := parseAmount(req.PlannedCostReduction)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid cost reduction amount"))
	}

	items, err := h.budgetService.ForecastBudget(c.Request().Context(), req.LocationID, req.Year, req.Method, additional, reduction)
	if err != nil {
		switch {
		case stderrors.Is(err, models.ErrInvalidForecastMethod):
			return SendError(c, errors.BudgetInvalidMethod)
		case stderrors.Is(err, services.ErrDataUnavailable):
			return SendError(c, errors.LedgerDataUnavailable)
		default:
			return SendSystemError(c, err)
		}
	}

	response := dto.ForecastResponse{
		LocationID: req.LocationID,
		Year:       req.Year,
		Method:     req.Method,
		Items:      make([]dto.BudgetItemResponse, 0, len(items)),
	}
	for i := range items {
		response.Items = append(response.Items, dto.ToBudgetItemResponse(&items[i]))
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// CreateBudgetPlan forecasts and persists a draft annual budget plan
// @Summary Create budget plan
// @Description Forecast budget items and persist them as a draft plan for the location and year
// @Tags Budgets
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetPlanRequest true "Plan parameters"
// @Success 201 {object} dto.BudgetPlanResponse "Created plan"
// @Failure 409 {object} errors.ErrorResponse "BUDGET_002 - Plan already exists for location and year"
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudgetPlan(c echo.Context) error {
	var req dto.CreateBudgetPlanRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	additional, err := parseAmount(req.AdditionalExpenses)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid additional expenses amount"))
	}
	reduction, err := parseAmount(req.PlannedCostReduction)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid cost reduction amount"))
	}

	plan, err := h.budgetService.CreateBudgetPlan(c.Request().Context(), req.LocationID, req.Year, req.Method, additional, reduction)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrDuplicatePlan):
			return SendError(c, errors.BudgetDuplicatePlan)
		case stderrors.Is(err, models.ErrInvalidForecastMethod):
			return SendError(c, errors.BudgetInvalidMethod)
		case stderrors.Is(err, services.ErrDataUnavailable):
			return SendError(c, errors.LedgerDataUnavailable)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.ToBudgetPlanResponse(plan),
		Message: "Budget plan created",
	})
}

// UpdateBudgetStatus moves a plan through draft, submitted, and approved
// @Summary Update budget plan status
// @Description Transition a budget plan through its lifecycle
// @Tags Budgets
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID (UUID)"
// @Param request body dto.UpdateBudgetStatusRequest true "Target status"
// @Success 200 {object} dto.BudgetPlanResponse "Updated plan"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Plan not found"
// @Failure 422 {object} errors.ErrorResponse "BUDGET_005 - Invalid status transition"
// @Router /budgets/{planId}/status [patch]
func (h *BudgetHandler) UpdateBudgetStatus(c echo.Context) error {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid plan ID"))
	}

	var req dto.UpdateBudgetStatusRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	plan, err := h.budgetService.UpdateBudgetStatus(planID, req.Status)
	if err != nil {
		switch {
		case stderrors.Is(err, repositories.ErrBudgetPlanNotFound):
			return SendError(c, errors.BudgetPlanNotFound)
		case stderrors.Is(err, models.ErrInvalidBudgetStatus):
			return SendError(c, errors.BudgetInvalidStatus)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.ToBudgetPlanResponse(plan),
		Message: "Budget plan status updated",
	})
}

// GetRealization compares the month's actual expenses against the approved plan
// @Summary Get budget realization
// @Description Compare the month's actual expense total against the approved plan's monthly budget
// @Tags Budgets
// @Produce json
// @Param locationId path string true "Location ID"
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} dto.RealizationResponse "Realization result"
// @Failure 422 {object} errors.ErrorResponse "BUDGET_004 - No approved plan for the year"
// @Router /locations/{locationId}/budgets/{year}/realization/{month} [get]
func (h *BudgetHandler) GetRealization(c echo.Context) error {
	locationID := c.Param("locationId")
	if locationID == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("Location ID is required"))
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid year"))
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid month"))
	}

	realization, err := h.budgetService.Realization(c.Request().Context(), locationID, year, month)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrInvalidMonth):
			return SendError(c, errors.PeriodInvalidMonth)
		case stderrors.Is(err, services.ErrNoApprovedPlan):
			return SendError(c, errors.BudgetNoApprovedPlan)
		case stderrors.Is(err, services.ErrDataUnavailable):
			return SendError(c, errors.LedgerDataUnavailable)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.ToRealizationResponse(realization)})
}
