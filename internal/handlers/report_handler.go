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

// ReportHandler handles monthly report HTTP requests
type ReportHandler struct {
	reportService     services.ReportServiceInterface
	comparatorService services.ComparatorServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	reportService services.ReportServiceInterface,
	comparatorService services.ComparatorServiceInterface,
) *ReportHandler {
	return &ReportHandler{
		reportService:     reportService,
		comparatorService: comparatorService,
	}
}

// GetReport assembles the five-section monthly report for one location
// @Summary Get monthly report
// @Description Assemble the monthly report for a location, carrying balances forward from the previous snapshot
// @Tags Reports
// @Produce json
// @Param locationId path string true "Location ID"
// @Param year path int true "Report year"
// @Param month path int true "Report month (1-12)"
// @Success 200 {object} dto.AssembledReportResponse "Assembled report"
// @Failure 400 {object} errors.ErrorResponse "PERIOD_002 - Invalid month"
// @Failure 503 {object} errors.ErrorResponse "LEDGER_001 - Ledger data unavailable"
// @Router /locations/{locationId}/reports/{year}/{month} [get]
func (h *ReportHandler) GetReport(c echo.Context) error {
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

	assembled, err := h.reportService.AssembleReport(c.Request().Context(), locationID, month, year)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrInvalidMonth):
			return SendError(c, errors.PeriodInvalidMonth)
		case stderrors.Is(err, services.ErrInvalidPeriod):
			return SendError(c, errors.PeriodInvalidRange)
		case stderrors.Is(err, services.ErrDataUnavailable):
			return SendError(c, errors.LedgerDataUnavailable)
		default:
			return SendSystemError(c, err)
		}
	}

	response := dto.ToAssembledReportResponse(assembled)
	return c.JSON(http.StatusOK, SuccessResponse{Data: response})
}

// UpdateReportStatus moves a report through its lifecycle
// @Summary Update report status
// @Description Transition a report between draft, submitted, approved, and to_be_corrected
// @Tags Reports
// @Accept json
// @Produce json
// @Param reportId path string true "Report ID (UUID)"
// @Param request body dto.UpdateReportStatusRequest true "Target status"
// @Success 200 {object} dto.ReportResponse "Updated report"
// @Failure 404 {object} errors.ErrorResponse "REPORT_001 - Report not found"
// @Failure 422 {object} errors.ErrorResponse "REPORT_002 - Invalid status transition"
// @Router /reports/{reportId}/status [patch]
func (h *ReportHandler) UpdateReportStatus(c echo.Context) error {
	reportID, err := uuid.Parse(c.Param("reportId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid report ID"))
	}

	var req dto.UpdateReportStatusRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.reportService.UpdateReportStatus(reportID, req.Status)
	if err != nil {
		switch {
		case stderrors.Is(err, repositories.ErrReportNotFound):
			return SendError(c, errors.ReportNotFound)
		case stderrors.Is(err, models.ErrInvalidReportStatus):
			return SendError(c, errors.ReportInvalidStatus)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.ToReportResponse(report),
		Message: "Report status updated",
	})
}

// CompareReports compares one metric between two assembled reports
// @Summary Compare report periods
// @Description Assemble two periods of one location and compare a single metric between them
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body dto.CompareRequest true "Comparison parameters"
// @Success 200 {object} dto.ComparisonResponse "Comparison result"
// @Failure 400 {object} errors.ErrorResponse "REPORT_004 - Unknown metric"
// @Router /reports/compare [post]
func (h *ReportHandler) CompareReports(c echo.Context) error {
	var req dto.CompareRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	current, err := h.reportService.AssembleReport(ctx, req.LocationID, req.Current.Month, req.Current.Year)
	if err != nil {
		return h.assembleError(c, err)
	}
	previous, err := h.reportService.AssembleReport(ctx, req.LocationID, req.Previous.Month, req.Previous.Year)
	if err != nil {
		return h.assembleError(c, err)
	}

	comparison, err := h.comparatorService.CompareReports(current, previous, req.Metric)
	if err != nil {
		if stderrors.Is(err, services.ErrUnknownMetric) {
			return SendError(c, errors.ReportUnknownMetric)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.ToComparisonResponse(&comparison)})
}

func (h *ReportHandler) assembleError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrInvalidMonth):
		return SendError(c, errors.PeriodInvalidMonth)
	case stderrors.Is(err, services.ErrDataUnavailable):
		return SendError(c, errors.LedgerDataUnavailable)
	default:
		return SendSystemError(c, err)
	}
}
