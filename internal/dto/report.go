package dto

import (
	"time"

	"parish-ledger/internal/models"

	"github.com/google/uuid"
)

// ReportPeriod identifies one month of one location.
type ReportPeriod struct {
	Year  int `json:"year" validate:"required,report_year"`
	Month int `json:"month" validate:"required,report_month"`
}

// UpdateReportStatusRequest represents a report lifecycle transition request
type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,report_status"`
}

// ReportResponse represents a report without its assembled sections
type ReportResponse struct {
	ID         uuid.UUID `json:"id"`
	LocationID string    `json:"locationId"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToReportResponse converts a report model to its response representation
func ToReportResponse(report *models.Report) ReportResponse {
	return ReportResponse{
		ID:         report.ID,
		LocationID: report.LocationID,
		Month:      report.Month,
		Year:       report.Year,
		Status:     report.Status,
		CreatedAt:  report.CreatedAt,
		UpdatedAt:  report.UpdatedAt,
	}
}

// SectionLineResponse is one income or expense catalogue row
type SectionLineResponse struct {
	Prefix string `json:"prefix"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// PositionLineResponse is one cash/bank category row
type PositionLineResponse struct {
	Name    string `json:"name"`
	Opening string `json:"opening"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Closing string `json:"closing"`
}

// IntentionsResponse is the carried mass-intentions balance
type IntentionsResponse struct {
	Opening            string `json:"opening"`
	Received           string `json:"received"`
	CelebratedAndGiven string `json:"celebratedAndGiven"`
	Closing            string `json:"closing"`
}

// SettlementLineResponse is one receivables/payables matrix row
type SettlementLineResponse struct {
	Name              string `json:"name"`
	ReceivableOpening string `json:"receivableOpening"`
	ReceivableChange  string `json:"receivableChange"`
	ReceivableClosing string `json:"receivableClosing"`
	PayableOpening    string `json:"payableOpening"`
	PayableChange     string `json:"payableChange"`
	PayableClosing    string `json:"payableClosing"`
}

// WarningResponse is one classification warning attached to a report
type WarningResponse struct {
	TransactionID uuid.UUID `json:"transactionId"`
	Reason        string    `json:"reason"`
}

// AssembledReportResponse represents the full five-section monthly report
type AssembledReportResponse struct {
	ReportID         uuid.UUID                `json:"reportId"`
	LocationID       string                   `json:"locationId"`
	Month            int                      `json:"month"`
	Year             int                      `json:"year"`
	Status           string                   `json:"status"`
	Income           []SectionLineResponse    `json:"income"`
	IncomeTotal      string                   `json:"incomeTotal"`
	Expense          []SectionLineResponse    `json:"expense"`
	ExpenseTotal     string                   `json:"expenseTotal"`
	Balance          string                   `json:"balance"`
	Position         []PositionLineResponse   `json:"position"`
	PositionSaldo    PositionLineResponse     `json:"positionSaldo"`
	Intentions       IntentionsResponse       `json:"intentions"`
	Settlements      []SettlementLineResponse `json:"settlements"`
	SettlementsTotal string                   `json:"settlementsTotal"`
	Warnings         []WarningResponse        `json:"warnings,omitempty"`
	GeneratedAt      time.Time                `json:"generatedAt"`
}

// ToAssembledReportResponse converts an assembled report to its response representation
func ToAssembledReportResponse(report *models.AssembledReport) AssembledReportResponse {
	resp := AssembledReportResponse{
		ReportID:         report.ReportID,
		LocationID:       report.LocationID,
		Month:            report.Month,
		Year:             report.Year,
		Status:           report.Status,
		Income:           make([]SectionLineResponse, 0, len(report.Income)),
		IncomeTotal:      report.IncomeTotal.StringFixed(2),
		Expense:          make([]SectionLineResponse, 0, len(report.Expense)),
		ExpenseTotal:     report.ExpenseTotal.StringFixed(2),
		Balance:          report.Balance.StringFixed(2),
		Position:         make([]PositionLineResponse, 0, len(report.Position)),
		PositionSaldo:    toPositionLineResponse(report.PositionSaldo),
		Settlements:      make([]SettlementLineResponse, 0, len(report.Settlements)),
		SettlementsTotal: report.SettlementsTotal.StringFixed(2),
		GeneratedAt:      report.GeneratedAt,
	}

	for _, line := range report.Income {
		resp.Income = append(resp.Income, SectionLineResponse{
			Prefix: line.Prefix,
			Name:   line.Name,
			Amount: line.Amount.StringFixed(2),
		})
	}
	for _, line := range report.Expense {
		resp.Expense = append(resp.Expense, SectionLineResponse{
			Prefix: line.Prefix,
			Name:   line.Name,
			Amount: line.Amount.StringFixed(2),
		})
	}
	for _, line := range report.Position {
		resp.Position = append(resp.Position, toPositionLineResponse(line))
	}

	resp.Intentions = IntentionsResponse{
		Opening:            report.Intentions.Opening.StringFixed(2),
		Received:           report.Intentions.Received.StringFixed(2),
		CelebratedAndGiven: report.Intentions.CelebratedAndGiven.StringFixed(2),
		Closing:            report.Intentions.Closing.StringFixed(2),
	}

	for _, line := range report.Settlements {
		resp.Settlements = append(resp.Settlements, SettlementLineResponse{
			Name:              line.Name,
			ReceivableOpening: line.ReceivableOpening.StringFixed(2),
			ReceivableChange:  line.ReceivableChange.StringFixed(2),
			ReceivableClosing: line.ReceivableClosing.StringFixed(2),
			PayableOpening:    line.PayableOpening.StringFixed(2),
			PayableChange:     line.PayableChange.StringFixed(2),
			PayableClosing:    line.PayableClosing.StringFixed(2),
		})
	}

	for _, warning := range report.Warnings {
		resp.Warnings = append(resp.Warnings, WarningResponse{
			TransactionID: warning.TransactionID,
			Reason:        warning.Reason,
		})
	}

	return resp
}

func toPositionLineResponse(line models.PositionLine) PositionLineResponse {
	return PositionLineResponse{
		Name:    line.Name,
		Opening: line.Opening.StringFixed(2),
		Income:  line.Income.StringFixed(2),
		Expense: line.Expense.StringFixed(2),
		Closing: line.Closing.StringFixed(2),
	}
}

// CompareRequest represents a request to compare one report metric across two periods
type CompareRequest struct {
	LocationID string       `json:"locationId" validate:"required,location_id"`
	Metric     string       `json:"metric" validate:"required"`
	Current    ReportPeriod `json:"current" validate:"required"`
	Previous   ReportPeriod `json:"previous" validate:"required"`
}

// ComparisonResponse is the delta of one metric between two periods
type ComparisonResponse struct {
	Metric        string `json:"metric"`
	Current       string `json:"current"`
	Previous      string `json:"previous"`
	Change        string `json:"change"`
	ChangePercent string `json:"changePercent"`
}

// ToComparisonResponse converts a comparison to its response representation
func ToComparisonResponse(cmp *models.Comparison) ComparisonResponse {
	return ComparisonResponse{
		Metric:        cmp.Metric,
		Current:       cmp.Current.StringFixed(2),
		Previous:      cmp.Previous.StringFixed(2),
		Change:        cmp.Change.StringFixed(2),
		ChangePercent: cmp.ChangePercent.StringFixed(2),
	}
}
