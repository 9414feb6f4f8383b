package dto

import (
	"time"

	"parish-ledger/internal/models"

	"github.com/google/uuid"
)

// ForecastBudgetRequest represents a request to pre-fill budget items from
// ledger history. The expense adjustment amounts are optional decimal strings.
type ForecastBudgetRequest struct {
	LocationID           string `json:"locationId" validate:"required,location_id"`
	Year                 int    `json:"year" validate:"required,report_year"`
	Method               string `json:"method" validate:"required,forecast_method"`
	AdditionalExpenses   string `json:"additionalExpenses,omitempty"`
	PlannedCostReduction string `json:"plannedCostReduction,omitempty"`
}

// CreateBudgetPlanRequest represents a request to forecast and persist a draft
// annual budget plan
type CreateBudgetPlanRequest struct {
	LocationID           string `json:"locationId" validate:"required,location_id"`
	Year                 int    `json:"year" validate:"required,report_year"`
	Method               string `json:"method" validate:"required,forecast_method"`
	AdditionalExpenses   string `json:"additionalExpenses,omitempty"`
	PlannedCostReduction string `json:"plannedCostReduction,omitempty"`
}

// UpdateBudgetStatusRequest represents a budget plan lifecycle transition request
type UpdateBudgetStatusRequest struct {
	Status string `json:"status" validate:"required,budget_status"`
}

// BudgetItemResponse is one account-level line of a budget plan
type BudgetItemResponse struct {
	ID                 uuid.UUID `json:"id"`
	AccountPrefix      string    `json:"accountPrefix"`
	AccountName        string    `json:"accountName"`
	Kind               string    `json:"kind"`
	PlannedAmount      string    `json:"plannedAmount"`
	PreviousYearAmount string    `json:"previousYearAmount,omitempty"`
}

// BudgetPlanResponse represents a budget plan with its items
type BudgetPlanResponse struct {
	ID         uuid.UUID            `json:"id"`
	LocationID string               `json:"locationId"`
	Year       int                  `json:"year"`
	Status     string               `json:"status"`
	Items      []BudgetItemResponse `json:"items"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

// ToBudgetPlanResponse converts a budget plan model to its response representation
func ToBudgetPlanResponse(plan *models.BudgetPlan) BudgetPlanResponse {
	resp := BudgetPlanResponse{
		ID:         plan.ID,
		LocationID: plan.LocationID,
		Year:       plan.Year,
		Status:     plan.Status,
		Items:      make([]BudgetItemResponse, 0, len(plan.Items)),
		CreatedAt:  plan.CreatedAt,
		UpdatedAt:  plan.UpdatedAt,
	}
	for i := range plan.Items {
		resp.Items = append(resp.Items, ToBudgetItemResponse(&plan.Items[i]))
	}
	return resp
}

// ToBudgetItemResponse converts a budget item model to its response representation
func ToBudgetItemResponse(item *models.BudgetItem) BudgetItemResponse {
	resp := BudgetItemResponse{
		ID:            item.ID,
		AccountPrefix: item.AccountPrefix,
		AccountName:   item.AccountName,
		Kind:          item.Kind,
		PlannedAmount: item.PlannedAmount.StringFixed(2),
	}
	if item.PreviousYearAmount != nil {
		resp.PreviousYearAmount = item.PreviousYearAmount.StringFixed(2)
	}
	return resp
}

// ForecastResponse represents a generated budget proposal before it is saved
type ForecastResponse struct {
	LocationID string               `json:"locationId"`
	Year       int                  `json:"year"`
	Method     string               `json:"method"`
	Items      []BudgetItemResponse `json:"items"`
}

// RealizationResponse is the monthly actual-vs-budget result for one location
type RealizationResponse struct {
	LocationID    string `json:"locationId"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Actual        string `json:"actual"`
	MonthlyBudget string `json:"monthlyBudget"`
	Percentage    string `json:"percentage"`
	Status        string `json:"status"`
}

// ToRealizationResponse converts a realization result to its response representation
func ToRealizationResponse(r *models.Realization) RealizationResponse {
	return RealizationResponse{
		LocationID:    r.LocationID,
		Year:          r.Year,
		Month:         r.Month,
		Actual:        r.Actual.StringFixed(2),
		MonthlyBudget: r.MonthlyBudget.StringFixed(2),
		Percentage:    r.Percentage.StringFixed(2),
		Status:        r.Status,
	}
}
