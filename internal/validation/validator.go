package validation

import (
	"reflect"
	"regexp"
	"strings"

	"parish-ledger/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("location_id", validateLocationID)
	_ = v.RegisterValidation("report_month", validateReportMonth)
	_ = v.RegisterValidation("report_year", validateReportYear)
	_ = v.RegisterValidation("forecast_method", validateForecastMethod)
	_ = v.RegisterValidation("report_status", validateReportStatus)
	_ = v.RegisterValidation("budget_status", validateBudgetStatus)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateAccountNumber validates that an account number is hyphen-segmented digits
// e.g. "401", "401-2", "401-2-1"
func validateAccountNumber(fl validator.FieldLevel) bool {
	return models.IsValidAccountNumber(fl.Field().String())
}

// validateLocationID validates a location identifier like "WAW-001"
func validateLocationID(fl validator.FieldLevel) bool {
	locationID := fl.Field().String()
	if locationID == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`, locationID)
	return matched
}

// validateReportMonth validates that a month is between 1 and 12
func validateReportMonth(fl validator.FieldLevel) bool {
	month := fl.Field().Int()
	return month >= 1 && month <= 12
}

// validateReportYear validates that a year is within a sane reporting range
func validateReportYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 1990 && year <= 2100
}

// validateForecastMethod validates that a forecast method is one of the supported methods
func validateForecastMethod(fl validator.FieldLevel) bool {
	return models.IsValidForecastMethod(fl.Field().String())
}

// validateReportStatus validates that a report status is one of the allowed statuses
func validateReportStatus(fl validator.FieldLevel) bool {
	status := strings.ToLower(fl.Field().String())
	validStatuses := map[string]bool{
		models.ReportStatusDraft:         true,
		models.ReportStatusSubmitted:     true,
		models.ReportStatusApproved:      true,
		models.ReportStatusToBeCorrected: true,
	}
	return validStatuses[status]
}

// validateBudgetStatus validates that a budget plan status is one of the allowed statuses
func validateBudgetStatus(fl validator.FieldLevel) bool {
	status := strings.ToLower(fl.Field().String())
	validStatuses := map[string]bool{
		models.BudgetStatusDraft:     true,
		models.BudgetStatusSubmitted: true,
		models.BudgetStatusApproved:  true,
	}
	return validStatuses[status]
}
