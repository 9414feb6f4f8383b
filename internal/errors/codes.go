package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Period error codes (PERIOD_*)
const (
	PeriodInvalidRange ErrorCode = "PERIOD_001"
	PeriodInvalidMonth ErrorCode = "PERIOD_002"
)

// Report error codes (REPORT_*)
const (
	ReportNotFound          ErrorCode = "REPORT_001"
	ReportInvalidStatus     ErrorCode = "REPORT_002"
	ReportSnapshotNotFound  ErrorCode = "REPORT_003"
	ReportUnknownMetric     ErrorCode = "REPORT_004"
)

// Budget error codes (BUDGET_*)
const (
	BudgetPlanNotFound      ErrorCode = "BUDGET_001"
	BudgetDuplicatePlan     ErrorCode = "BUDGET_002"
	BudgetInvalidMethod     ErrorCode = "BUDGET_003"
	BudgetNoApprovedPlan    ErrorCode = "BUDGET_004"
	BudgetInvalidStatus     ErrorCode = "BUDGET_005"
)

// Ledger error codes (LEDGER_*)
const (
	LedgerDataUnavailable  ErrorCode = "LEDGER_001"
	LedgerAccountNotFound  ErrorCode = "LEDGER_002"
	LedgerInvalidAccount   ErrorCode = "LEDGER_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// Period errors
	PeriodInvalidRange: "Period start must not be after period end",
	PeriodInvalidMonth: "Month must be between 1 and 12",

	// Report errors
	ReportNotFound:         "Report not found",
	ReportInvalidStatus:    "Report status transition not permitted",
	ReportSnapshotNotFound: "Report snapshot not found",
	ReportUnknownMetric:    "Unknown comparison metric",

	// Budget errors
	BudgetPlanNotFound:   "Budget plan not found",
	BudgetDuplicatePlan:  "A budget plan already exists for this location and year",
	BudgetInvalidMethod:  "Invalid budget forecast method",
	BudgetNoApprovedPlan: "No approved budget plan for this location and year",
	BudgetInvalidStatus:  "Budget plan status transition not permitted",

	// Ledger errors
	LedgerDataUnavailable: "Ledger data is temporarily unavailable",
	LedgerAccountNotFound: "Account not found",
	LedgerInvalidAccount:  "Invalid account number",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
