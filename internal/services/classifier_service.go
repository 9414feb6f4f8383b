package services

import (
	"strings"

	"parish-ledger/internal/models"
)

// settlementPrefix is excluded from P&L entirely and routed to the
// receivables/payables category instead.
const settlementPrefix = "200"

type classifierService struct{}

// NewClassifierService creates a new ClassifierServiceInterface instance
func NewClassifierService() ClassifierServiceInterface {
	return &classifierService{}
}

// ClassifyTransaction evaluates both legs of a transaction against the
// classification rules. Restrictions are checked before any rule; a
// restricted leg is dropped unconditionally. A row with a negative amount
// yields no contributions and a warning, so one bad row never blocks a whole
// report.
func (s *classifierService) ClassifyTransaction(txn *models.Transaction, restrictions []models.AccountRestriction) ([]models.Contribution, *models.Warning) {
	if err := txn.CheckAmounts(); err != nil {
		return nil, &models.Warning{
			TransactionID: txn.ID,
			Reason:        err.Error(),
		}
	}

	var contributions []models.Contribution
	for _, side := range []models.Side{models.SideDebit, models.SideCredit} {
		if c := s.classifyLeg(txn, side, restrictions); c != nil {
			contributions = append(contributions, *c)
		}
	}
	return contributions, nil
}

func (s *classifierService) classifyLeg(txn *models.Transaction, side models.Side, restrictions []models.AccountRestriction) *models.Contribution {
	account := txn.LegAccount(side)
	if account.Number == "" {
		return nil
	}
	if models.IsAccountRestricted(restrictions, account.Number) {
		return nil
	}

	category, ok := categoryForLeg(account.Number, side)
	if !ok {
		return nil
	}

	amount := txn.LegAmount(side)
	if amount.IsZero() {
		return nil
	}

	return &models.Contribution{
		SyntheticAccount: models.SyntheticNumber(account.Number),
		AccountName:      account.Name,
		Side:             side,
		Category:         category,
		Amount:           amount,
	}
}

// categoryForLeg applies the first-digit rules:
//   - credit on 7xx or 2xx contributes to income, debit on 4xx or 2xx to
//     expense, except the "200" prefix which always goes to settlements;
//   - 1xx contributes to the financial position on either side;
//   - everything else is excluded from reporting.
func categoryForLeg(number string, side models.Side) (models.Category, bool) {
	if strings.HasPrefix(number, settlementPrefix) {
		return models.CategorySettlement, true
	}

	switch number[0] {
	case '1':
		return models.CategoryPosition, true
	case '2':
		if side == models.SideCredit {
			return models.CategoryIncome, true
		}
		return models.CategoryExpense, true
	case '4':
		if side == models.SideDebit {
			return models.CategoryExpense, true
		}
	case '7':
		if side == models.SideCredit {
			return models.CategoryIncome, true
		}
	}
	return "", false
}
