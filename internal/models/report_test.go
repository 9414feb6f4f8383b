package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportSuite struct {
	suite.Suite
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportSuite))
}

func (s *ReportSuite) TestCanTransitionTo() {
	testCases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{ReportStatusDraft, ReportStatusSubmitted, true},
		{ReportStatusDraft, ReportStatusApproved, false},
		{ReportStatusSubmitted, ReportStatusApproved, true},
		{ReportStatusSubmitted, ReportStatusToBeCorrected, true},
		{ReportStatusSubmitted, ReportStatusDraft, false},
		{ReportStatusToBeCorrected, ReportStatusDraft, true},
		{ReportStatusToBeCorrected, ReportStatusApproved, false},
		{ReportStatusApproved, ReportStatusDraft, false},
		{ReportStatusApproved, ReportStatusSubmitted, false},
	}

	for _, tc := range testCases {
		report := &Report{Status: tc.from}
		s.Equal(tc.allowed, report.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func (s *ReportSuite) TestBudgetCanTransitionTo() {
	testCases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{BudgetStatusDraft, BudgetStatusSubmitted, true},
		{BudgetStatusDraft, BudgetStatusApproved, false},
		{BudgetStatusSubmitted, BudgetStatusApproved, true},
		{BudgetStatusSubmitted, BudgetStatusDraft, true},
		{BudgetStatusApproved, BudgetStatusDraft, false},
	}

	for _, tc := range testCases {
		plan := &BudgetPlan{Status: tc.from}
		s.Equal(tc.allowed, plan.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func (s *ReportSuite) TestBalanceMap_ValueScan() {
	original := BalanceMap{
		"position:Kasa domu":          decimal.NewFromInt(-100),
		"intentions":                  decimal.NewFromInt(250),
		"settlement:payable:Pożyczki": decimal.NewFromFloat(12.50),
	}

	value, err := original.Value()
	s.Require().NoError(err)

	var restored BalanceMap
	s.Require().NoError(restored.Scan(value))

	s.Len(restored, len(original))
	for key, amount := range original {
		s.True(amount.Equal(restored[key]), "key %s", key)
	}
}

func (s *ReportSuite) TestBalanceMap_EmptyAndNil() {
	var empty BalanceMap
	value, err := empty.Value()
	s.NoError(err)
	s.Nil(value)

	var restored BalanceMap
	s.NoError(restored.Scan(nil))
	s.Nil(restored)
}
