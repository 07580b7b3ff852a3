// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the kind of operating expense.
type ExpenseCategory string

const (
	ExpenseCategoryRent        ExpenseCategory = "rent"
	ExpenseCategoryUtilities   ExpenseCategory = "utilities"
	ExpenseCategorySalaries    ExpenseCategory = "salaries"
	ExpenseCategoryMarketing   ExpenseCategory = "marketing"
	ExpenseCategoryInsurance   ExpenseCategory = "insurance"
	ExpenseCategoryOffice      ExpenseCategory = "office"
	ExpenseCategorySoftware    ExpenseCategory = "software"
	ExpenseCategoryTaxes       ExpenseCategory = "taxes"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// RecurringFrequency represents how often a recurring expense repeats.
type RecurringFrequency string

const (
	RecurringFrequencyWeekly    RecurringFrequency = "weekly"
	RecurringFrequencyMonthly   RecurringFrequency = "monthly"
	RecurringFrequencyQuarterly RecurringFrequency = "quarterly"
	RecurringFrequencyYearly    RecurringFrequency = "yearly"
)

// Expense is a standalone operating cost not tied to a vehicle.
type Expense struct {
	ID                 uuid.UUID
	Category           ExpenseCategory
	Amount             decimal.Decimal
	Date               time.Time
	Description        string
	Vendor             *string
	IsRecurring        bool
	RecurringFrequency *RecurringFrequency
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
