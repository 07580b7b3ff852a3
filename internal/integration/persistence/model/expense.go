package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Category           string          `gorm:"type:varchar(30);not null;index"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date               time.Time       `gorm:"type:timestamp;not null;index"`
	Description        string          `gorm:"type:text"`
	Vendor             *string         `gorm:"type:varchar(255)"`
	IsRecurring        bool            `gorm:"default:false"`
	RecurringFrequency *string         `gorm:"type:varchar(20)"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	var frequency *entity.RecurringFrequency
	if m.RecurringFrequency != nil {
		f := entity.RecurringFrequency(*m.RecurringFrequency)
		frequency = &f
	}

	return &entity.Expense{
		ID:                 m.ID,
		Category:           entity.ExpenseCategory(m.Category),
		Amount:             m.Amount,
		Date:               m.Date,
		Description:        m.Description,
		Vendor:             m.Vendor,
		IsRecurring:        m.IsRecurring,
		RecurringFrequency: frequency,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	var frequency *string
	if expense.RecurringFrequency != nil {
		f := string(*expense.RecurringFrequency)
		frequency = &f
	}

	return &ExpenseModel{
		ID:                 expense.ID,
		Category:           string(expense.Category),
		Amount:             expense.Amount,
		Date:               expense.Date.UTC(),
		Description:        expense.Description,
		Vendor:             expense.Vendor,
		IsRecurring:        expense.IsRecurring,
		RecurringFrequency: frequency,
		CreatedAt:          expense.CreatedAt,
		UpdatedAt:          expense.UpdatedAt,
	}
}
