package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a monetary record owned by a user. Date is the day the expense
// occurred, distinct from the row's creation timestamp.
type Expense struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	CategoryID  int64           `json:"categoryId"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description"`
	IsEssential bool            `json:"isEssential"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Category    *Category       `json:"category,omitempty"`
}

// ExpenseFilter narrows expense listings. Nil fields are ignored.
type ExpenseFilter struct {
	MinValue    *decimal.Decimal
	MaxValue    *decimal.Decimal
	IsEssential *bool
	MinDate     *time.Time
	MaxDate     *time.Time
	CategoryID  *int64
}

// ExpenseUpdate carries the optional fields of an expense update
type ExpenseUpdate struct {
	Value       *decimal.Decimal
	Description *string
	IsEssential *bool
	CategoryID  *int64
}

// ExpenseRepository defines expense persistence plus the aggregate query the
// goal aggregator depends on.
type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(id int64) (*Expense, error)
	GetAll(scope AccessScope, filter ExpenseFilter) ([]*Expense, error)
	// Update mutates only when id belongs to ownerID; returns
	// ErrExpenseNotFound when no row matches both.
	Update(id, ownerID int64, fields ExpenseUpdate) (*Expense, error)
	Delete(id int64) error
	// SumForGoal sums expense values for one user, category and essentiality
	// class inside the window, grouped by month-of-date. Months with no
	// matching expenses yield no row.
	SumForGoal(userID, categoryID int64, isEssential bool, window Window) ([]MonthTotal, error)
}
