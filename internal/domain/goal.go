package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a spending limit a user sets for a category and essentiality class.
// At most one goal exists per (user, category, essentialExpenses) triple.
type Goal struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"userId"`
	CategoryID        int64           `json:"categoryId"`
	Value             decimal.Decimal `json:"value"`
	EssentialExpenses bool            `json:"essentialExpenses"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	Category          *Category       `json:"category,omitempty"`
}

// Window is the inclusive date range over which expenses are summed
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthTotal is the summed expense value for one month-of-year
type MonthTotal struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// GoalWithTotal is a goal decorated with its aggregated spending. It is a
// view recomputed on every read, never stored. Total is always present and
// zero when nothing matched; SumExpenses carries the per-month breakdown.
type GoalWithTotal struct {
	Goal
	Total       decimal.Decimal `json:"total"`
	SumExpenses []MonthTotal    `json:"sumExpenses"`
}

// GoalFilter narrows goal listings. Nil fields are ignored.
type GoalFilter struct {
	MinValue   *decimal.Decimal
	MaxValue   *decimal.Decimal
	CategoryID *int64
	Essential  *bool
}

// GoalUpdate carries the optional fields of a goal update
type GoalUpdate struct {
	Value             *decimal.Decimal
	CategoryID        *int64
	EssentialExpenses *bool
}

// IsEmpty reports whether no field was supplied
func (u GoalUpdate) IsEmpty() bool {
	return u.Value == nil && u.CategoryID == nil && u.EssentialExpenses == nil
}

type GoalRepository interface {
	Create(goal *Goal) (*Goal, error)
	GetByID(id int64) (*Goal, error)
	// GetByTriple looks up the unique goal for (user, category, essential),
	// returning ErrGoalNotFound when none exists.
	GetByTriple(userID, categoryID int64, essential bool) (*Goal, error)
	GetAll(scope AccessScope, filter GoalFilter) ([]*Goal, error)
	// Update mutates only when id belongs to ownerID; returns
	// ErrGoalNotFound when no row matches both.
	Update(id, ownerID int64, fields GoalUpdate) (*Goal, error)
	Delete(id int64) error
}
