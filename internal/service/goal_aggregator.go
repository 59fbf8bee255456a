package service

import (
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/ViniciusBessa/planejando-api/internal/util"
	"github.com/shopspring/decimal"
)

// Clock supplies the current time. The aggregator's default window depends on
// "now", so the clock is injected to keep that branch deterministic in tests.
type Clock func() time.Time

// GoalAggregator computes, per goal, the total amount spent inside a date
// window. It reads the expense store and never mutates anything: the result
// is a pure function of the goal, the window and the store snapshot.
type GoalAggregator struct {
	expenseRepo domain.ExpenseRepository
	now         Clock
}

// NewGoalAggregator creates a GoalAggregator on the wall clock
func NewGoalAggregator(expenseRepo domain.ExpenseRepository) *GoalAggregator {
	return NewGoalAggregatorWithClock(expenseRepo, time.Now)
}

// NewGoalAggregatorWithClock creates a GoalAggregator with a custom clock
func NewGoalAggregatorWithClock(expenseRepo domain.ExpenseRepository, now Clock) *GoalAggregator {
	return &GoalAggregator{
		expenseRepo: expenseRepo,
		now:         now,
	}
}

// ResolveWindow computes the effective date window. When both bounds are
// supplied they are truncated to calendar days and used as an inclusive
// range; otherwise the window is the current month up to today. A single
// bound is treated as absent.
func (a *GoalAggregator) ResolveWindow(startDate, endDate *time.Time) domain.Window {
	if startDate != nil && endDate != nil {
		return domain.Window{
			Start: util.TruncateToDay(*startDate),
			End:   util.TruncateToDay(*endDate),
		}
	}
	now := a.now()
	return domain.Window{
		Start: util.FirstDayOfMonth(now),
		End:   util.TruncateToDay(now),
	}
}

// ComputeTotals decorates the goal with the sum of matching expenses inside
// the resolved window, grouped by month. Goals with no matching expenses get
// an explicit zero total and an empty breakdown, never a missing one.
func (a *GoalAggregator) ComputeTotals(goal *domain.Goal, startDate, endDate *time.Time) (*domain.GoalWithTotal, error) {
	window := a.ResolveWindow(startDate, endDate)

	months, err := a.expenseRepo.SumForGoal(goal.UserID, goal.CategoryID, goal.EssentialExpenses, window)
	if err != nil {
		return nil, err
	}
	if months == nil {
		months = []domain.MonthTotal{}
	}

	total := decimal.Zero
	for _, month := range months {
		total = total.Add(month.Total)
	}

	return &domain.GoalWithTotal{
		Goal:        *goal,
		Total:       total,
		SumExpenses: months,
	}, nil
}
