package service

import (
	"errors"
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/shopspring/decimal"
)

// GoalService handles goal CRUD with ownership rules, decorating every read
// path with aggregated totals.
type GoalService struct {
	goalRepo     domain.GoalRepository
	categoryRepo domain.CategoryRepository
	aggregator   *GoalAggregator
	minValue     decimal.Decimal
	maxValue     decimal.Decimal
}

// NewGoalService creates a new GoalService. Goal values must be strictly
// greater than minValue and at most maxValue.
func NewGoalService(
	goalRepo domain.GoalRepository,
	categoryRepo domain.CategoryRepository,
	aggregator *GoalAggregator,
	minValue, maxValue decimal.Decimal,
) *GoalService {
	return &GoalService{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		aggregator:   aggregator,
		minValue:     minValue,
		maxValue:     maxValue,
	}
}

func (s *GoalService) validateValue(value decimal.Decimal) error {
	if !value.GreaterThan(s.minValue) || value.GreaterThan(s.maxValue) {
		return domain.ErrGoalValueOutOfRange
	}
	return nil
}

// ListGoals returns the goals visible to the scope, each decorated with its
// totals for the requested window. Non-admin scopes only ever see their own
// goals, whatever the filter says.
func (s *GoalService) ListGoals(scope domain.AccessScope, filter domain.GoalFilter, startDate, endDate *time.Time) ([]*domain.GoalWithTotal, error) {
	goals, err := s.goalRepo.GetAll(scope, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.GoalWithTotal, len(goals))
	for i, goal := range goals {
		decorated, err := s.aggregator.ComputeTotals(goal, startDate, endDate)
		if err != nil {
			return nil, err
		}
		result[i] = decorated
	}
	return result, nil
}

// GetGoal returns one goal with totals. Fails with ErrGoalNotFound when the
// id is unknown and ErrForbidden when the caller is neither admin nor owner.
func (s *GoalService) GetGoal(scope domain.AccessScope, goalID int64, startDate, endDate *time.Time) (*domain.GoalWithTotal, error) {
	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	if !scope.CanRead(goal.UserID) {
		return nil, domain.ErrForbidden
	}
	return s.aggregator.ComputeTotals(goal, startDate, endDate)
}

// CreateGoal validates and persists a goal owned by the caller, returning it
// decorated with totals. Checks run in a fixed order: missing value, missing
// category, value out of range, category not found, duplicate triple.
func (s *GoalService) CreateGoal(scope domain.AccessScope, value *decimal.Decimal, categoryID *int64, essential bool, startDate, endDate *time.Time) (*domain.GoalWithTotal, error) {
	if value == nil {
		return nil, domain.ErrGoalValueRequired
	}
	if categoryID == nil {
		return nil, domain.ErrGoalCategoryRequired
	}
	if err := s.validateValue(*value); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(*categoryID); err != nil {
		return nil, err
	}

	// One goal per (user, category, essential) triple. Checked explicitly so
	// the duplicate reads as a validation error, not a constraint violation.
	_, err := s.goalRepo.GetByTriple(scope.UserID, *categoryID, essential)
	if err == nil {
		return nil, domain.ErrDuplicateGoal
	}
	if !errors.Is(err, domain.ErrGoalNotFound) {
		return nil, err
	}

	goal, err := s.goalRepo.Create(&domain.Goal{
		UserID:            scope.UserID,
		CategoryID:        *categoryID,
		Value:             *value,
		EssentialExpenses: essential,
	})
	if err != nil {
		return nil, err
	}
	return s.aggregator.ComputeTotals(goal, startDate, endDate)
}

// UpdateGoal applies a partial update to a goal the caller owns. Update is
// strictly owner-gated: admins get no override here.
func (s *GoalService) UpdateGoal(scope domain.AccessScope, goalID int64, fields domain.GoalUpdate, startDate, endDate *time.Time) (*domain.GoalWithTotal, error) {
	if fields.IsEmpty() {
		return nil, domain.ErrGoalNoFields
	}
	if fields.Value != nil {
		if err := s.validateValue(*fields.Value); err != nil {
			return nil, err
		}
	}
	if fields.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*fields.CategoryID); err != nil {
			return nil, err
		}
	}

	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(goal.UserID) {
		return nil, domain.ErrForbidden
	}

	// Moving the goal to another triple must not collide with an existing one
	targetCategory := goal.CategoryID
	if fields.CategoryID != nil {
		targetCategory = *fields.CategoryID
	}
	targetEssential := goal.EssentialExpenses
	if fields.EssentialExpenses != nil {
		targetEssential = *fields.EssentialExpenses
	}
	if targetCategory != goal.CategoryID || targetEssential != goal.EssentialExpenses {
		existing, err := s.goalRepo.GetByTriple(goal.UserID, targetCategory, targetEssential)
		if err == nil && existing.ID != goalID {
			return nil, domain.ErrDuplicateGoal
		}
		if err != nil && !errors.Is(err, domain.ErrGoalNotFound) {
			return nil, err
		}
	}

	updated, err := s.goalRepo.Update(goalID, scope.UserID, fields)
	if err != nil {
		return nil, err
	}
	return s.aggregator.ComputeTotals(updated, startDate, endDate)
}

// DeleteGoal removes a goal the caller owns, or any goal when the caller is
// an admin. The returned snapshot carries the totals computed immediately
// before deletion.
func (s *GoalService) DeleteGoal(scope domain.AccessScope, goalID int64, startDate, endDate *time.Time) (*domain.GoalWithTotal, error) {
	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	if !scope.CanRead(goal.UserID) {
		return nil, domain.ErrForbidden
	}

	snapshot, err := s.aggregator.ComputeTotals(goal, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if err := s.goalRepo.Delete(goalID); err != nil {
		return nil, err
	}
	return snapshot, nil
}
