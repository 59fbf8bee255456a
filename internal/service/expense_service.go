package service

import (
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense business logic with ownership rules
type ExpenseService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, categoryRepo domain.CategoryRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// List returns the expenses visible to the scope, narrowed by the filter
func (s *ExpenseService) List(scope domain.AccessScope, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	return s.expenseRepo.GetAll(scope, filter)
}

// Get returns one expense readable by the scope
func (s *ExpenseService) Get(scope domain.AccessScope, expenseID int64) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}
	if !scope.CanRead(expense.UserID) {
		return nil, domain.ErrForbidden
	}
	return expense, nil
}

// Create validates and persists an expense owned by the caller. The
// essential flag defaults to false, the date to today.
func (s *ExpenseService) Create(scope domain.AccessScope, value *decimal.Decimal, description *string, essential *bool, categoryID *int64, date *time.Time) (*domain.Expense, error) {
	if value == nil || description == nil {
		return nil, domain.ErrExpenseFieldsRequired
	}
	if categoryID == nil {
		return nil, domain.ErrExpenseCategoryRequired
	}

	if _, err := s.categoryRepo.GetByID(*categoryID); err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		UserID:      scope.UserID,
		CategoryID:  *categoryID,
		Value:       *value,
		Description: *description,
	}
	if essential != nil {
		expense.IsEssential = *essential
	}
	if date != nil {
		expense.Date = *date
	}
	return s.expenseRepo.Create(expense)
}

// Update applies a partial update to an expense the caller owns. Updates are
// owner-gated; admins get no override.
func (s *ExpenseService) Update(scope domain.AccessScope, expenseID int64, fields domain.ExpenseUpdate) (*domain.Expense, error) {
	if fields.Value == nil && fields.Description == nil && fields.IsEssential == nil && fields.CategoryID == nil {
		return nil, domain.ErrExpenseNoFields
	}
	if fields.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*fields.CategoryID); err != nil {
			return nil, err
		}
	}

	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(expense.UserID) {
		return nil, domain.ErrForbidden
	}

	return s.expenseRepo.Update(expenseID, scope.UserID, fields)
}

// Delete removes an expense the caller owns, or any expense for admins,
// returning the deleted record.
func (s *ExpenseService) Delete(scope domain.AccessScope, expenseID int64) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}
	if !scope.CanRead(expense.UserID) {
		return nil, domain.ErrForbidden
	}

	if err := s.expenseRepo.Delete(expenseID); err != nil {
		return nil, err
	}
	return expense, nil
}
