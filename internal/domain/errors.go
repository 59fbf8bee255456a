package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternalError = errors.New("internal error")

	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidName      = errors.New("name must be between 8 and 40 characters")
	ErrInvalidEmail     = errors.New("email is invalid")
	ErrNameInUse        = errors.New("name already in use")
	ErrEmailInUse       = errors.New("email already in use")
	ErrPasswordRequired = errors.New("password is required")
	ErrWrongPassword    = errors.New("password does not match")

	ErrResetTokenRequired = errors.New("reset token is required")
	ErrResetTokenNotFound = errors.New("reset token not found")

	ErrCategoryNotFound            = errors.New("category not found")
	ErrCategoryTitleRequired       = errors.New("category title is required")
	ErrCategoryDescriptionRequired = errors.New("category description is required")
	ErrCategoryNoFields            = errors.New("no category field to update")

	ErrExpenseNotFound         = errors.New("expense not found")
	ErrExpenseFieldsRequired   = errors.New("expense value and description are required")
	ErrExpenseCategoryRequired = errors.New("expense category is required")
	ErrExpenseNoFields         = errors.New("no expense field to update")

	ErrRevenueNotFound      = errors.New("revenue not found")
	ErrRevenueValueRequired = errors.New("revenue value is required")

	ErrGoalNotFound         = errors.New("goal not found")
	ErrGoalValueRequired    = errors.New("goal value is required")
	ErrGoalCategoryRequired = errors.New("goal category is required")
	ErrGoalValueOutOfRange  = errors.New("goal value out of range")
	ErrGoalNoFields         = errors.New("no goal field to update")
	ErrDuplicateGoal        = errors.New("a goal already exists for this category")
)

// Validation constants
const (
	MinUserNameLength = 8
	MaxUserNameLength = 40
)
