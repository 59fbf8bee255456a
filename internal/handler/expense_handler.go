package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/ViniciusBessa/planejando-api/internal/middleware"
	"github.com/ViniciusBessa/planejando-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the create expense request body
type CreateExpenseRequest struct {
	Value       *string `json:"value"`
	Description *string `json:"description"`
	IsEssential *bool   `json:"isEssential"`
	CategoryID  *int64  `json:"categoryId"`
	Date        *string `json:"date"`
}

// UpdateExpenseRequest represents the partial update request body
type UpdateExpenseRequest struct {
	Value       *string `json:"value"`
	Description *string `json:"description"`
	IsEssential *bool   `json:"isEssential"`
	CategoryID  *int64  `json:"categoryId"`
}

// ExpenseResponse represents an expense in responses
type ExpenseResponse struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"userId"`
	CategoryID  int64             `json:"categoryId"`
	Value       string            `json:"value"`
	Description string            `json:"description"`
	IsEssential bool              `json:"isEssential"`
	Date        string            `json:"date"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

// ExpenseListResponse wraps the expenses collection
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ExpenseItemResponse wraps a single expense
type ExpenseItemResponse struct {
	Expense ExpenseResponse `json:"expense"`
}

func toExpenseResponse(expense *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          expense.ID,
		UserID:      expense.UserID,
		CategoryID:  expense.CategoryID,
		Value:       expense.Value.StringFixed(2),
		Description: expense.Description,
		IsEssential: expense.IsEssential,
		Date:        expense.Date.Format("2006-01-02"),
		CreatedAt:   expense.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   expense.UpdatedAt.Format(time.RFC3339),
	}
	if expense.Category != nil {
		category := toCategoryResponse(expense.Category)
		resp.Category = &category
	}
	return resp
}

func parseBodyDecimal(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// GetExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	user := middleware.GetUser(c)

	filter := domain.ExpenseFilter{
		MinValue:    queryDecimal(c, "minValue"),
		MaxValue:    queryDecimal(c, "maxValue"),
		IsEssential: queryBool(c, "isEssential"),
		MinDate:     queryDate(c, "minDate"),
		MaxDate:     queryDate(c, "maxDate"),
		CategoryID:  queryInt64(c, "categoryId"),
	}

	expenses, err := h.expenseService.List(domain.ScopeFor(user), filter)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list expenses")
		return NewInternalError(c, "Failed to list expenses, try again later")
	}

	resp := ExpenseListResponse{Expenses: make([]ExpenseResponse, len(expenses))}
	for i, expense := range expenses {
		resp.Expenses[i] = toExpenseResponse(expense)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetExpense handles GET /api/v1/expenses/:expenseId
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	user := middleware.GetUser(c)

	expenseID, ok := pathID(c, "expenseId")
	if !ok {
		return NewNotFoundError(c, "No expense was found with the given id")
	}

	expense, err := h.expenseService.Get(domain.ScopeFor(user), expenseID)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "No expense was found with the given id")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "You do not have permission to access this content")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("expense_id", expenseID).Msg("Failed to get expense")
		return NewInternalError(c, "Failed to get expense, try again later")
	}

	return c.JSON(http.StatusOK, ExpenseItemResponse{Expense: toExpenseResponse(expense)})
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	user := middleware.GetUser(c)

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	value, err := parseBodyDecimal(req.Value)
	if err != nil {
		return NewValidationError(c, "Invalid value format", []ValidationError{
			{Field: "value", Message: "Must be a valid decimal number"},
		})
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, *req.Date)
		}
		if err != nil {
			return NewValidationError(c, "Invalid date format", []ValidationError{
				{Field: "date", Message: "Must be an ISO date"},
			})
		}
		date = &parsed
	}

	expense, err := h.expenseService.Create(domain.ScopeFor(user), value, req.Description, req.IsEssential, req.CategoryID, date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrExpenseFieldsRequired):
			return NewValidationError(c, "Please provide the expense value and description", nil)
		case errors.Is(err, domain.ErrExpenseCategoryRequired):
			return NewValidationError(c, "Please provide the expense category", []ValidationError{
				{Field: "categoryId", Message: "Category is required"},
			})
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "No category was found with the given id")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense, try again later")
	}

	log.Info().Int64("user_id", user.ID).Int64("expense_id", expense.ID).Str("value", expense.Value.String()).Msg("Expense created")

	return c.JSON(http.StatusCreated, ExpenseItemResponse{Expense: toExpenseResponse(expense)})
}

// UpdateExpense handles PATCH /api/v1/expenses/:expenseId
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	user := middleware.GetUser(c)

	expenseID, ok := pathID(c, "expenseId")
	if !ok {
		return NewNotFoundError(c, "No expense was found with the given id")
	}

	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	value, err := parseBodyDecimal(req.Value)
	if err != nil {
		return NewValidationError(c, "Invalid value format", []ValidationError{
			{Field: "value", Message: "Must be a valid decimal number"},
		})
	}

	fields := domain.ExpenseUpdate{
		Value:       value,
		Description: req.Description,
		IsEssential: req.IsEssential,
		CategoryID:  req.CategoryID,
	}

	expense, err := h.expenseService.Update(domain.ScopeFor(user), expenseID, fields)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrExpenseNoFields):
			return NewValidationError(c, "Please provide a new value, description or category for the expense", nil)
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "No category was found with the given id")
		case errors.Is(err, domain.ErrExpenseNotFound):
			return NewNotFoundError(c, "No expense was found with the given id")
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "You do not have permission to access this content")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("expense_id", expenseID).Msg("Failed to update expense")
		return NewInternalError(c, "Failed to update expense, try again later")
	}

	log.Info().Int64("user_id", user.ID).Int64("expense_id", expenseID).Msg("Expense updated")

	return c.JSON(http.StatusOK, ExpenseItemResponse{Expense: toExpenseResponse(expense)})
}

// DeleteExpense handles DELETE /api/v1/expenses/:expenseId
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	user := middleware.GetUser(c)

	expenseID, ok := pathID(c, "expenseId")
	if !ok {
		return NewNotFoundError(c, "No expense was found with the given id")
	}

	expense, err := h.expenseService.Delete(domain.ScopeFor(user), expenseID)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "No expense was found with the given id")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "You do not have permission to access this content")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("expense_id", expenseID).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense, try again later")
	}

	log.Info().Int64("user_id", user.ID).Int64("expense_id", expenseID).Msg("Expense deleted")

	return c.JSON(http.StatusOK, ExpenseItemResponse{Expense: toExpenseResponse(expense)})
}
