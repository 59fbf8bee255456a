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

// GoalHandler handles goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Value             *string `json:"value"`
	CategoryID        *int64  `json:"categoryId"`
	EssentialExpenses *bool   `json:"essentialExpenses"`
}

// UpdateGoalRequest represents the partial update request body
type UpdateGoalRequest struct {
	Value             *string `json:"value"`
	CategoryID        *int64  `json:"categoryId"`
	EssentialExpenses *bool   `json:"essentialExpenses"`
}

// MonthTotalResponse is one month of aggregated spending
type MonthTotalResponse struct {
	Month int    `json:"month"`
	Total string `json:"total"`
}

// GoalResponse represents a goal with its aggregated totals
type GoalResponse struct {
	ID                int64                `json:"id"`
	UserID            int64                `json:"userId"`
	CategoryID        int64                `json:"categoryId"`
	Value             string               `json:"value"`
	EssentialExpenses bool                 `json:"essentialExpenses"`
	CreatedAt         string               `json:"createdAt"`
	UpdatedAt         string               `json:"updatedAt"`
	Category          *CategoryResponse    `json:"category,omitempty"`
	Total             string               `json:"total"`
	SumExpenses       []MonthTotalResponse `json:"sumExpenses"`
}

// GoalListResponse wraps the goals collection
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// GoalItemResponse wraps a single goal
type GoalItemResponse struct {
	Goal GoalResponse `json:"goal"`
}

func toGoalResponse(goal *domain.GoalWithTotal) GoalResponse {
	months := make([]MonthTotalResponse, len(goal.SumExpenses))
	for i, month := range goal.SumExpenses {
		months[i] = MonthTotalResponse{
			Month: month.Month,
			Total: month.Total.StringFixed(2),
		}
	}

	resp := GoalResponse{
		ID:                goal.ID,
		UserID:            goal.UserID,
		CategoryID:        goal.CategoryID,
		Value:             goal.Value.StringFixed(2),
		EssentialExpenses: goal.EssentialExpenses,
		CreatedAt:         goal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         goal.UpdatedAt.Format(time.RFC3339),
		Total:             goal.Total.StringFixed(2),
		SumExpenses:       months,
	}
	if goal.Category != nil {
		category := toCategoryResponse(goal.Category)
		resp.Category = &category
	}
	return resp
}

// window extracts the optional startDate/endDate pair. A malformed or lone
// bound is treated as absent and the aggregator falls back to the current
// month.
func window(c echo.Context) (*time.Time, *time.Time) {
	return queryDate(c, "startDate"), queryDate(c, "endDate")
}

// GetGoals handles GET /api/v1/goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	user := middleware.GetUser(c)
	scope := domain.ScopeFor(user)

	filter := domain.GoalFilter{
		MinValue:   queryDecimal(c, "minValue"),
		MaxValue:   queryDecimal(c, "maxValue"),
		CategoryID: queryInt64(c, "categoryId"),
		Essential:  queryBool(c, "essentialExpenses"),
	}
	startDate, endDate := window(c)

	goals, err := h.goalService.ListGoals(scope, filter, startDate, endDate)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list goals")
		return NewInternalError(c, "Failed to list goals, try again later")
	}

	resp := GoalListResponse{Goals: make([]GoalResponse, len(goals))}
	for i, goal := range goals {
		resp.Goals[i] = toGoalResponse(goal)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetGoal handles GET /api/v1/goals/:goalId
func (h *GoalHandler) GetGoal(c echo.Context) error {
	user := middleware.GetUser(c)

	goalID, ok := pathID(c, "goalId")
	if !ok {
		return NewNotFoundError(c, "No goal was found with the given id")
	}
	startDate, endDate := window(c)

	goal, err := h.goalService.GetGoal(domain.ScopeFor(user), goalID, startDate, endDate)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "No goal was found with the given id")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "You do not have permission to access this content")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("goal_id", goalID).Msg("Failed to get goal")
		return NewInternalError(c, "Failed to get goal, try again later")
	}

	return c.JSON(http.StatusOK, GoalItemResponse{Goal: toGoalResponse(goal)})
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	user := middleware.GetUser(c)

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var value *decimal.Decimal
	if req.Value != nil {
		parsed, err := decimal.NewFromString(*req.Value)
		if err != nil {
			return NewValidationError(c, "Invalid value format", []ValidationError{
				{Field: "value", Message: "Must be a valid decimal number"},
			})
		}
		value = &parsed
	}

	essential := false
	if req.EssentialExpenses != nil {
		essential = *req.EssentialExpenses
	}
	startDate, endDate := window(c)

	goal, err := h.goalService.CreateGoal(domain.ScopeFor(user), value, req.CategoryID, essential, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalValueRequired):
			return NewValidationError(c, "Please provide the goal limit", []ValidationError{
				{Field: "value", Message: "Value is required"},
			})
		case errors.Is(err, domain.ErrGoalCategoryRequired):
			return NewValidationError(c, "Please provide the goal category", []ValidationError{
				{Field: "categoryId", Message: "Category is required"},
			})
		case errors.Is(err, domain.ErrGoalValueOutOfRange):
			return NewValidationError(c, "Goal value out of range", []ValidationError{
				{Field: "value", Message: "Value must be positive and within the allowed maximum"},
			})
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "No category was found with the given id")
		case errors.Is(err, domain.ErrDuplicateGoal):
			return NewValidationError(c, "You can only have one goal per category", nil)
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create goal")
		return NewInternalError(c, "Failed to create goal, try again later")
	}

	log.Info().Int64("user_id", user.ID).Int64("goal_id", goal.ID).Str("value", goal.Value.String()).Msg("Goal created")

	return c.JSON(http.StatusCreated, GoalItemResponse{Goal: toGoalResponse(goal)})
}

// UpdateGoal handles PATCH /api/v1/goals/:goalId
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	user := middleware.GetUser(c)

	goalID, ok := pathID(c, "goalId")
	if !ok {
		return NewNotFoundError(c, "No goal was found with the given id")
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	fields := domain.GoalUpdate{
		CategoryID:        req.CategoryID,
		EssentialExpenses: req.EssentialExpenses,
	}
	if req.Value != nil {
		parsed, err := decimal.NewFromString(*req.Value)
		if err != nil {
			return NewValidationError(c, "Invalid value format", []ValidationError{
				{Field: "value", Message: "Must be a valid decimal number"},
			})
		}
		fields.Value = &parsed
	}
	startDate, endDate := window(c)

	goal, err := h.goalService.UpdateGoal(domain.ScopeFor(user), goalID, fields, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalNoFields):
			return NewValidationError(c, "Please provide a new limit or category for the goal", nil)
		case errors.Is(err, domain.ErrGoalValueOutOfRange):
			return NewValidationError(c, "Goal value out of range", []ValidationError{
				{Field: "value", Message: "Value must be positive and within the allowed maximum"},
			})
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "No category was found with the given id")
		case errors.Is(err, domain.ErrGoalNotFound):
			return NewNotFoundError(c, "No goal was found with the given id")
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "You do not have permission to access this content")
		case errors.Is(err, domain.ErrDuplicateGoal):
			return NewValidationError(c, "You can only have one goal per category", nil)
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("goal_id", goalID).Msg("Failed to update goal")
		return NewInternalError(c, "Failed to update goal, try again later")
	}

	log.Info().Int64("user_id", user.ID).Int64("goal_id", goalID).Msg("Goal updated")

	return c.JSON(http.StatusOK, GoalItemResponse{Goal: toGoalResponse(goal)})
}

// DeleteGoal handles DELETE /api/v1/goals/:goalId
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	user := middleware.GetUser(c)

	goalID, ok := pathID(c, "goalId")
	if !ok {
		return NewNotFoundError(c, "No goal was found with the given id")
	}
	startDate, endDate := window(c)

	goal, err := h.goalService.DeleteGoal(domain.ScopeFor(user), goalID, startDate, endDate)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "No goal was found with the given id")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "You do not have permission to access this content")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("goal_id", goalID).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal, try again later")
	}

	log.Info().Int64("user_id", user.ID).Int64("goal_id", goalID).Msg("Goal deleted")

	return c.JSON(http.StatusOK, GoalItemResponse{Goal: toGoalResponse(goal)})
}
