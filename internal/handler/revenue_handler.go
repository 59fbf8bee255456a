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
)

// RevenueHandler handles revenue HTTP requests
type RevenueHandler struct {
	revenueService *service.RevenueService
}

// NewRevenueHandler creates a new RevenueHandler
func NewRevenueHandler(revenueService *service.RevenueService) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

// RevenueRequest represents the create and update request bodies
type RevenueRequest struct {
	Value *string `json:"value"`
}

// RevenueResponse represents a revenue in responses
type RevenueResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Value     string `json:"value"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// RevenueListResponse wraps the revenues collection
type RevenueListResponse struct {
	Revenues []RevenueResponse `json:"revenues"`
}

// RevenueItemResponse wraps a single revenue
type RevenueItemResponse struct {
	Revenue RevenueResponse `json:"revenue"`
}

func toRevenueResponse(revenue *domain.Revenue) RevenueResponse {
	return RevenueResponse{
		ID:        revenue.ID,
		UserID:    revenue.UserID,
		Value:     revenue.Value.StringFixed(2),
		CreatedAt: revenue.CreatedAt.Format(time.RFC3339),
		UpdatedAt: revenue.UpdatedAt.Format(time.RFC3339),
	}
}

// GetRevenues handles GET /api/v1/revenues
func (h *RevenueHandler) GetRevenues(c echo.Context) error {
	user := middleware.GetUser(c)

	filter := domain.RevenueFilter{
		MinValue: queryDecimal(c, "minValue"),
		MaxValue: queryDecimal(c, "maxValue"),
		MinDate:  queryDate(c, "minDate"),
		MaxDate:  queryDate(c, "maxDate"),
	}

	revenues, err := h.revenueService.List(domain.ScopeFor(user), filter)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list revenues")
		return NewInternalError(c, "Failed to list revenues, try again later")
	}

	resp := RevenueListResponse{Revenues: make([]RevenueResponse, len(revenues))}
	for i, revenue := range revenues {
		resp.Revenues[i] = toRevenueResponse(revenue)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetRevenue handles GET /api/v1/revenues/:revenueId
func (h *RevenueHandler) GetRevenue(c echo.Context) error {
	user := middleware.GetUser(c)

	revenueID, ok := pathID(c, "revenueId")
	if !ok {
		return NewNotFoundError(c, "No revenue was found with the given id")
	}

	revenue, err := h.revenueService.Get(domain.ScopeFor(user), revenueID)
	if err != nil {
		if errors.Is(err, domain.ErrRevenueNotFound) {
			return NewNotFoundError(c, "No revenue was found with the given id")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "You do not have permission to access this content")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("revenue_id", revenueID).Msg("Failed to get revenue")
		return NewInternalError(c, "Failed to get revenue, try again later")
	}

	return c.JSON(http.StatusOK, RevenueItemResponse{Revenue: toRevenueResponse(revenue)})
}

// CreateRevenue handles POST /api/v1/revenues
func (h *RevenueHandler) CreateRevenue(c echo.Context) error {
	user := middleware.GetUser(c)

	var req RevenueRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	value, err := parseBodyDecimal(req.Value)
	if err != nil {
		return NewValidationError(c, "Invalid value format", []ValidationError{
			{Field: "value", Message: "Must be a valid decimal number"},
		})
	}

	revenue, err := h.revenueService.Create(domain.ScopeFor(user), value)
	if err != nil {
		if errors.Is(err, domain.ErrRevenueValueRequired) {
			return NewValidationError(c, "Please provide the revenue value", []ValidationError{
				{Field: "value", Message: "Value is required"},
			})
		}
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create revenue")
		return NewInternalError(c, "Failed to create revenue, try again later")
	}

	log.Info().Int64("user_id", user.ID).Int64("revenue_id", revenue.ID).Str("value", revenue.Value.String()).Msg("Revenue created")

	return c.JSON(http.StatusCreated, RevenueItemResponse{Revenue: toRevenueResponse(revenue)})
}

// UpdateRevenue handles PATCH /api/v1/revenues/:revenueId
func (h *RevenueHandler) UpdateRevenue(c echo.Context) error {
	user := middleware.GetUser(c)

	revenueID, ok := pathID(c, "revenueId")
	if !ok {
		return NewNotFoundError(c, "No revenue was found with the given id")
	}

	var req RevenueRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	value, err := parseBodyDecimal(req.Value)
	if err != nil {
		return NewValidationError(c, "Invalid value format", []ValidationError{
			{Field: "value", Message: "Must be a valid decimal number"},
		})
	}

	revenue, err := h.revenueService.Update(domain.ScopeFor(user), revenueID, value)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRevenueValueRequired):
			return NewValidationError(c, "Please provide the new revenue value", []ValidationError{
				{Field: "value", Message: "Value is required"},
			})
		case errors.Is(err, domain.ErrRevenueNotFound):
			return NewNotFoundError(c, "No revenue was found with the given id")
		case errors.Is(err, domain.ErrForbidden):
			return NewForbiddenError(c, "You do not have permission to access this content")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("revenue_id", revenueID).Msg("Failed to update revenue")
		return NewInternalError(c, "Failed to update revenue, try again later")
	}

	log.Info().Int64("user_id", user.ID).Int64("revenue_id", revenueID).Msg("Revenue updated")

	return c.JSON(http.StatusOK, RevenueItemResponse{Revenue: toRevenueResponse(revenue)})
}

// DeleteRevenue handles DELETE /api/v1/revenues/:revenueId
func (h *RevenueHandler) DeleteRevenue(c echo.Context) error {
	user := middleware.GetUser(c)

	revenueID, ok := pathID(c, "revenueId")
	if !ok {
		return NewNotFoundError(c, "No revenue was found with the given id")
	}

	revenue, err := h.revenueService.Delete(domain.ScopeFor(user), revenueID)
	if err != nil {
		if errors.Is(err, domain.ErrRevenueNotFound) {
			return NewNotFoundError(c, "No revenue was found with the given id")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "You do not have permission to access this content")
		}
		log.Error().Err(err).Int64("user_id", user.ID).Int64("revenue_id", revenueID).Msg("Failed to delete revenue")
		return NewInternalError(c, "Failed to delete revenue, try again later")
	}

	log.Info().Int64("user_id", user.ID).Int64("revenue_id", revenueID).Msg("Revenue deleted")

	return c.JSON(http.StatusOK, RevenueItemResponse{Revenue: toRevenueResponse(revenue)})
}
