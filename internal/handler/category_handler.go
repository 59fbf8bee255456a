package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/ViniciusBessa/planejando-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents the partial update request body
type UpdateCategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CategoryResponse represents a category in responses
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CategoryListResponse wraps the categories collection
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// CategoryItemResponse wraps a single category
type CategoryItemResponse struct {
	Category CategoryResponse `json:"category"`
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Title:       category.Title,
		Description: category.Description,
		CreatedAt:   category.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   category.UpdatedAt.Format(time.RFC3339),
	}
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories, try again later")
	}

	resp := CategoryListResponse{Categories: make([]CategoryResponse, len(categories))}
	for i, category := range categories {
		resp.Categories[i] = toCategoryResponse(category)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCategory handles GET /api/v1/categories/:categoryId
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return NewNotFoundError(c, "No category was found with the given id")
	}

	category, err := h.categoryService.Get(categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "No category was found with the given id")
		}
		log.Error().Err(err).Int64("category_id", categoryID).Msg("Failed to get category")
		return NewInternalError(c, "Failed to get category, try again later")
	}

	return c.JSON(http.StatusOK, CategoryItemResponse{Category: toCategoryResponse(category)})
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.Create(req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryTitleRequired):
			return NewValidationError(c, "Please provide the category title", []ValidationError{
				{Field: "title", Message: "Title is required"},
			})
		case errors.Is(err, domain.ErrCategoryDescriptionRequired):
			return NewValidationError(c, "Please provide the category description", []ValidationError{
				{Field: "description", Message: "Description is required"},
			})
		}
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category, try again later")
	}

	log.Info().Int64("category_id", category.ID).Str("title", category.Title).Msg("Category created")

	return c.JSON(http.StatusCreated, CategoryItemResponse{Category: toCategoryResponse(category)})
}

// UpdateCategory handles PATCH /api/v1/categories/:categoryId
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return NewNotFoundError(c, "No category was found with the given id")
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.Update(categoryID, domain.CategoryUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNoFields):
			return NewValidationError(c, "Please provide a new title or description for the category", nil)
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "No category was found with the given id")
		}
		log.Error().Err(err).Int64("category_id", categoryID).Msg("Failed to update category")
		return NewInternalError(c, "Failed to update category, try again later")
	}

	log.Info().Int64("category_id", categoryID).Msg("Category updated")

	return c.JSON(http.StatusOK, CategoryItemResponse{Category: toCategoryResponse(category)})
}

// DeleteCategory handles DELETE /api/v1/categories/:categoryId
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return NewNotFoundError(c, "No category was found with the given id")
	}

	category, err := h.categoryService.Delete(categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "No category was found with the given id")
		}
		log.Error().Err(err).Int64("category_id", categoryID).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category, try again later")
	}

	log.Info().Int64("category_id", categoryID).Msg("Category deleted")

	return c.JSON(http.StatusOK, CategoryItemResponse{Category: toCategoryResponse(category)})
}
