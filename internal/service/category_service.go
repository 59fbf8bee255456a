package service

import (
	"github.com/ViniciusBessa/planejando-api/internal/domain"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// GetAll returns every category
func (s *CategoryService) GetAll() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

// Get returns one category by id
func (s *CategoryService) Get(categoryID int64) (*domain.Category, error) {
	return s.categoryRepo.GetByID(categoryID)
}

// Create validates and persists a new category
func (s *CategoryService) Create(title, description string) (*domain.Category, error) {
	if title == "" {
		return nil, domain.ErrCategoryTitleRequired
	}
	if description == "" {
		return nil, domain.ErrCategoryDescriptionRequired
	}
	return s.categoryRepo.Create(&domain.Category{
		Title:       title,
		Description: description,
	})
}

// Update applies a partial update; at least one field must be supplied
func (s *CategoryService) Update(categoryID int64, fields domain.CategoryUpdate) (*domain.Category, error) {
	if fields.Title == nil && fields.Description == nil {
		return nil, domain.ErrCategoryNoFields
	}
	return s.categoryRepo.Update(categoryID, fields)
}

// Delete removes a category
func (s *CategoryService) Delete(categoryID int64) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Delete(categoryID); err != nil {
		return nil, err
	}
	return category, nil
}
