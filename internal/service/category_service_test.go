package service

import (
	"errors"
	"testing"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/ViniciusBessa/planejando-api/internal/testutil"
)

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.Create("Food", "Groceries and meals")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if category.Title != "Food" {
		t.Errorf("Expected title 'Food', got %s", category.Title)
	}
	if category.ID == 0 {
		t.Error("Expected category to receive an ID")
	}
}

func TestCreateCategory_MissingFields(t *testing.T) {
	categoryService := NewCategoryService(testutil.NewMockCategoryRepository())

	_, err := categoryService.Create("", "Groceries and meals")
	if !errors.Is(err, domain.ErrCategoryTitleRequired) {
		t.Errorf("Expected ErrCategoryTitleRequired, got %v", err)
	}

	_, err = categoryService.Create("Food", "")
	if !errors.Is(err, domain.ErrCategoryDescriptionRequired) {
		t.Errorf("Expected ErrCategoryDescriptionRequired, got %v", err)
	}
}

func TestUpdateCategory_NoFields(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})
	categoryService := NewCategoryService(categoryRepo)

	_, err := categoryService.Update(1, domain.CategoryUpdate{})
	if !errors.Is(err, domain.ErrCategoryNoFields) {
		t.Errorf("Expected ErrCategoryNoFields, got %v", err)
	}
}

func TestUpdateCategory_PartialFields(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})
	categoryService := NewCategoryService(categoryRepo)

	title := "Dining"
	category, err := categoryService.Update(1, domain.CategoryUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if category.Title != "Dining" {
		t.Errorf("Expected title 'Dining', got %s", category.Title)
	}
	if category.Description != "Groceries and meals" {
		t.Errorf("Expected description to be untouched, got %s", category.Description)
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	categoryService := NewCategoryService(testutil.NewMockCategoryRepository())

	_, err := categoryService.Delete(99)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestDeleteCategory_ReturnsRemovedCategory(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.Delete(1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if category.Title != "Food" {
		t.Errorf("Expected title 'Food', got %s", category.Title)
	}
	if _, err := categoryRepo.GetByID(1); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected category to be gone, got %v", err)
	}
}
