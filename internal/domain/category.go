package domain

import "time"

// Category groups expenses and goals
type Category struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryUpdate carries the optional fields of a category update
type CategoryUpdate struct {
	Title       *string
	Description *string
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id int64) (*Category, error)
	GetAll() ([]*Category, error)
	Update(id int64, fields CategoryUpdate) (*Category, error)
	Delete(id int64) error
}
