package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Revenue is an income record owned by a user
type Revenue struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Value     decimal.Decimal `json:"value"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// RevenueFilter narrows revenue listings. Nil fields are ignored.
type RevenueFilter struct {
	MinValue *decimal.Decimal
	MaxValue *decimal.Decimal
	MinDate  *time.Time
	MaxDate  *time.Time
}

type RevenueRepository interface {
	Create(revenue *Revenue) (*Revenue, error)
	GetByID(id int64) (*Revenue, error)
	GetAll(scope AccessScope, filter RevenueFilter) ([]*Revenue, error)
	Update(id int64, value decimal.Decimal) (*Revenue, error)
	Delete(id int64) error
}
