package service

import (
	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/shopspring/decimal"
)

// RevenueService handles revenue business logic with ownership rules
type RevenueService struct {
	revenueRepo domain.RevenueRepository
}

// NewRevenueService creates a new RevenueService
func NewRevenueService(revenueRepo domain.RevenueRepository) *RevenueService {
	return &RevenueService{revenueRepo: revenueRepo}
}

// List returns the revenues visible to the scope, narrowed by the filter
func (s *RevenueService) List(scope domain.AccessScope, filter domain.RevenueFilter) ([]*domain.Revenue, error) {
	return s.revenueRepo.GetAll(scope, filter)
}

// Get returns one revenue readable by the scope
func (s *RevenueService) Get(scope domain.AccessScope, revenueID int64) (*domain.Revenue, error) {
	revenue, err := s.revenueRepo.GetByID(revenueID)
	if err != nil {
		return nil, err
	}
	if !scope.CanRead(revenue.UserID) {
		return nil, domain.ErrForbidden
	}
	return revenue, nil
}

// Create persists a revenue owned by the caller
func (s *RevenueService) Create(scope domain.AccessScope, value *decimal.Decimal) (*domain.Revenue, error) {
	if value == nil {
		return nil, domain.ErrRevenueValueRequired
	}
	return s.revenueRepo.Create(&domain.Revenue{
		UserID: scope.UserID,
		Value:  *value,
	})
}

// Update replaces the value of a revenue the caller owns, or any revenue for
// admins.
func (s *RevenueService) Update(scope domain.AccessScope, revenueID int64, value *decimal.Decimal) (*domain.Revenue, error) {
	if value == nil {
		return nil, domain.ErrRevenueValueRequired
	}

	revenue, err := s.revenueRepo.GetByID(revenueID)
	if err != nil {
		return nil, err
	}
	if !scope.CanRead(revenue.UserID) {
		return nil, domain.ErrForbidden
	}

	return s.revenueRepo.Update(revenueID, *value)
}

// Delete removes a revenue the caller owns, or any revenue for admins,
// returning the deleted record.
func (s *RevenueService) Delete(scope domain.AccessScope, revenueID int64) (*domain.Revenue, error) {
	revenue, err := s.revenueRepo.GetByID(revenueID)
	if err != nil {
		return nil, err
	}
	if !scope.CanRead(revenue.UserID) {
		return nil, domain.ErrForbidden
	}

	if err := s.revenueRepo.Delete(revenueID); err != nil {
		return nil, err
	}
	return revenue, nil
}
