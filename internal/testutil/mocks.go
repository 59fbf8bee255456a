package testutil

import (
	"sort"
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users  map[int64]*domain.User
	NextID int64
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[int64]*domain.User), NextID: 1}
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	if user.ID == 0 {
		user.ID = m.NextID
	}
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
	m.Users[user.ID] = user
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	user.ID = m.NextID
	m.NextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id int64) (*domain.User, error) {
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByName retrieves a user by name
func (m *MockUserRepository) GetByName(name string) (*domain.User, error) {
	for _, user := range m.Users {
		if user.Name == name {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetAll retrieves every user ordered by ID
func (m *MockUserRepository) GetAll() ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateName updates the user's name
func (m *MockUserRepository) UpdateName(id int64, name string) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Name = name
	user.UpdatedAt = time.Now()
	return user, nil
}

// UpdateEmail updates the user's email
func (m *MockUserRepository) UpdateEmail(id int64, email string) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Email = email
	user.UpdatedAt = time.Now()
	return user, nil
}

// UpdatePassword updates the user's hashed password
func (m *MockUserRepository) UpdatePassword(id int64, hashedPassword string) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Password = hashedPassword
	user.UpdatedAt = time.Now()
	return user, nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(id int64) error {
	if _, ok := m.Users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.Users, id)
	return nil
}

// MockPasswordResetTokenRepository is a mock implementation of
// domain.PasswordResetTokenRepository
type MockPasswordResetTokenRepository struct {
	Tokens map[uuid.UUID]*domain.PasswordResetToken
}

// NewMockPasswordResetTokenRepository creates a new MockPasswordResetTokenRepository
func NewMockPasswordResetTokenRepository() *MockPasswordResetTokenRepository {
	return &MockPasswordResetTokenRepository{Tokens: make(map[uuid.UUID]*domain.PasswordResetToken)}
}

// Create issues a new token for the user
func (m *MockPasswordResetTokenRepository) Create(userID int64) (*domain.PasswordResetToken, error) {
	token := &domain.PasswordResetToken{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
	m.Tokens[token.ID] = token
	return token, nil
}

// GetByID retrieves a token by ID
func (m *MockPasswordResetTokenRepository) GetByID(id uuid.UUID) (*domain.PasswordResetToken, error) {
	if token, ok := m.Tokens[id]; ok {
		return token, nil
	}
	return nil, domain.ErrResetTokenNotFound
}

// Delete removes a token
func (m *MockPasswordResetTokenRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Tokens[id]; !ok {
		return domain.ErrResetTokenNotFound
	}
	delete(m.Tokens, id)
	return nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int64]*domain.Category
	NextID     int64
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[int64]*domain.Category), NextID: 1}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID == 0 {
		category.ID = m.NextID
	}
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	m.Categories[category.ID] = category
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int64) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves every category ordered by ID
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// Update applies the non-nil fields to the category
func (m *MockCategoryRepository) Update(id int64, fields domain.CategoryUpdate) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if fields.Title != nil {
		category.Title = *fields.Title
	}
	if fields.Description != nil {
		category.Description = *fields.Description
	}
	category.UpdatedAt = time.Now()
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id int64) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository.
// SumForGoal computes real month-grouped sums over the stored expenses so the
// aggregator can be exercised without a database. Setting SumErr makes
// SumForGoal fail, simulating an unavailable store.
type MockExpenseRepository struct {
	Expenses map[int64]*domain.Expense
	NextID   int64
	SumErr   error
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{Expenses: make(map[int64]*domain.Expense), NextID: 1}
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	if expense.ID == 0 {
		expense.ID = m.NextID
	}
	if expense.ID >= m.NextID {
		m.NextID = expense.ID + 1
	}
	m.Expenses[expense.ID] = expense
}

// Create creates a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	expense.ID = m.NextID
	m.NextID++
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id int64) (*domain.Expense, error) {
	if expense, ok := m.Expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// GetAll retrieves the expenses visible to the scope, applying the filter
func (m *MockExpenseRepository) GetAll(scope domain.AccessScope, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	expenses := make([]*domain.Expense, 0, len(m.Expenses))
	for _, expense := range m.Expenses {
		if !scope.Admin && expense.UserID != scope.UserID {
			continue
		}
		if filter.MinValue != nil && expense.Value.LessThan(*filter.MinValue) {
			continue
		}
		if filter.MaxValue != nil && expense.Value.GreaterThan(*filter.MaxValue) {
			continue
		}
		if filter.IsEssential != nil && expense.IsEssential != *filter.IsEssential {
			continue
		}
		if filter.CategoryID != nil && expense.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.MinDate != nil && expense.Date.Before(*filter.MinDate) {
			continue
		}
		if filter.MaxDate != nil && expense.Date.After(*filter.MaxDate) {
			continue
		}
		expenses = append(expenses, expense)
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].ID < expenses[j].ID })
	return expenses, nil
}

// Update applies the non-nil fields when the expense belongs to ownerID
func (m *MockExpenseRepository) Update(id, ownerID int64, fields domain.ExpenseUpdate) (*domain.Expense, error) {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != ownerID {
		return nil, domain.ErrExpenseNotFound
	}
	if fields.Value != nil {
		expense.Value = *fields.Value
	}
	if fields.Description != nil {
		expense.Description = *fields.Description
	}
	if fields.IsEssential != nil {
		expense.IsEssential = *fields.IsEssential
	}
	if fields.CategoryID != nil {
		expense.CategoryID = *fields.CategoryID
	}
	expense.UpdatedAt = time.Now()
	return expense, nil
}

// Delete removes an expense
func (m *MockExpenseRepository) Delete(id int64) error {
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// SumForGoal sums matching expense values grouped by month-of-date, skipping
// months with no matches, ordered by month ascending.
func (m *MockExpenseRepository) SumForGoal(userID, categoryID int64, isEssential bool, window domain.Window) ([]domain.MonthTotal, error) {
	if m.SumErr != nil {
		return nil, m.SumErr
	}
	totals := make(map[int]decimal.Decimal)
	for _, expense := range m.Expenses {
		if expense.UserID != userID || expense.CategoryID != categoryID || expense.IsEssential != isEssential {
			continue
		}
		day := time.Date(expense.Date.Year(), expense.Date.Month(), expense.Date.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(window.Start) || day.After(window.End) {
			continue
		}
		month := int(expense.Date.Month())
		totals[month] = totals[month].Add(expense.Value)
	}

	months := make([]int, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Ints(months)

	result := make([]domain.MonthTotal, 0, len(months))
	for _, month := range months {
		result = append(result, domain.MonthTotal{Month: month, Total: totals[month]})
	}
	return result, nil
}

// MockRevenueRepository is a mock implementation of domain.RevenueRepository
type MockRevenueRepository struct {
	Revenues map[int64]*domain.Revenue
	NextID   int64
}

// NewMockRevenueRepository creates a new MockRevenueRepository
func NewMockRevenueRepository() *MockRevenueRepository {
	return &MockRevenueRepository{Revenues: make(map[int64]*domain.Revenue), NextID: 1}
}

// AddRevenue adds a revenue to the mock repository (helper for tests)
func (m *MockRevenueRepository) AddRevenue(revenue *domain.Revenue) {
	if revenue.ID == 0 {
		revenue.ID = m.NextID
	}
	if revenue.ID >= m.NextID {
		m.NextID = revenue.ID + 1
	}
	m.Revenues[revenue.ID] = revenue
}

// Create creates a new revenue
func (m *MockRevenueRepository) Create(revenue *domain.Revenue) (*domain.Revenue, error) {
	revenue.ID = m.NextID
	m.NextID++
	revenue.CreatedAt = time.Now()
	revenue.UpdatedAt = revenue.CreatedAt
	m.Revenues[revenue.ID] = revenue
	return revenue, nil
}

// GetByID retrieves a revenue by ID
func (m *MockRevenueRepository) GetByID(id int64) (*domain.Revenue, error) {
	if revenue, ok := m.Revenues[id]; ok {
		return revenue, nil
	}
	return nil, domain.ErrRevenueNotFound
}

// GetAll retrieves the revenues visible to the scope, applying the filter
func (m *MockRevenueRepository) GetAll(scope domain.AccessScope, filter domain.RevenueFilter) ([]*domain.Revenue, error) {
	revenues := make([]*domain.Revenue, 0, len(m.Revenues))
	for _, revenue := range m.Revenues {
		if !scope.Admin && revenue.UserID != scope.UserID {
			continue
		}
		if filter.MinValue != nil && revenue.Value.LessThan(*filter.MinValue) {
			continue
		}
		if filter.MaxValue != nil && revenue.Value.GreaterThan(*filter.MaxValue) {
			continue
		}
		if filter.MinDate != nil && revenue.CreatedAt.Before(*filter.MinDate) {
			continue
		}
		if filter.MaxDate != nil && revenue.CreatedAt.After(*filter.MaxDate) {
			continue
		}
		revenues = append(revenues, revenue)
	}
	sort.Slice(revenues, func(i, j int) bool { return revenues[i].ID < revenues[j].ID })
	return revenues, nil
}

// Update replaces the revenue value
func (m *MockRevenueRepository) Update(id int64, value decimal.Decimal) (*domain.Revenue, error) {
	revenue, ok := m.Revenues[id]
	if !ok {
		return nil, domain.ErrRevenueNotFound
	}
	revenue.Value = value
	revenue.UpdatedAt = time.Now()
	return revenue, nil
}

// Delete removes a revenue
func (m *MockRevenueRepository) Delete(id int64) error {
	if _, ok := m.Revenues[id]; !ok {
		return domain.ErrRevenueNotFound
	}
	delete(m.Revenues, id)
	return nil
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	Goals  map[int64]*domain.Goal
	NextID int64
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{Goals: make(map[int64]*domain.Goal), NextID: 1}
}

// AddGoal adds a goal to the mock repository (helper for tests)
func (m *MockGoalRepository) AddGoal(goal *domain.Goal) {
	if goal.ID == 0 {
		goal.ID = m.NextID
	}
	if goal.ID >= m.NextID {
		m.NextID = goal.ID + 1
	}
	m.Goals[goal.ID] = goal
}

// Create creates a new goal
func (m *MockGoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	goal.ID = m.NextID
	m.NextID++
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	m.Goals[goal.ID] = goal
	return goal, nil
}

// GetByID retrieves a goal by ID
func (m *MockGoalRepository) GetByID(id int64) (*domain.Goal, error) {
	if goal, ok := m.Goals[id]; ok {
		return goal, nil
	}
	return nil, domain.ErrGoalNotFound
}

// GetByTriple retrieves the goal for (user, category, essential)
func (m *MockGoalRepository) GetByTriple(userID, categoryID int64, essential bool) (*domain.Goal, error) {
	for _, goal := range m.Goals {
		if goal.UserID == userID && goal.CategoryID == categoryID && goal.EssentialExpenses == essential {
			return goal, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

// GetAll retrieves the goals visible to the scope, applying the filter
func (m *MockGoalRepository) GetAll(scope domain.AccessScope, filter domain.GoalFilter) ([]*domain.Goal, error) {
	goals := make([]*domain.Goal, 0, len(m.Goals))
	for _, goal := range m.Goals {
		if !scope.Admin && goal.UserID != scope.UserID {
			continue
		}
		if filter.MinValue != nil && goal.Value.LessThan(*filter.MinValue) {
			continue
		}
		if filter.MaxValue != nil && goal.Value.GreaterThan(*filter.MaxValue) {
			continue
		}
		if filter.CategoryID != nil && goal.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Essential != nil && goal.EssentialExpenses != *filter.Essential {
			continue
		}
		goals = append(goals, goal)
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

// Update applies the non-nil fields when the goal belongs to ownerID
func (m *MockGoalRepository) Update(id, ownerID int64, fields domain.GoalUpdate) (*domain.Goal, error) {
	goal, ok := m.Goals[id]
	if !ok || goal.UserID != ownerID {
		return nil, domain.ErrGoalNotFound
	}
	if fields.Value != nil {
		goal.Value = *fields.Value
	}
	if fields.CategoryID != nil {
		goal.CategoryID = *fields.CategoryID
	}
	if fields.EssentialExpenses != nil {
		goal.EssentialExpenses = *fields.EssentialExpenses
	}
	goal.UpdatedAt = time.Now()
	return goal, nil
}

// Delete removes a goal
func (m *MockGoalRepository) Delete(id int64) error {
	if _, ok := m.Goals[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	return nil
}
