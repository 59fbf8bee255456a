package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/ViniciusBessa/planejando-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalServiceForTest(t *testing.T) (*GoalService, *testutil.MockGoalRepository, *testutil.MockCategoryRepository, *testutil.MockExpenseRepository) {
	t.Helper()
	goalRepo := testutil.NewMockGoalRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	aggregator := NewGoalAggregator(expenseRepo)
	service := NewGoalService(goalRepo, categoryRepo, aggregator, decimal.Zero, decimal.RequireFromString("99999999999999"))
	return service, goalRepo, categoryRepo, expenseRepo
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
func int64Ptr(v int64) *int64                       { return &v }
func boolPtr(v bool) *bool                          { return &v }

func TestCreateGoal_Success(t *testing.T) {
	service, _, categoryRepo, _ := newGoalServiceForTest(t)
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})

	scope := domain.AccessScope{UserID: 1}
	goal, err := service.CreateGoal(scope, decimalPtr(decimal.NewFromInt(500)), int64Ptr(1), false, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(1), goal.UserID)
	assert.Equal(t, int64(1), goal.CategoryID)
	assert.True(t, goal.Value.Equal(decimal.NewFromInt(500)))
	assert.False(t, goal.EssentialExpenses)
	assert.True(t, goal.Total.IsZero())
	assert.NotNil(t, goal.SumExpenses)
}

func TestCreateGoal_MissingValue(t *testing.T) {
	service, _, _, _ := newGoalServiceForTest(t)

	_, err := service.CreateGoal(domain.AccessScope{UserID: 1}, nil, int64Ptr(1), false, nil, nil)

	assert.ErrorIs(t, err, domain.ErrGoalValueRequired)
}

func TestCreateGoal_MissingCategory(t *testing.T) {
	service, _, _, _ := newGoalServiceForTest(t)

	_, err := service.CreateGoal(domain.AccessScope{UserID: 1}, decimalPtr(decimal.NewFromInt(500)), nil, false, nil, nil)

	assert.ErrorIs(t, err, domain.ErrGoalCategoryRequired)
}

func TestCreateGoal_ValueMustBePositive(t *testing.T) {
	service, _, categoryRepo, _ := newGoalServiceForTest(t)
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})

	scope := domain.AccessScope{UserID: 1}

	_, err := service.CreateGoal(scope, decimalPtr(decimal.Zero), int64Ptr(1), false, nil, nil)
	assert.ErrorIs(t, err, domain.ErrGoalValueOutOfRange)

	_, err = service.CreateGoal(scope, decimalPtr(decimal.NewFromInt(-10)), int64Ptr(1), false, nil, nil)
	assert.ErrorIs(t, err, domain.ErrGoalValueOutOfRange)
}

func TestCreateGoal_ValueAboveMaximum(t *testing.T) {
	service, _, categoryRepo, _ := newGoalServiceForTest(t)
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})

	tooLarge := decimal.RequireFromString("100000000000000")
	_, err := service.CreateGoal(domain.AccessScope{UserID: 1}, decimalPtr(tooLarge), int64Ptr(1), false, nil, nil)

	assert.ErrorIs(t, err, domain.ErrGoalValueOutOfRange)
}

func TestCreateGoal_UnknownCategory(t *testing.T) {
	service, _, _, _ := newGoalServiceForTest(t)

	_, err := service.CreateGoal(domain.AccessScope{UserID: 1}, decimalPtr(decimal.NewFromInt(500)), int64Ptr(99), false, nil, nil)

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCreateGoal_DuplicateTripleFailsRegardlessOfValue(t *testing.T) {
	service, goalRepo, categoryRepo, _ := newGoalServiceForTest(t)
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})
	goalRepo.AddGoal(&domain.Goal{UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500), EssentialExpenses: false})

	_, err := service.CreateGoal(domain.AccessScope{UserID: 1}, decimalPtr(decimal.NewFromInt(900)), int64Ptr(1), false, nil, nil)

	assert.ErrorIs(t, err, domain.ErrDuplicateGoal)
}

func TestCreateGoal_SameCategoryDifferentEssentiality(t *testing.T) {
	service, goalRepo, categoryRepo, _ := newGoalServiceForTest(t)
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})
	goalRepo.AddGoal(&domain.Goal{UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500), EssentialExpenses: false})

	goal, err := service.CreateGoal(domain.AccessScope{UserID: 1}, decimalPtr(decimal.NewFromInt(300)), int64Ptr(1), true, nil, nil)

	require.NoError(t, err)
	assert.True(t, goal.EssentialExpenses)
}

func TestCreateGoal_SameTripleDifferentUser(t *testing.T) {
	service, goalRepo, categoryRepo, _ := newGoalServiceForTest(t)
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})
	goalRepo.AddGoal(&domain.Goal{UserID: 2, CategoryID: 1, Value: decimal.NewFromInt(500), EssentialExpenses: false})

	_, err := service.CreateGoal(domain.AccessScope{UserID: 1}, decimalPtr(decimal.NewFromInt(300)), int64Ptr(1), false, nil, nil)

	assert.NoError(t, err)
}

func TestGetGoal_ForbiddenForOtherUser(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 2, CategoryID: 1, Value: decimal.NewFromInt(500)})

	_, err := service.GetGoal(domain.AccessScope{UserID: 1}, 1, nil, nil)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetGoal_AdminReadsAnyGoal(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 2, CategoryID: 1, Value: decimal.NewFromInt(500)})

	goal, err := service.GetGoal(domain.AccessScope{UserID: 1, Admin: true}, 1, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(2), goal.UserID)
}

func TestGetGoal_NotFound(t *testing.T) {
	service, _, _, _ := newGoalServiceForTest(t)

	_, err := service.GetGoal(domain.AccessScope{UserID: 1}, 99, nil, nil)

	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestListGoals_NonAdminOnlySeesOwnGoals(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500)})
	goalRepo.AddGoal(&domain.Goal{UserID: 2, CategoryID: 1, Value: decimal.NewFromInt(300)})

	goals, err := service.ListGoals(domain.AccessScope{UserID: 1}, domain.GoalFilter{}, nil, nil)

	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, int64(1), goals[0].UserID)
}

func TestListGoals_AdminSeesEveryGoal(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500)})
	goalRepo.AddGoal(&domain.Goal{UserID: 2, CategoryID: 1, Value: decimal.NewFromInt(300)})

	goals, err := service.ListGoals(domain.AccessScope{UserID: 1, Admin: true}, domain.GoalFilter{}, nil, nil)

	require.NoError(t, err)
	assert.Len(t, goals, 2)
}

func TestListGoals_AppliesValueFilter(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(100)})
	goalRepo.AddGoal(&domain.Goal{UserID: 1, CategoryID: 2, Value: decimal.NewFromInt(900)})

	filter := domain.GoalFilter{MinValue: decimalPtr(decimal.NewFromInt(500))}
	goals, err := service.ListGoals(domain.AccessScope{UserID: 1}, filter, nil, nil)

	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.True(t, goals[0].Value.Equal(decimal.NewFromInt(900)))
}

func TestUpdateGoal_Success(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500)})

	fields := domain.GoalUpdate{Value: decimalPtr(decimal.NewFromInt(750))}
	goal, err := service.UpdateGoal(domain.AccessScope{UserID: 1}, 1, fields, nil, nil)

	require.NoError(t, err)
	assert.True(t, goal.Value.Equal(decimal.NewFromInt(750)))
}

func TestUpdateGoal_NoFields(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500)})

	_, err := service.UpdateGoal(domain.AccessScope{UserID: 1}, 1, domain.GoalUpdate{}, nil, nil)

	assert.ErrorIs(t, err, domain.ErrGoalNoFields)
}

func TestUpdateGoal_AdminGetsNoOverride(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 2, CategoryID: 1, Value: decimal.NewFromInt(500)})

	fields := domain.GoalUpdate{Value: decimalPtr(decimal.NewFromInt(750))}
	_, err := service.UpdateGoal(domain.AccessScope{UserID: 1, Admin: true}, 1, fields, nil, nil)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateGoal_MovingToOccupiedTriple(t *testing.T) {
	service, goalRepo, categoryRepo, _ := newGoalServiceForTest(t)
	categoryRepo.AddCategory(&domain.Category{ID: 2, Title: "Transport", Description: "Fares and fuel"})
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500)})
	goalRepo.AddGoal(&domain.Goal{ID: 2, UserID: 1, CategoryID: 2, Value: decimal.NewFromInt(300)})

	fields := domain.GoalUpdate{CategoryID: int64Ptr(2)}
	_, err := service.UpdateGoal(domain.AccessScope{UserID: 1}, 1, fields, nil, nil)

	assert.ErrorIs(t, err, domain.ErrDuplicateGoal)
}

func TestUpdateGoal_FlippingEssentialityToFreeTriple(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500), EssentialExpenses: false})

	fields := domain.GoalUpdate{EssentialExpenses: boolPtr(true)}
	goal, err := service.UpdateGoal(domain.AccessScope{UserID: 1}, 1, fields, nil, nil)

	require.NoError(t, err)
	assert.True(t, goal.EssentialExpenses)
}

func TestUpdateGoal_ValueOutOfRangeCheckedBeforeLookup(t *testing.T) {
	service, _, _, _ := newGoalServiceForTest(t)

	// Goal 99 does not exist, yet the range failure wins
	fields := domain.GoalUpdate{Value: decimalPtr(decimal.NewFromInt(-5))}
	_, err := service.UpdateGoal(domain.AccessScope{UserID: 1}, 99, fields, nil, nil)

	assert.ErrorIs(t, err, domain.ErrGoalValueOutOfRange)
}

func TestDeleteGoal_ReturnsSnapshotWithTotals(t *testing.T) {
	service, goalRepo, _, expenseRepo := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500)})
	expenseRepo.AddExpense(&domain.Expense{
		UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(120),
		Date: time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC),
	})

	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC)
	goal, err := service.DeleteGoal(domain.AccessScope{UserID: 1}, 1, timePtr(start), timePtr(end))

	require.NoError(t, err)
	assert.True(t, goal.Total.Equal(decimal.NewFromInt(120)))

	_, err = goalRepo.GetByID(1)
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestDeleteGoal_AdminDeletesAnyGoal(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 2, CategoryID: 1, Value: decimal.NewFromInt(500)})

	goal, err := service.DeleteGoal(domain.AccessScope{UserID: 1, Admin: true}, 1, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(2), goal.UserID)
}

func TestDeleteGoal_ForbiddenForOtherUser(t *testing.T) {
	service, goalRepo, _, _ := newGoalServiceForTest(t)
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 2, CategoryID: 1, Value: decimal.NewFromInt(500)})

	_, err := service.DeleteGoal(domain.AccessScope{UserID: 1}, 1, nil, nil)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListGoals_AbortsWhenStoreFails(t *testing.T) {
	service, goalRepo, categoryRepo, expenseRepo := newGoalServiceForTest(t)
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})
	goalRepo.AddGoal(&domain.Goal{UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500)})
	expenseRepo.SumErr = errors.New("connection refused")

	goals, err := service.ListGoals(domain.AccessScope{UserID: 1}, domain.GoalFilter{}, nil, nil)

	require.ErrorIs(t, err, expenseRepo.SumErr)
	assert.Nil(t, goals)
}

func TestDeleteGoal_AbortsWhenStoreFails(t *testing.T) {
	service, goalRepo, categoryRepo, expenseRepo := newGoalServiceForTest(t)
	categoryRepo.AddCategory(&domain.Category{ID: 1, Title: "Food", Description: "Groceries and meals"})
	goalRepo.AddGoal(&domain.Goal{ID: 1, UserID: 1, CategoryID: 1, Value: decimal.NewFromInt(500)})
	expenseRepo.SumErr = errors.New("connection refused")

	_, err := service.DeleteGoal(domain.AccessScope{UserID: 1}, 1, nil, nil)
	require.ErrorIs(t, err, expenseRepo.SumErr)

	// The goal must survive a failed snapshot
	expenseRepo.SumErr = nil
	goal, err := service.GetGoal(domain.AccessScope{UserID: 1}, 1, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), goal.ID)
}
