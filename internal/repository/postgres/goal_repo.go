package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `g.id, g.user_id, g.category_id, g.value, g.essential_expenses,
	g.created_at, g.updated_at,
	c.id, c.title, c.description, c.created_at, c.updated_at`

const goalFrom = ` FROM goals g JOIN categories c ON c.id = g.category_id`

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var g domain.Goal
	var c domain.Category
	var value pgtype.Numeric
	err := row.Scan(
		&g.ID, &g.UserID, &g.CategoryID, &value, &g.EssentialExpenses,
		&g.CreatedAt, &g.UpdatedAt,
		&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	g.Value = pgNumericToDecimal(value)
	g.Category = &c
	return &g, nil
}

// Create inserts a new goal
func (r *GoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	value, err := decimalToPgNumeric(goal.Value)
	if err != nil {
		return nil, err
	}

	var id int64
	err = r.pool.QueryRow(context.Background(), `
		INSERT INTO goals (user_id, category_id, value, essential_expenses)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		goal.UserID, goal.CategoryID, value, goal.EssentialExpenses).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// GetByID retrieves a goal with its category
func (r *GoalRepository) GetByID(id int64) (*domain.Goal, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+goalColumns+goalFrom+` WHERE g.id = $1`, id)
	return scanGoal(row)
}

// GetByTriple retrieves the unique goal for (user, category, essential)
func (r *GoalRepository) GetByTriple(userID, categoryID int64, essential bool) (*domain.Goal, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+goalColumns+goalFrom+`
		 WHERE g.user_id = $1 AND g.category_id = $2 AND g.essential_expenses = $3`,
		userID, categoryID, essential)
	return scanGoal(row)
}

// GetAll retrieves goals visible to the scope, narrowed by the filter
func (r *GoalRepository) GetAll(scope domain.AccessScope, filter domain.GoalFilter) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + goalFrom + ` WHERE true`
	args := []any{}

	if !scope.Admin {
		args = append(args, scope.UserID)
		query += fmt.Sprintf(" AND g.user_id = $%d", len(args))
	}
	if filter.MinValue != nil {
		value, err := decimalToPgNumeric(*filter.MinValue)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
		query += fmt.Sprintf(" AND g.value >= $%d", len(args))
	}
	if filter.MaxValue != nil {
		value, err := decimalToPgNumeric(*filter.MaxValue)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
		query += fmt.Sprintf(" AND g.value <= $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND g.category_id = $%d", len(args))
	}
	if filter.Essential != nil {
		args = append(args, *filter.Essential)
		query += fmt.Sprintf(" AND g.essential_expenses = $%d", len(args))
	}
	query += " ORDER BY g.id"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update changes the supplied fields of a goal owned by ownerID. The
// ownership predicate is part of the statement so a concurrent delete cannot
// slip between check and write.
func (r *GoalRepository) Update(id, ownerID int64, fields domain.GoalUpdate) (*domain.Goal, error) {
	var value *pgtype.Numeric
	if fields.Value != nil {
		v, err := decimalToPgNumeric(*fields.Value)
		if err != nil {
			return nil, err
		}
		value = &v
	}

	var updatedID int64
	err := r.pool.QueryRow(context.Background(), `
		UPDATE goals
		SET value              = COALESCE($3, value),
		    category_id        = COALESCE($4, category_id),
		    essential_expenses = COALESCE($5, essential_expenses),
		    updated_at         = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id`,
		id, ownerID, value, fields.CategoryID, fields.EssentialExpenses).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return r.GetByID(updatedID)
}

// Delete removes a goal
func (r *GoalRepository) Delete(id int64) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}
