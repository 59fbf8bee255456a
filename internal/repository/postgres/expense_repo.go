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

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `e.id, e.user_id, e.category_id, e.value, e.description, e.is_essential,
	e.date, e.created_at, e.updated_at,
	c.id, c.title, c.description, c.created_at, c.updated_at`

const expenseFrom = ` FROM expenses e JOIN categories c ON c.id = e.category_id`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	var c domain.Category
	var value pgtype.Numeric
	err := row.Scan(
		&e.ID, &e.UserID, &e.CategoryID, &value, &e.Description, &e.IsEssential,
		&e.Date, &e.CreatedAt, &e.UpdatedAt,
		&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	e.Value = pgNumericToDecimal(value)
	e.Category = &c
	return &e, nil
}

// Create inserts a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	value, err := decimalToPgNumeric(expense.Value)
	if err != nil {
		return nil, err
	}

	var id int64
	err = r.pool.QueryRow(context.Background(), `
		INSERT INTO expenses (user_id, category_id, value, description, is_essential, date)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
		RETURNING id`,
		expense.UserID, expense.CategoryID, value, expense.Description,
		expense.IsEssential, nullableTime(expense.Date)).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// GetByID retrieves an expense with its category
func (r *ExpenseRepository) GetByID(id int64) (*domain.Expense, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+expenseColumns+expenseFrom+` WHERE e.id = $1`, id)
	return scanExpense(row)
}

// GetAll retrieves expenses visible to the scope, narrowed by the filter
func (r *ExpenseRepository) GetAll(scope domain.AccessScope, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + expenseFrom + ` WHERE true`
	args := []any{}

	if !scope.Admin {
		args = append(args, scope.UserID)
		query += fmt.Sprintf(" AND e.user_id = $%d", len(args))
	}
	if filter.MinValue != nil {
		value, err := decimalToPgNumeric(*filter.MinValue)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
		query += fmt.Sprintf(" AND e.value >= $%d", len(args))
	}
	if filter.MaxValue != nil {
		value, err := decimalToPgNumeric(*filter.MaxValue)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
		query += fmt.Sprintf(" AND e.value <= $%d", len(args))
	}
	if filter.IsEssential != nil {
		args = append(args, *filter.IsEssential)
		query += fmt.Sprintf(" AND e.is_essential = $%d", len(args))
	}
	if filter.MinDate != nil {
		args = append(args, *filter.MinDate)
		query += fmt.Sprintf(" AND e.created_at >= $%d", len(args))
	}
	if filter.MaxDate != nil {
		args = append(args, *filter.MaxDate)
		query += fmt.Sprintf(" AND e.created_at <= $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND e.category_id = $%d", len(args))
	}
	query += " ORDER BY e.id"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// Update changes the supplied fields of an expense owned by ownerID. The
// ownership predicate is part of the statement so a concurrent delete cannot
// slip between check and write.
func (r *ExpenseRepository) Update(id, ownerID int64, fields domain.ExpenseUpdate) (*domain.Expense, error) {
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
		UPDATE expenses
		SET value        = COALESCE($3, value),
		    description  = COALESCE($4, description),
		    is_essential = COALESCE($5, is_essential),
		    category_id  = COALESCE($6, category_id),
		    updated_at   = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id`,
		id, ownerID, value, fields.Description, fields.IsEssential, fields.CategoryID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return r.GetByID(updatedID)
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(id int64) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// SumForGoal sums expense values inside the window for one user, category and
// essentiality class, grouped by month-of-date. The window bounds are compared
// at day granularity, both ends inclusive.
func (r *ExpenseRepository) SumForGoal(userID, categoryID int64, isEssential bool, window domain.Window) ([]domain.MonthTotal, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT EXTRACT(MONTH FROM date)::int AS month, SUM(value) AS total
		FROM expenses
		WHERE user_id = $1
		  AND category_id = $2
		  AND is_essential = $3
		  AND date::date BETWEEN $4::date AND $5::date
		GROUP BY month
		ORDER BY month`,
		userID, categoryID, isEssential, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.MonthTotal
	for rows.Next() {
		var mt domain.MonthTotal
		var total pgtype.Numeric
		if err := rows.Scan(&mt.Month, &total); err != nil {
			return nil, err
		}
		mt.Total = pgNumericToDecimal(total)
		totals = append(totals, mt)
	}
	return totals, rows.Err()
}
