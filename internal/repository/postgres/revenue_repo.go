package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RevenueRepository implements domain.RevenueRepository using PostgreSQL
type RevenueRepository struct {
	pool *pgxpool.Pool
}

// NewRevenueRepository creates a new RevenueRepository
func NewRevenueRepository(pool *pgxpool.Pool) *RevenueRepository {
	return &RevenueRepository{pool: pool}
}

const revenueColumns = `id, user_id, value, created_at, updated_at`

func scanRevenue(row pgx.Row) (*domain.Revenue, error) {
	var rev domain.Revenue
	var value pgtype.Numeric
	err := row.Scan(&rev.ID, &rev.UserID, &value, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRevenueNotFound
		}
		return nil, err
	}
	rev.Value = pgNumericToDecimal(value)
	return &rev, nil
}

// Create inserts a new revenue
func (r *RevenueRepository) Create(revenue *domain.Revenue) (*domain.Revenue, error) {
	value, err := decimalToPgNumeric(revenue.Value)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO revenues (user_id, value)
		VALUES ($1, $2)
		RETURNING `+revenueColumns,
		revenue.UserID, value)
	return scanRevenue(row)
}

// GetByID retrieves a revenue by ID
func (r *RevenueRepository) GetByID(id int64) (*domain.Revenue, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+revenueColumns+` FROM revenues WHERE id = $1`, id)
	return scanRevenue(row)
}

// GetAll retrieves revenues visible to the scope, narrowed by the filter
func (r *RevenueRepository) GetAll(scope domain.AccessScope, filter domain.RevenueFilter) ([]*domain.Revenue, error) {
	query := `SELECT ` + revenueColumns + ` FROM revenues WHERE true`
	args := []any{}

	if !scope.Admin {
		args = append(args, scope.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if filter.MinValue != nil {
		value, err := decimalToPgNumeric(*filter.MinValue)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
		query += fmt.Sprintf(" AND value >= $%d", len(args))
	}
	if filter.MaxValue != nil {
		value, err := decimalToPgNumeric(*filter.MaxValue)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
		query += fmt.Sprintf(" AND value <= $%d", len(args))
	}
	if filter.MinDate != nil {
		args = append(args, *filter.MinDate)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.MaxDate != nil {
		args = append(args, *filter.MaxDate)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revenues []*domain.Revenue
	for rows.Next() {
		revenue, err := scanRevenue(rows)
		if err != nil {
			return nil, err
		}
		revenues = append(revenues, revenue)
	}
	return revenues, rows.Err()
}

// Update replaces the revenue's value
func (r *RevenueRepository) Update(id int64, value decimal.Decimal) (*domain.Revenue, error) {
	num, err := decimalToPgNumeric(value)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(context.Background(), `
		UPDATE revenues SET value = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+revenueColumns, id, num)
	return scanRevenue(row)
}

// Delete removes a revenue
func (r *RevenueRepository) Delete(id int64) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM revenues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRevenueNotFound
	}
	return nil
}
