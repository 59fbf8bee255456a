package postgres

import (
	"context"
	"errors"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password, role, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user with the default USER role
func (r *UserRepository) Create(user *domain.User) (*domain.User, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), 'USER'))
		RETURNING `+userColumns,
		user.Name, user.Email, user.Password, string(user.Role))

	return scanUser(row)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int64) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByName retrieves a user by name
func (r *UserRepository) GetByName(name string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE name = $1`, name)
	return scanUser(row)
}

// GetAll retrieves every user
func (r *UserRepository) GetAll() ([]*domain.User, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// UpdateName updates only the user's name
func (r *UserRepository) UpdateName(id int64, name string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE users SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, name)
	return scanUser(row)
}

// UpdateEmail updates only the user's email
func (r *UserRepository) UpdateEmail(id int64, email string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE users SET email = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, email)
	return scanUser(row)
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(id int64, hashedPassword string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE users SET password = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, hashedPassword)
	return scanUser(row)
}

// Delete removes a user and, via ON DELETE CASCADE, their records
func (r *UserRepository) Delete(id int64) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// PasswordResetTokenRepository implements domain.PasswordResetTokenRepository using PostgreSQL
type PasswordResetTokenRepository struct {
	pool *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(pool *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{pool: pool}
}

// Create issues a new reset token for the user
func (r *PasswordResetTokenRepository) Create(userID int64) (*domain.PasswordResetToken, error) {
	var t domain.PasswordResetToken
	err := r.pool.QueryRow(context.Background(), `
		INSERT INTO password_reset_tokens (id, user_id)
		VALUES ($1, $2)
		RETURNING id, user_id, created_at`,
		uuid.New(), userID).Scan(&t.ID, &t.UserID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a reset token by its id
func (r *PasswordResetTokenRepository) GetByID(id uuid.UUID) (*domain.PasswordResetToken, error) {
	var t domain.PasswordResetToken
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, user_id, created_at FROM password_reset_tokens WHERE id = $1`,
		id).Scan(&t.ID, &t.UserID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResetTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Delete removes a consumed reset token
func (r *PasswordResetTokenRepository) Delete(id uuid.UUID) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM password_reset_tokens WHERE id = $1`, id)
	return err
}
