package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, name, email, password_hash, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, role)
         VALUES($1, $2, $3, $4)
         RETURNING id, is_active, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	return scanUser(r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Count returns the total number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET name=$1, email=$2, password_hash=$3, role=$4, is_active=$5, updated_at=CURRENT_TIMESTAMP
         WHERE id=$6`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive, u.ID)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}
