package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pos-backend/internal/apperrors"
	"pos-backend/internal/models"
)

type ShopRepository struct {
	DB *pgxpool.Pool
}

func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{DB: db}
}

const shopColumns = `id, name, location, address, phone, owner_id, created_at, updated_at`

func scanShop(row pgx.Row) (*models.Shop, error) {
	var s models.Shop
	err := row.Scan(&s.ID, &s.Name, &s.Location, &s.Address, &s.Phone,
		&s.OwnerID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("shop not found")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShopRepository) Create(ctx context.Context, s *models.Shop) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO shops(name, location, address, phone, owner_id)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		s.Name, s.Location, s.Address, s.Phone, s.OwnerID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *ShopRepository) Get(ctx context.Context, id int) (*models.Shop, error) {
	return scanShop(r.DB.QueryRow(ctx,
		`SELECT `+shopColumns+` FROM shops WHERE id=$1`, id))
}

func (r *ShopRepository) List(ctx context.Context) ([]*models.Shop, error) {
	return r.list(ctx, `SELECT `+shopColumns+` FROM shops ORDER BY created_at DESC`)
}

func (r *ShopRepository) ListByOwner(ctx context.Context, ownerID int) ([]*models.Shop, error) {
	return r.list(ctx,
		`SELECT `+shopColumns+` FROM shops WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
}

func (r *ShopRepository) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Shop, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []*models.Shop
	for rows.Next() {
		var s models.Shop
		err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Address, &s.Phone,
			&s.OwnerID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		shops = append(shops, &s)
	}
	return shops, rows.Err()
}

func (r *ShopRepository) Update(ctx context.Context, s *models.Shop) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE shops SET name=$1, location=$2, address=$3, phone=$4, updated_at=CURRENT_TIMESTAMP
         WHERE id=$5`,
		s.Name, s.Location, s.Address, s.Phone, s.ID)
	return err
}

func (r *ShopRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM shops WHERE id=$1`, id)
	return err
}
