package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository sobre PostgreSQL (usable con pool o tx).
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

// Create persiste una nueva tienda.
func (r *ShopRepo) Create(shop *entity.Shop) error {
	query := `
		INSERT INTO shops (id, name, serial_number, location, contact, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		shop.ID, shop.Name, shop.SerialNumber, shop.Location, shop.Contact, shop.UserID, shop.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *ShopRepo) GetByID(id string) (*entity.Shop, error) {
	query := `SELECT id, name, serial_number, location, contact, user_id, created_at FROM shops WHERE id = $1`
	var s entity.Shop
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.SerialNumber, &s.Location, &s.Contact, &s.UserID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return &s, nil
}

// Update actualiza los datos de la tienda.
func (r *ShopRepo) Update(shop *entity.Shop) error {
	query := `
		UPDATE shops SET name = $2, serial_number = $3, location = $4, contact = $5, user_id = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		shop.ID, shop.Name, shop.SerialNumber, shop.Location, shop.Contact, shop.UserID,
	)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	return nil
}

// List lista tiendas con paginación.
func (r *ShopRepo) List(limit, offset int) ([]*entity.Shop, error) {
	query := `SELECT id, name, serial_number, location, contact, user_id, created_at
		FROM shops ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shop
	for rows.Next() {
		var s entity.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.SerialNumber, &s.Location, &s.Contact, &s.UserID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina una tienda por ID.
func (r *ShopRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	return nil
}
