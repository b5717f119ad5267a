package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, category_id, product_code, name, description, price, purchase_price,
	qty, pv, bv, total_pv, total_bv, total, date, half_price, created_at, updated_at`

// StockRepo implementación del puerto StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create persiste un nuevo producto del inventario central.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.CategoryID, stock.ProductCode, stock.Name, stock.Description,
		stock.Price, stock.PurchasePrice, stock.Qty, stock.PV, stock.BV,
		stock.TotalPV, stock.TotalBV, stock.Total, stock.Date, stock.HalfPrice,
		stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

func (r *StockRepo) scanOne(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(
		&s.ID, &s.CategoryID, &s.ProductCode, &s.Name, &s.Description, &s.Price, &s.PurchasePrice,
		&s.Qty, &s.PV, &s.BV, &s.TotalPV, &s.TotalBV, &s.Total, &s.Date, &s.HalfPrice,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan stock: %w", err)
	}
	return &s, nil
}

// GetByID obtiene un producto por ID.
func (r *StockRepo) GetByID(id string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByProductCode obtiene un producto por su código.
func (r *StockRepo) GetByProductCode(code string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE product_code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code))
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(id string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update sobreescribe el producto completo (los derivados vienen ya recalculados).
func (r *StockRepo) Update(stock *entity.Stock) error {
	query := `
		UPDATE stocks SET category_id = $2, product_code = $3, name = $4, description = $5,
			price = $6, purchase_price = $7, qty = $8, pv = $9, bv = $10,
			total_pv = $11, total_bv = $12, total = $13, date = $14, half_price = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.CategoryID, stock.ProductCode, stock.Name, stock.Description,
		stock.Price, stock.PurchasePrice, stock.Qty, stock.PV, stock.BV,
		stock.TotalPV, stock.TotalBV, stock.Total, stock.Date, stock.HalfPrice, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// AddQty suma delta a la cantidad canónica y recalcula los derivados en una sola
// sentencia atómica (sin ciclo leer-modificar-escribir).
func (r *StockRepo) AddQty(id string, delta decimal.Decimal) error {
	query := `
		UPDATE stocks SET qty = qty + $2,
			total_pv = pv * (qty + $2),
			total_bv = bv * (qty + $2),
			total = price * (qty + $2),
			updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("add stock qty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación, los más recientes primero.
func (r *StockRepo) List(limit, offset int) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// Search busca por nombre o código de producto (ILIKE).
func (r *StockRepo) Search(term string) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + ` FROM stocks
		WHERE name ILIKE '%' || $1 || '%' OR product_code ILIKE '%' || $1 || '%'
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, term)
	if err != nil {
		return nil, fmt.Errorf("search stocks: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *StockRepo) collect(rows pgx.Rows) ([]*entity.Stock, error) {
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(
			&s.ID, &s.CategoryID, &s.ProductCode, &s.Name, &s.Description, &s.Price, &s.PurchasePrice,
			&s.Qty, &s.PV, &s.BV, &s.TotalPV, &s.TotalBV, &s.Total, &s.Date, &s.HalfPrice,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina el producto canónico. Las filas de tiendas se purgan antes
// (DeleteByStock del repositorio de shop_stocks) en el mismo flujo.
func (r *StockRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}
