package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

var _ repository.ShopStockRepository = (*ShopStockRepo)(nil)

const shopStockColumns = `shop_id, stock_id, product_code, name, price, qty, pv, bv,
	total_pv, total_bv, total, issued_at, half_price`

// ShopStockRepo implementación de ShopStockRepository sobre PostgreSQL (usable con pool o tx).
// Tabla relacional shop_stocks, clave primaria (shop_id, stock_id).
type ShopStockRepo struct {
	q Querier
}

// NewShopStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShopStockRepository(q Querier) *ShopStockRepo {
	return &ShopStockRepo{q: q}
}

func (r *ShopStockRepo) scanOne(row pgx.Row) (*entity.ShopStock, error) {
	var ss entity.ShopStock
	err := row.Scan(
		&ss.ShopID, &ss.StockID, &ss.ProductCode, &ss.Name, &ss.Price, &ss.Qty,
		&ss.PV, &ss.BV, &ss.TotalPV, &ss.TotalBV, &ss.Total, &ss.IssuedAt, &ss.HalfPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan shop stock: %w", err)
	}
	return &ss, nil
}

// Get obtiene la fila de stock emitido de una tienda.
func (r *ShopStockRepo) Get(shopID, stockID string) (*entity.ShopStock, error) {
	query := `SELECT ` + shopStockColumns + ` FROM shop_stocks WHERE shop_id = $1 AND stock_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, shopID, stockID))
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE).
// Dos ventas concurrentes sobre la misma fila se serializan aquí.
func (r *ShopStockRepo) GetForUpdate(shopID, stockID string) (*entity.ShopStock, error) {
	query := `SELECT ` + shopStockColumns + ` FROM shop_stocks WHERE shop_id = $1 AND stock_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, shopID, stockID))
}

// Upsert inserta la fila o suma la cantidad a la existente, refrescando el
// snapshot de términos e issued_at con los valores de la nueva emisión.
func (r *ShopStockRepo) Upsert(row *entity.ShopStock) error {
	query := `
		INSERT INTO shop_stocks (` + shopStockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (shop_id, stock_id) DO UPDATE SET
			product_code = EXCLUDED.product_code,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			qty = shop_stocks.qty + EXCLUDED.qty,
			pv = EXCLUDED.pv,
			bv = EXCLUDED.bv,
			total_pv = EXCLUDED.pv * (shop_stocks.qty + EXCLUDED.qty),
			total_bv = EXCLUDED.bv * (shop_stocks.qty + EXCLUDED.qty),
			total = EXCLUDED.price * (shop_stocks.qty + EXCLUDED.qty),
			issued_at = EXCLUDED.issued_at,
			half_price = EXCLUDED.half_price`
	_, err := r.q.Exec(context.Background(), query,
		row.ShopID, row.StockID, row.ProductCode, row.Name, row.Price, row.Qty,
		row.PV, row.BV, row.TotalPV, row.TotalBV, row.Total, row.IssuedAt, row.HalfPrice,
	)
	if err != nil {
		return fmt.Errorf("upsert shop stock: %w", err)
	}
	return nil
}

// Update sobreescribe la fila (cantidad y derivados ya recalculados por el caller).
func (r *ShopStockRepo) Update(row *entity.ShopStock) error {
	query := `
		UPDATE shop_stocks SET qty = $3, total_pv = $4, total_bv = $5, total = $6, issued_at = $7
		WHERE shop_id = $1 AND stock_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		row.ShopID, row.StockID, row.Qty, row.TotalPV, row.TotalBV, row.Total, row.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("update shop stock: %w", err)
	}
	return nil
}

// Delete elimina la fila de una tienda (cantidad agotada tras una venta).
func (r *ShopStockRepo) Delete(shopID, stockID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM shop_stocks WHERE shop_id = $1 AND stock_id = $2`, shopID, stockID)
	if err != nil {
		return fmt.Errorf("delete shop stock: %w", err)
	}
	return nil
}

// DeleteByStock purga el producto de todas las tiendas en una sola sentencia
// (reemplaza el barrido tienda por tienda).
func (r *ShopStockRepo) DeleteByStock(stockID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM shop_stocks WHERE stock_id = $1`, stockID)
	if err != nil {
		return fmt.Errorf("delete shop stocks by stock: %w", err)
	}
	return nil
}

// RefreshTerms reescribe el snapshot de términos en todas las tiendas con el
// producto y recalcula los derivados. Solo lo usa la edición de producto; el
// resto del tiempo el snapshot conserva los términos de la emisión.
func (r *ShopStockRepo) RefreshTerms(stockID, productCode, name string, price, pv, bv decimal.Decimal, halfPrice bool) error {
	query := `
		UPDATE shop_stocks SET product_code = $2, name = $3, price = $4, pv = $5, bv = $6,
			total_pv = $5 * qty, total_bv = $6 * qty, total = $4 * qty, half_price = $7
		WHERE stock_id = $1`
	_, err := r.q.Exec(context.Background(), query, stockID, productCode, name, price, pv, bv, halfPrice)
	if err != nil {
		return fmt.Errorf("refresh shop stock terms: %w", err)
	}
	return nil
}

// ListByShop lista el stock emitido de una tienda.
func (r *ShopStockRepo) ListByShop(shopID string) ([]*entity.ShopStock, error) {
	query := `SELECT ` + shopStockColumns + ` FROM shop_stocks WHERE shop_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, shopID)
	if err != nil {
		return nil, fmt.Errorf("list shop stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShopStock
	for rows.Next() {
		var ss entity.ShopStock
		if err := rows.Scan(
			&ss.ShopID, &ss.StockID, &ss.ProductCode, &ss.Name, &ss.Price, &ss.Qty,
			&ss.PV, &ss.BV, &ss.TotalPV, &ss.TotalBV, &ss.Total, &ss.IssuedAt, &ss.HalfPrice,
		); err != nil {
			return nil, fmt.Errorf("scan shop stock: %w", err)
		}
		list = append(list, &ss)
	}
	return list, rows.Err()
}
