package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una línea de venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, quantity, paid, client_type, unit_price, stock_id, customer_id, shop_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Date, sale.Quantity, sale.Paid, sale.ClientType, sale.UnitPrice,
		sale.StockID, sale.CustomerID, sale.ShopID, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, date, quantity, paid, client_type, unit_price, stock_id, customer_id, shop_id, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Date, &s.Quantity, &s.Paid, &s.ClientType, &s.UnitPrice,
		&s.StockID, &s.CustomerID, &s.ShopID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

const saleRowSelect = `
	SELECT s.id, s.date, s.quantity, s.paid, s.client_type, s.unit_price,
	       s.stock_id, s.customer_id, s.shop_id, s.created_at,
	       st.name, st.product_code, sh.name, COALESCE(c.name, '')
	FROM sales s
	JOIN stocks st ON st.id = s.stock_id
	JOIN shops  sh ON sh.id = s.shop_id
	LEFT JOIN customers c ON c.id = s.customer_id`

func scanSaleRow(rows pgx.Rows) (*repository.SaleRow, error) {
	var row repository.SaleRow
	if err := rows.Scan(
		&row.Sale.ID, &row.Sale.Date, &row.Sale.Quantity, &row.Sale.Paid, &row.Sale.ClientType,
		&row.Sale.UnitPrice, &row.Sale.StockID, &row.Sale.CustomerID, &row.Sale.ShopID,
		&row.Sale.CreatedAt, &row.StockName, &row.ProductCode, &row.ShopName, &row.CustomerName,
	); err != nil {
		return nil, fmt.Errorf("scan sale row: %w", err)
	}
	return &row, nil
}

// GetRowByID obtiene una venta con los nombres de producto, tienda y cliente resueltos.
func (r *SaleRepo) GetRowByID(id string) (*repository.SaleRow, error) {
	var row repository.SaleRow
	err := r.q.QueryRow(context.Background(), saleRowSelect+` WHERE s.id = $1`, id).Scan(
		&row.Sale.ID, &row.Sale.Date, &row.Sale.Quantity, &row.Sale.Paid, &row.Sale.ClientType,
		&row.Sale.UnitPrice, &row.Sale.StockID, &row.Sale.CustomerID, &row.Sale.ShopID,
		&row.Sale.CreatedAt, &row.StockName, &row.ProductCode, &row.ShopName, &row.CustomerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale row: %w", err)
	}
	return &row, nil
}

// ListNewest devuelve las ventas más recientes, tope limit. Carga incremental:
// el caller pide 30×página y el frontend descarta lo que ya tiene.
func (r *SaleRepo) ListNewest(limit int) ([]*repository.SaleRow, error) {
	rows, err := r.q.Query(context.Background(), saleRowSelect+` ORDER BY s.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSaleRows(rows)
}

// Search arma el WHERE dinámicamente con los filtros presentes.
func (r *SaleRepo) Search(filter repository.SaleFilter) ([]*repository.SaleRow, error) {
	var conds []string
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.Search != "" {
		add(`st.name ILIKE '%' || ? || '%'`, filter.Search)
	}
	if filter.ShopID != "" {
		add(`s.shop_id = ?`, filter.ShopID)
	}
	if filter.Distributor != "" {
		add(`c.name ILIKE '%' || ? || '%'`, filter.Distributor)
	}
	if filter.StartDate != nil {
		add(`s.date >= ?`, *filter.StartDate)
	}
	if filter.EndDate != nil {
		add(`s.date <= ?`, *filter.EndDate)
	}

	query := saleRowSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY s.date DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search sales: %w", err)
	}
	defer rows.Close()
	return collectSaleRows(rows)
}

func collectSaleRows(rows pgx.Rows) ([]*repository.SaleRow, error) {
	var list []*repository.SaleRow
	for rows.Next() {
		row, err := scanSaleRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Delete elimina la venta por ID.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}
