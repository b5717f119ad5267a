package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para pérdidas y ganancias y el tablero.
// El total de venta usa COALESCE(unit_price, precio de lista) para tolerar
// filas históricas sin precio resuelto.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetDailyProfitLoss agrega ventas y gastos de un día calendario y calcula la utilidad.
func (r *ReportRepo) GetDailyProfitLoss(ctx context.Context, date time.Time) (*repository.DailyProfitLoss, error) {
	const query = `
	SELECT
	    COALESCE((SELECT SUM(COALESCE(s.unit_price, st.price) * s.quantity)
	              FROM sales s JOIN stocks st ON st.id = s.stock_id
	              WHERE s.date::date = $1::date), 0) AS sales_total,
	    COALESCE((SELECT SUM(e.amount)
	              FROM expenses e
	              WHERE e.date::date = $1::date), 0)  AS expenses_total`

	out := &repository.DailyProfitLoss{Date: date}
	if err := r.pool.QueryRow(ctx, query, date).Scan(&out.SalesTotal, &out.ExpensesTotal); err != nil {
		return nil, fmt.Errorf("reports.GetDailyProfitLoss: %w", err)
	}
	out.Profit = out.SalesTotal.Sub(out.ExpensesTotal)
	return out, nil
}

// GetMonthlyProfitLoss devuelve un bucket por día calendario del mes con actividad.
func (r *ReportRepo) GetMonthlyProfitLoss(ctx context.Context, month time.Month, year int) ([]repository.DailyProfitLoss, error) {
	const query = `
	WITH daily_sales AS (
	    SELECT s.date::date AS day, SUM(COALESCE(s.unit_price, st.price) * s.quantity) AS total
	    FROM sales s JOIN stocks st ON st.id = s.stock_id
	    WHERE EXTRACT(MONTH FROM s.date) = $1 AND EXTRACT(YEAR FROM s.date) = $2
	    GROUP BY s.date::date
	), daily_expenses AS (
	    SELECT e.date::date AS day, SUM(e.amount) AS total
	    FROM expenses e
	    WHERE EXTRACT(MONTH FROM e.date) = $1 AND EXTRACT(YEAR FROM e.date) = $2
	    GROUP BY e.date::date
	)
	SELECT COALESCE(ds.day, de.day)          AS day,
	       COALESCE(ds.total, 0)             AS sales_total,
	       COALESCE(de.total, 0)             AS expenses_total
	FROM daily_sales ds
	FULL OUTER JOIN daily_expenses de ON de.day = ds.day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, int(month), year)
	if err != nil {
		return nil, fmt.Errorf("reports.GetMonthlyProfitLoss: %w", err)
	}
	defer rows.Close()

	var results []repository.DailyProfitLoss
	for rows.Next() {
		var d repository.DailyProfitLoss
		if err := rows.Scan(&d.Date, &d.SalesTotal, &d.ExpensesTotal); err != nil {
			return nil, fmt.Errorf("reports.GetMonthlyProfitLoss scan: %w", err)
		}
		d.Profit = d.SalesTotal.Sub(d.ExpensesTotal)
		results = append(results, d)
	}
	return results, rows.Err()
}

// GetDashboardSummary devuelve los agregados del tablero de administración.
func (r *ReportRepo) GetDashboardSummary(ctx context.Context) (*repository.DashboardSummary, error) {
	const query = `
	SELECT
	    COALESCE((SELECT SUM(COALESCE(s.unit_price, st.price) * s.quantity)
	              FROM sales s JOIN stocks st ON st.id = s.stock_id
	              WHERE s.date::date = CURRENT_DATE), 0)                       AS sales_today,
	    COALESCE((SELECT SUM(COALESCE(s.unit_price, st.price) * s.quantity)
	              FROM sales s JOIN stocks st ON st.id = s.stock_id
	              WHERE date_trunc('month', s.date) = date_trunc('month', CURRENT_DATE)), 0) AS sales_month,
	    (SELECT COUNT(*) FROM loans WHERE balance > 0)                        AS open_loans,
	    COALESCE((SELECT SUM(balance) FROM loans), 0)                         AS loans_balance,
	    COALESCE((SELECT SUM(price * qty) FROM stocks), 0)                    AS stock_valuation`

	out := &repository.DashboardSummary{}
	if err := r.pool.QueryRow(ctx, query).Scan(
		&out.SalesToday, &out.SalesMonth, &out.OpenLoans, &out.LoansBalance, &out.StockValuation,
	); err != nil {
		return nil, fmt.Errorf("reports.GetDashboardSummary: %w", err)
	}

	top, err := r.topProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	out.TopProducts = top
	return out, nil
}

// topProducts devuelve los `limit` productos con mayor ingreso de los últimos 30 días.
func (r *ReportRepo) topProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	const query = `
	SELECT st.id, st.product_code, st.name,
	       SUM(s.quantity)                                         AS units_sold,
	       SUM(COALESCE(s.unit_price, st.price) * s.quantity)      AS revenue
	FROM sales s
	JOIN stocks st ON st.id = s.stock_id
	WHERE s.date >= CURRENT_DATE - INTERVAL '30 days'
	GROUP BY st.id, st.product_code, st.name
	ORDER BY revenue DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.topProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.StockID, &t.ProductCode, &t.Name, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("reports.topProducts scan: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
