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

var _ repository.LoanRepository = (*LoanRepo)(nil)

// LoanRepo implementación del puerto LoanRepository sobre PostgreSQL (usable con pool o tx).
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

// Create persiste un préstamo; Balance debe iniciar igual a Amount.
func (r *LoanRepo) Create(loan *entity.Loan) error {
	query := `
		INSERT INTO loans (id, sale_id, customer_id, amount, balance, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		loan.ID, loan.SaleID, loan.CustomerID, loan.Amount, loan.Balance, loan.Date, loan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

func (r *LoanRepo) getOne(query, id string) (*entity.Loan, error) {
	var l entity.Loan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.SaleID, &l.CustomerID, &l.Amount, &l.Balance, &l.Date, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &l, nil
}

// GetByID obtiene un préstamo por ID.
func (r *LoanRepo) GetByID(id string) (*entity.Loan, error) {
	return r.getOne(`
		SELECT id, sale_id, customer_id, amount, balance, date, created_at
		FROM loans WHERE id = $1`, id)
}

// GetForUpdate obtiene el préstamo y bloquea la fila (abonos concurrentes se serializan).
func (r *LoanRepo) GetForUpdate(id string) (*entity.Loan, error) {
	return r.getOne(`
		SELECT id, sale_id, customer_id, amount, balance, date, created_at
		FROM loans WHERE id = $1 FOR UPDATE`, id)
}

// UpdateBalance escribe el nuevo saldo del préstamo.
func (r *LoanRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE loans SET balance = $2 WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("update loan balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista préstamos con el nombre del cliente, los más recientes primero.
func (r *LoanRepo) List(limit, offset int) ([]*repository.LoanRow, error) {
	query := `
		SELECT l.id, l.sale_id, l.customer_id, l.amount, l.balance, l.date, l.created_at, c.name
		FROM loans l
		JOIN customers c ON c.id = l.customer_id
		ORDER BY l.created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()
	var list []*repository.LoanRow
	for rows.Next() {
		var row repository.LoanRow
		if err := rows.Scan(
			&row.Loan.ID, &row.Loan.SaleID, &row.Loan.CustomerID, &row.Loan.Amount,
			&row.Loan.Balance, &row.Loan.Date, &row.Loan.CreatedAt, &row.CustomerName,
		); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// DeleteBySale elimina los préstamos (y en cascada sus abonos) de una venta.
func (r *LoanRepo) DeleteBySale(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM loans WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete loans by sale: %w", err)
	}
	return nil
}

// Delete elimina un préstamo por ID.
func (r *LoanRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	return nil
}
