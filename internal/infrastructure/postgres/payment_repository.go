package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un abono con el saldo posterior ya calculado por el caso de uso.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, loan_id, date, amount, balance)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.LoanID, payment.Date, payment.Amount, payment.Balance,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un abono por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT id, loan_id, date, amount, balance FROM payments WHERE id = $1`
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.LoanID, &p.Date, &p.Amount, &p.Balance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// ListByLoan lista los abonos de un préstamo, el más reciente primero.
func (r *PaymentRepo) ListByLoan(loanID string) ([]*entity.Payment, error) {
	query := `SELECT id, loan_id, date, amount, balance FROM payments WHERE loan_id = $1 ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query, loanID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Date, &p.Amount, &p.Balance); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeleteByLoan elimina todos los abonos de un préstamo.
func (r *PaymentRepo) DeleteByLoan(loanID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE loan_id = $1`, loanID)
	if err != nil {
		return fmt.Errorf("delete payments by loan: %w", err)
	}
	return nil
}

// Delete elimina un abono por ID.
func (r *PaymentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}
