package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/domain/entity"
)

// LoanRow préstamo con el nombre del cliente resuelto.
type LoanRow struct {
	Loan         entity.Loan
	CustomerName string
}

// LoanRepository define el puerto de persistencia para Loan (DIP).
type LoanRepository interface {
	Create(loan *entity.Loan) error
	GetByID(id string) (*entity.Loan, error)
	// GetForUpdate bloquea la fila del préstamo; usar dentro de una transacción de abono.
	GetForUpdate(id string) (*entity.Loan, error)
	UpdateBalance(id string, balance decimal.Decimal) error
	List(limit, offset int) ([]*LoanRow, error)
	DeleteBySale(saleID string) error
	Delete(id string) error
}
