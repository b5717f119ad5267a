package repository

import "github.com/jhoicas/Distripos-api/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para Payment (DIP).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListByLoan(loanID string) ([]*entity.Payment, error)
	DeleteByLoan(loanID string) error
	Delete(id string) error
}
