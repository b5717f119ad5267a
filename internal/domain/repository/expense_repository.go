package repository

import "github.com/jhoicas/Distripos-api/internal/domain/entity"

// ExpenseRepository define el puerto de persistencia para Expense (DIP).
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	List(limit, offset int) ([]*entity.Expense, error)
	Delete(id string) error
}
