package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/application/sales"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// ExpenseUseCase casos de uso CRUD para gastos. Cada mutación invalida el cache
// de reportes porque los gastos alimentan el estado de pérdidas y ganancias.
type ExpenseUseCase struct {
	repo  repository.ExpenseRepository
	cache sales.ReportCacheInvalidator
}

// NewExpenseUseCase construye el caso de uso. cache puede ser nil.
func NewExpenseUseCase(repo repository.ExpenseRepository, cache sales.ReportCacheInvalidator) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, cache: cache}
}

// Create registra un gasto.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Description == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Description: in.Description,
		Amount:      in.Amount,
		Date:        date,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(expense); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toExpenseResponse(expense), nil
}

// GetByID obtiene un gasto por ID.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	return toExpenseResponse(expense), nil
}

// Update edita un gasto. Los campos nil no se tocan.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	if in.Description != nil {
		expense.Description = *in.Description
	}
	if in.Amount != nil {
		if !in.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		expense.Amount = *in.Amount
	}
	if in.Date != nil {
		expense.Date = *in.Date
	}
	if err := uc.repo.Update(expense); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return toExpenseResponse(expense), nil
}

// List lista gastos con paginación.
func (uc *ExpenseUseCase) List(ctx context.Context, limit, offset int) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return items, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ExpenseUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.InvalidateReports(ctx)
	}
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}
