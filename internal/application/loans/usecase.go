package loans

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

// UseCase casos de uso de préstamos y abonos.
type UseCase struct {
	tx           sales.TxRunner
	loanRepo     repository.LoanRepository
	paymentRepo  repository.PaymentRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx sales.TxRunner,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) *UseCase {
	return &UseCase{
		tx:           tx,
		loanRepo:     loanRepo,
		paymentRepo:  paymentRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
	}
}

// Create registra un préstamo sobre una venta y un cliente existentes.
// El saldo inicia igual al monto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateLoanRequest) (*dto.LoanResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) || in.SaleID == "" || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(in.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	loan := &entity.Loan{
		ID:         uuid.New().String(),
		SaleID:     in.SaleID,
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Balance:    in.Amount,
		Date:       date,
		CreatedAt:  time.Now(),
	}
	if err := uc.loanRepo.Create(loan); err != nil {
		return nil, err
	}
	resp := toLoanResponse(loan, customer.Name)
	return &resp, nil
}

// Pay abona al préstamo dentro de una transacción con la fila bloqueada:
// rechaza montos no positivos o mayores al saldo, descuenta el saldo y guarda
// el abono con el saldo resultante.
func (uc *UseCase) Pay(ctx context.Context, loanID string, in dto.PayLoanRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var payment *entity.Payment
	err := uc.tx.Run(ctx, func(
		_ repository.SaleRepository,
		_ repository.ShopStockRepository,
		_ repository.StockRepository,
		loanRepo repository.LoanRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		loan, err := loanRepo.GetForUpdate(loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return domain.ErrNotFound
		}
		if in.Amount.GreaterThan(loan.Balance) {
			return domain.ErrPaymentExceedsBalance
		}
		newBalance := loan.Balance.Sub(in.Amount)
		if err := loanRepo.UpdateBalance(loanID, newBalance); err != nil {
			return err
		}
		date := in.Date
		if date.IsZero() {
			date = time.Now()
		}
		payment = &entity.Payment{
			ID:      uuid.New().String(),
			LoanID:  loanID,
			Date:    date,
			Amount:  in.Amount,
			Balance: newBalance,
		}
		return paymentRepo.Create(payment)
	})
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(payment)
	return &resp, nil
}

// DeletePayment revierte un abono: suma su monto de vuelta al saldo actual del
// préstamo (reversión aditiva, no se recalcula el historial) y borra el abono.
func (uc *UseCase) DeletePayment(ctx context.Context, paymentID string) error {
	return uc.tx.Run(ctx, func(
		_ repository.SaleRepository,
		_ repository.ShopStockRepository,
		_ repository.StockRepository,
		loanRepo repository.LoanRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		payment, err := paymentRepo.GetByID(paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrNotFound
		}
		loan, err := loanRepo.GetForUpdate(payment.LoanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return domain.ErrNotFound
		}
		if err := loanRepo.UpdateBalance(loan.ID, loan.Balance.Add(payment.Amount)); err != nil {
			return err
		}
		return paymentRepo.Delete(paymentID)
	})
}

// List lista préstamos con el nombre del cliente.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]dto.LoanResponse, error) {
	rows, err := uc.loanRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LoanResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, toLoanResponse(&row.Loan, row.CustomerName))
	}
	return items, nil
}

// GetByID obtiene un préstamo con su historial de abonos.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.LoanDetailResponse, error) {
	loan, err := uc.loanRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, nil
	}
	payments, err := uc.paymentRepo.ListByLoan(id)
	if err != nil {
		return nil, err
	}
	var customerName string
	if customer, err := uc.customerRepo.GetByID(loan.CustomerID); err == nil && customer != nil {
		customerName = customer.Name
	}
	detail := &dto.LoanDetailResponse{
		Loan:     toLoanResponse(loan, customerName),
		Payments: make([]dto.PaymentResponse, 0, len(payments)),
	}
	for _, p := range payments {
		detail.Payments = append(detail.Payments, toPaymentResponse(p))
	}
	return detail, nil
}

func toLoanResponse(l *entity.Loan, customerName string) dto.LoanResponse {
	return dto.LoanResponse{
		ID:           l.ID,
		SaleID:       l.SaleID,
		CustomerID:   l.CustomerID,
		CustomerName: customerName,
		Amount:       l.Amount,
		Balance:      l.Balance,
		Date:         l.Date,
		CreatedAt:    l.CreatedAt,
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:      p.ID,
		LoanID:  p.LoanID,
		Date:    p.Date,
		Amount:  p.Amount,
		Balance: p.Balance,
	}
}
