package loans_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/application/loans"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El TxRunner trabaja sobre una copia y solo confirma
// si el callback termina sin error.
// ──────────────────────────────────────────────────────────────────────────────

type loanState struct {
	loans     map[string]entity.Loan
	payments  map[string]entity.Payment
	sales     map[string]entity.Sale
	customers map[string]entity.Customer
}

func newLoanState() *loanState {
	return &loanState{
		loans:     map[string]entity.Loan{},
		payments:  map[string]entity.Payment{},
		sales:     map[string]entity.Sale{},
		customers: map[string]entity.Customer{},
	}
}

func (s *loanState) clone() *loanState {
	c := newLoanState()
	for k, v := range s.loans {
		c.loans[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	return c
}

type loanTxRunner struct{ st *loanState }

func (r *loanTxRunner) Run(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	shopStockRepo repository.ShopStockRepository,
	stockRepo repository.StockRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	work := r.st.clone()
	// Los casos de uso de préstamos no tocan ventas ni inventario dentro de la tx.
	if err := fn(nil, nil, nil, &loanRepoFake{st: work}, &paymentRepoFake{st: work}); err != nil {
		return err
	}
	*r.st = *work
	return nil
}

type loanRepoFake struct{ st *loanState }

func (r *loanRepoFake) Create(loan *entity.Loan) error {
	r.st.loans[loan.ID] = *loan
	return nil
}

func (r *loanRepoFake) GetByID(id string) (*entity.Loan, error) {
	if l, ok := r.st.loans[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *loanRepoFake) GetForUpdate(id string) (*entity.Loan, error) {
	return r.GetByID(id)
}

func (r *loanRepoFake) UpdateBalance(id string, balance decimal.Decimal) error {
	l, ok := r.st.loans[id]
	if !ok {
		return nil
	}
	l.Balance = balance
	r.st.loans[id] = l
	return nil
}

func (r *loanRepoFake) List(limit, offset int) ([]*repository.LoanRow, error) {
	rows := make([]*repository.LoanRow, 0, len(r.st.loans))
	for _, l := range r.st.loans {
		row := repository.LoanRow{Loan: l}
		if c, ok := r.st.customers[l.CustomerID]; ok {
			row.CustomerName = c.Name
		}
		rows = append(rows, &row)
	}
	return rows, nil
}

func (r *loanRepoFake) DeleteBySale(saleID string) error {
	for id, l := range r.st.loans {
		if l.SaleID == saleID {
			delete(r.st.loans, id)
		}
	}
	return nil
}

func (r *loanRepoFake) Delete(id string) error {
	delete(r.st.loans, id)
	return nil
}

type paymentRepoFake struct{ st *loanState }

func (r *paymentRepoFake) Create(payment *entity.Payment) error {
	r.st.payments[payment.ID] = *payment
	return nil
}

func (r *paymentRepoFake) GetByID(id string) (*entity.Payment, error) {
	if p, ok := r.st.payments[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *paymentRepoFake) ListByLoan(loanID string) ([]*entity.Payment, error) {
	rows := make([]*entity.Payment, 0)
	for _, p := range r.st.payments {
		if p.LoanID == loanID {
			p := p
			rows = append(rows, &p)
		}
	}
	return rows, nil
}

func (r *paymentRepoFake) DeleteByLoan(loanID string) error {
	for id, p := range r.st.payments {
		if p.LoanID == loanID {
			delete(r.st.payments, id)
		}
	}
	return nil
}

func (r *paymentRepoFake) Delete(id string) error {
	delete(r.st.payments, id)
	return nil
}

type saleRepoFake struct{ st *loanState }

func (r *saleRepoFake) Create(sale *entity.Sale) error {
	r.st.sales[sale.ID] = *sale
	return nil
}

func (r *saleRepoFake) GetByID(id string) (*entity.Sale, error) {
	if s, ok := r.st.sales[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *saleRepoFake) GetRowByID(id string) (*repository.SaleRow, error) { return nil, nil }

func (r *saleRepoFake) ListNewest(limit int) ([]*repository.SaleRow, error) { return nil, nil }

func (r *saleRepoFake) Search(filter repository.SaleFilter) ([]*repository.SaleRow, error) {
	return nil, nil
}

func (r *saleRepoFake) Delete(id string) error {
	delete(r.st.sales, id)
	return nil
}

type customerRepoFake struct{ st *loanState }

func (r *customerRepoFake) Create(customer *entity.Customer) error {
	r.st.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepoFake) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.st.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *customerRepoFake) Update(customer *entity.Customer) error {
	r.st.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepoFake) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }

func (r *customerRepoFake) Search(term string) ([]*entity.Customer, error) { return nil, nil }

func (r *customerRepoFake) Delete(id string) error {
	delete(r.st.customers, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un préstamo de 300 sobre una venta de un cliente registrado.
// ──────────────────────────────────────────────────────────────────────────────

const (
	loanID     = "loan-1"
	saleID     = "sale-1"
	customerID = "cust-1"
)

func newLoanFixture(t *testing.T) (*loans.UseCase, *loanState) {
	t.Helper()
	st := newLoanState()
	st.customers[customerID] = entity.Customer{ID: customerID, Name: "Pedro Rojas"}
	st.sales[saleID] = entity.Sale{ID: saleID, ShopID: "shop-1", Quantity: decimal.NewFromInt(3)}
	st.loans[loanID] = entity.Loan{
		ID:         loanID,
		SaleID:     saleID,
		CustomerID: customerID,
		Amount:     decimal.NewFromInt(300),
		Balance:    decimal.NewFromInt(300),
		Date:       time.Now(),
	}
	uc := loans.NewUseCase(
		&loanTxRunner{st: st},
		&loanRepoFake{st: st},
		&paymentRepoFake{st: st},
		&saleRepoFake{st: st},
		&customerRepoFake{st: st},
	)
	return uc, st
}

// ──────────────────────────────────────────────────────────────────────────────
// Abonos
// ──────────────────────────────────────────────────────────────────────────────

// Un abono descuenta el saldo y guarda el saldo resultante en el abono.
func TestPay_DescuentaSaldo(t *testing.T) {
	uc, st := newLoanFixture(t)

	out, err := uc.Pay(context.Background(), loanID, dto.PayLoanRequest{
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.True(t, out.Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(200)), "saldo después del abono: 300 - 100")
	assert.True(t, st.loans[loanID].Balance.Equal(decimal.NewFromInt(200)))
	assert.Len(t, st.payments, 1)
}

// El saldo puede llegar exactamente a cero.
func TestPay_SaldoLlegaACero(t *testing.T) {
	uc, st := newLoanFixture(t)

	out, err := uc.Pay(context.Background(), loanID, dto.PayLoanRequest{
		Amount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	assert.True(t, out.Balance.IsZero())
	assert.True(t, st.loans[loanID].Balance.IsZero())
}

// Un abono mayor al saldo se rechaza y nada cambia.
func TestPay_AbonoMayorAlSaldoRechazado(t *testing.T) {
	uc, st := newLoanFixture(t)

	_, err := uc.Pay(context.Background(), loanID, dto.PayLoanRequest{
		Amount: decimal.NewFromInt(301),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPaymentExceedsBalance))

	assert.True(t, st.loans[loanID].Balance.Equal(decimal.NewFromInt(300)), "el saldo no debe cambiar")
	assert.Empty(t, st.payments, "no debe quedar ningún abono")
}

func TestPay_MontoNoPositivoRechazado(t *testing.T) {
	uc, _ := newLoanFixture(t)

	_, err := uc.Pay(context.Background(), loanID, dto.PayLoanRequest{Amount: decimal.Zero})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Pay(context.Background(), loanID, dto.PayLoanRequest{Amount: decimal.NewFromInt(-5)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestPay_PrestamoInexistente(t *testing.T) {
	uc, _ := newLoanFixture(t)

	_, err := uc.Pay(context.Background(), "loan-inexistente", dto.PayLoanRequest{
		Amount: decimal.NewFromInt(10),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// Abonos sucesivos mantienen el invariante 0 <= saldo <= monto.
func TestPay_AbonosSucesivos(t *testing.T) {
	uc, st := newLoanFixture(t)
	ctx := context.Background()

	for _, monto := range []int64{100, 150, 50} {
		_, err := uc.Pay(ctx, loanID, dto.PayLoanRequest{Amount: decimal.NewFromInt(monto)})
		require.NoError(t, err)
	}

	assert.True(t, st.loans[loanID].Balance.IsZero())
	assert.Len(t, st.payments, 3)

	// El préstamo quedó saldado: un abono más se rechaza.
	_, err := uc.Pay(ctx, loanID, dto.PayLoanRequest{Amount: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, domain.ErrPaymentExceedsBalance))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reversión de abonos
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar un abono suma su monto de vuelta al saldo actual (reversión aditiva).
func TestDeletePayment_ReversionAditiva(t *testing.T) {
	uc, st := newLoanFixture(t)
	ctx := context.Background()

	p1, err := uc.Pay(ctx, loanID, dto.PayLoanRequest{Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = uc.Pay(ctx, loanID, dto.PayLoanRequest{Amount: decimal.NewFromInt(50)})
	require.NoError(t, err)
	require.True(t, st.loans[loanID].Balance.Equal(decimal.NewFromInt(150)))

	// Se revierte el primer abono: 150 + 100 = 250, sin recalcular el historial.
	err = uc.DeletePayment(ctx, p1.ID)
	require.NoError(t, err)

	assert.True(t, st.loans[loanID].Balance.Equal(decimal.NewFromInt(250)))
	assert.Len(t, st.payments, 1, "solo debe quedar el segundo abono")
}

func TestDeletePayment_Inexistente(t *testing.T) {
	uc, _ := newLoanFixture(t)
	err := uc.DeletePayment(context.Background(), "abono-inexistente")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y consulta de préstamos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLoan_SaldoIniciaIgualAlMonto(t *testing.T) {
	uc, st := newLoanFixture(t)

	out, err := uc.Create(context.Background(), dto.CreateLoanRequest{
		SaleID:     saleID,
		CustomerID: customerID,
		Amount:     decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	assert.True(t, out.Amount.Equal(decimal.NewFromInt(500)))
	assert.True(t, out.Balance.Equal(out.Amount))
	assert.Equal(t, "Pedro Rojas", out.CustomerName)
	assert.Len(t, st.loans, 2)
}

func TestCreateLoan_Validaciones(t *testing.T) {
	uc, _ := newLoanFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateLoanRequest{
		SaleID: saleID, CustomerID: customerID, Amount: decimal.Zero,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "monto no positivo")

	_, err = uc.Create(ctx, dto.CreateLoanRequest{
		SaleID: "venta-inexistente", CustomerID: customerID, Amount: decimal.NewFromInt(10),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "venta inexistente")

	_, err = uc.Create(ctx, dto.CreateLoanRequest{
		SaleID: saleID, CustomerID: "cliente-inexistente", Amount: decimal.NewFromInt(10),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "cliente inexistente")
}

func TestGetLoanByID_ConHistorialDeAbonos(t *testing.T) {
	uc, _ := newLoanFixture(t)
	ctx := context.Background()

	_, err := uc.Pay(ctx, loanID, dto.PayLoanRequest{Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = uc.Pay(ctx, loanID, dto.PayLoanRequest{Amount: decimal.NewFromInt(80)})
	require.NoError(t, err)

	detail, err := uc.GetByID(ctx, loanID)
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "Pedro Rojas", detail.Loan.CustomerName)
	assert.True(t, detail.Loan.Balance.Equal(decimal.NewFromInt(120)))
	assert.Len(t, detail.Payments, 2)
}
