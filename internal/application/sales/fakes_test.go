package sales_test

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distripos-api/internal/application/sales"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/internal/domain/pricing"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Estado en memoria compartido por los repositorios fake.
// El TxRunner fake trabaja sobre una copia y solo la confirma si el callback
// termina sin error, imitando el commit/rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	sales      map[string]entity.Sale
	stocks     map[string]entity.Stock
	shopStocks map[string]entity.ShopStock // clave shopID|stockID
	loans      map[string]entity.Loan
	payments   map[string]entity.Payment
	shops      map[string]entity.Shop
	customers  map[string]entity.Customer
}

func newMemState() *memState {
	return &memState{
		sales:      map[string]entity.Sale{},
		stocks:     map[string]entity.Stock{},
		shopStocks: map[string]entity.ShopStock{},
		loans:      map[string]entity.Loan{},
		payments:   map[string]entity.Payment{},
		shops:      map[string]entity.Shop{},
		customers:  map[string]entity.Customer{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	for k, v := range s.shopStocks {
		c.shopStocks[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.shops {
		c.shops[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	return c
}

func shopStockKey(shopID, stockID string) string { return shopID + "|" + stockID }

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner fake: copy-on-write con commit solo en éxito.
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ st *memState }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	shopStockRepo repository.ShopStockRepository,
	stockRepo repository.StockRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	work := r.st.clone()
	err := fn(
		&fakeSaleRepo{st: work},
		&fakeShopStockRepo{st: work},
		&fakeStockRepo{st: work},
		&fakeLoanRepo{st: work},
		&fakePaymentRepo{st: work},
	)
	if err != nil {
		return err // rollback: la copia se descarta
	}
	*r.st = *work
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct{ st *memState }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	r.st.sales[sale.ID] = *sale
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	if s, ok := r.st.sales[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetRowByID(id string) (*repository.SaleRow, error) {
	s, ok := r.st.sales[id]
	if !ok {
		return nil, nil
	}
	row := r.buildRow(s)
	return &row, nil
}

func (r *fakeSaleRepo) ListNewest(limit int) ([]*repository.SaleRow, error) {
	all := make([]entity.Sale, 0, len(r.st.sales))
	for _, s := range r.st.sales {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	rows := make([]*repository.SaleRow, 0, len(all))
	for _, s := range all {
		row := r.buildRow(s)
		rows = append(rows, &row)
	}
	return rows, nil
}

func (r *fakeSaleRepo) Search(filter repository.SaleFilter) ([]*repository.SaleRow, error) {
	rows := make([]*repository.SaleRow, 0)
	for _, s := range r.st.sales {
		row := r.buildRow(s)
		if filter.ShopID != "" && s.ShopID != filter.ShopID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(row.StockName), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Distributor != "" && !strings.Contains(strings.ToLower(row.CustomerName), strings.ToLower(filter.Distributor)) {
			continue
		}
		if filter.StartDate != nil && s.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && s.Date.After(*filter.EndDate) {
			continue
		}
		rows = append(rows, &row)
	}
	return rows, nil
}

func (r *fakeSaleRepo) Delete(id string) error {
	delete(r.st.sales, id)
	return nil
}

func (r *fakeSaleRepo) buildRow(s entity.Sale) repository.SaleRow {
	row := repository.SaleRow{Sale: s}
	if stock, ok := r.st.stocks[s.StockID]; ok {
		row.StockName = stock.Name
		row.ProductCode = stock.ProductCode
	}
	if shop, ok := r.st.shops[s.ShopID]; ok {
		row.ShopName = shop.Name
	}
	if s.CustomerID != nil {
		if c, ok := r.st.customers[*s.CustomerID]; ok {
			row.CustomerName = c.Name
		}
	}
	return row
}

type fakeShopStockRepo struct{ st *memState }

func (r *fakeShopStockRepo) Get(shopID, stockID string) (*entity.ShopStock, error) {
	if row, ok := r.st.shopStocks[shopStockKey(shopID, stockID)]; ok {
		return &row, nil
	}
	return nil, nil
}

func (r *fakeShopStockRepo) GetForUpdate(shopID, stockID string) (*entity.ShopStock, error) {
	return r.Get(shopID, stockID)
}

func (r *fakeShopStockRepo) Upsert(row *entity.ShopStock) error {
	key := shopStockKey(row.ShopID, row.StockID)
	if existing, ok := r.st.shopStocks[key]; ok {
		existing.Qty = existing.Qty.Add(row.Qty)
		existing.ProductCode = row.ProductCode
		existing.Name = row.Name
		existing.Price = row.Price
		existing.PV = row.PV
		existing.BV = row.BV
		existing.HalfPrice = row.HalfPrice
		existing.IssuedAt = row.IssuedAt
		pricing.RecalculateShopStockTotals(&existing)
		r.st.shopStocks[key] = existing
		return nil
	}
	r.st.shopStocks[key] = *row
	return nil
}

func (r *fakeShopStockRepo) Update(row *entity.ShopStock) error {
	r.st.shopStocks[shopStockKey(row.ShopID, row.StockID)] = *row
	return nil
}

func (r *fakeShopStockRepo) Delete(shopID, stockID string) error {
	delete(r.st.shopStocks, shopStockKey(shopID, stockID))
	return nil
}

func (r *fakeShopStockRepo) DeleteByStock(stockID string) error {
	for key, row := range r.st.shopStocks {
		if row.StockID == stockID {
			delete(r.st.shopStocks, key)
		}
	}
	return nil
}

func (r *fakeShopStockRepo) RefreshTerms(stockID, productCode, name string, price, pv, bv decimal.Decimal, halfPrice bool) error {
	for key, row := range r.st.shopStocks {
		if row.StockID != stockID {
			continue
		}
		row.ProductCode = productCode
		row.Name = name
		row.Price = price
		row.PV = pv
		row.BV = bv
		row.HalfPrice = halfPrice
		pricing.RecalculateShopStockTotals(&row)
		r.st.shopStocks[key] = row
	}
	return nil
}

func (r *fakeShopStockRepo) ListByShop(shopID string) ([]*entity.ShopStock, error) {
	rows := make([]*entity.ShopStock, 0)
	for _, row := range r.st.shopStocks {
		if row.ShopID == shopID {
			row := row
			rows = append(rows, &row)
		}
	}
	return rows, nil
}

type fakeStockRepo struct{ st *memState }

func (r *fakeStockRepo) Create(stock *entity.Stock) error {
	r.st.stocks[stock.ID] = *stock
	return nil
}

func (r *fakeStockRepo) GetByID(id string) (*entity.Stock, error) {
	if s, ok := r.st.stocks[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *fakeStockRepo) GetByProductCode(code string) (*entity.Stock, error) {
	for _, s := range r.st.stocks {
		if s.ProductCode == code {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (r *fakeStockRepo) GetForUpdate(id string) (*entity.Stock, error) {
	return r.GetByID(id)
}

func (r *fakeStockRepo) Update(stock *entity.Stock) error {
	r.st.stocks[stock.ID] = *stock
	return nil
}

func (r *fakeStockRepo) AddQty(id string, delta decimal.Decimal) error {
	s, ok := r.st.stocks[id]
	if !ok {
		return nil
	}
	s.Qty = s.Qty.Add(delta)
	pricing.RecalculateStockTotals(&s)
	r.st.stocks[id] = s
	return nil
}

func (r *fakeStockRepo) List(limit, offset int) ([]*entity.Stock, error) {
	rows := make([]*entity.Stock, 0, len(r.st.stocks))
	for _, s := range r.st.stocks {
		s := s
		rows = append(rows, &s)
	}
	return rows, nil
}

func (r *fakeStockRepo) Search(term string) ([]*entity.Stock, error) {
	rows := make([]*entity.Stock, 0)
	for _, s := range r.st.stocks {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(term)) {
			s := s
			rows = append(rows, &s)
		}
	}
	return rows, nil
}

func (r *fakeStockRepo) Delete(id string) error {
	delete(r.st.stocks, id)
	return nil
}

type fakeLoanRepo struct{ st *memState }

func (r *fakeLoanRepo) Create(loan *entity.Loan) error {
	r.st.loans[loan.ID] = *loan
	return nil
}

func (r *fakeLoanRepo) GetByID(id string) (*entity.Loan, error) {
	if l, ok := r.st.loans[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *fakeLoanRepo) GetForUpdate(id string) (*entity.Loan, error) {
	return r.GetByID(id)
}

func (r *fakeLoanRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	l, ok := r.st.loans[id]
	if !ok {
		return nil
	}
	l.Balance = balance
	r.st.loans[id] = l
	return nil
}

func (r *fakeLoanRepo) List(limit, offset int) ([]*repository.LoanRow, error) {
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

func (r *fakeLoanRepo) DeleteBySale(saleID string) error {
	for id, l := range r.st.loans {
		if l.SaleID == saleID {
			for pid, p := range r.st.payments {
				if p.LoanID == id {
					delete(r.st.payments, pid)
				}
			}
			delete(r.st.loans, id)
		}
	}
	return nil
}

func (r *fakeLoanRepo) Delete(id string) error {
	delete(r.st.loans, id)
	return nil
}

type fakePaymentRepo struct{ st *memState }

func (r *fakePaymentRepo) Create(payment *entity.Payment) error {
	r.st.payments[payment.ID] = *payment
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	if p, ok := r.st.payments[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakePaymentRepo) ListByLoan(loanID string) ([]*entity.Payment, error) {
	rows := make([]*entity.Payment, 0)
	for _, p := range r.st.payments {
		if p.LoanID == loanID {
			p := p
			rows = append(rows, &p)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func (r *fakePaymentRepo) DeleteByLoan(loanID string) error {
	for id, p := range r.st.payments {
		if p.LoanID == loanID {
			delete(r.st.payments, id)
		}
	}
	return nil
}

func (r *fakePaymentRepo) Delete(id string) error {
	delete(r.st.payments, id)
	return nil
}

type fakeShopRepo struct{ st *memState }

func (r *fakeShopRepo) Create(shop *entity.Shop) error {
	r.st.shops[shop.ID] = *shop
	return nil
}

func (r *fakeShopRepo) GetByID(id string) (*entity.Shop, error) {
	if s, ok := r.st.shops[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *fakeShopRepo) Update(shop *entity.Shop) error {
	r.st.shops[shop.ID] = *shop
	return nil
}

func (r *fakeShopRepo) List(limit, offset int) ([]*entity.Shop, error) {
	rows := make([]*entity.Shop, 0, len(r.st.shops))
	for _, s := range r.st.shops {
		s := s
		rows = append(rows, &s)
	}
	return rows, nil
}

func (r *fakeShopRepo) Delete(id string) error {
	delete(r.st.shops, id)
	return nil
}

type fakeCustomerRepo struct{ st *memState }

func (r *fakeCustomerRepo) Create(customer *entity.Customer) error {
	r.st.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.st.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(customer *entity.Customer) error {
	r.st.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	rows := make([]*entity.Customer, 0, len(r.st.customers))
	for _, c := range r.st.customers {
		c := c
		rows = append(rows, &c)
	}
	return rows, nil
}

func (r *fakeCustomerRepo) Search(term string) ([]*entity.Customer, error) {
	rows := make([]*entity.Customer, 0)
	for _, c := range r.st.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
			c := c
			rows = append(rows, &c)
		}
	}
	return rows, nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.st.customers, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Puertos de salida fake (eventos, cache, comprobantes)
// ──────────────────────────────────────────────────────────────────────────────

type fakePublisher struct{ events []sales.SaleEvent }

func (p *fakePublisher) PublishSaleCreated(_ context.Context, evt sales.SaleEvent) {
	p.events = append(p.events, evt)
}

type fakeCache struct{ invalidations int }

func (c *fakeCache) InvalidateReports(_ context.Context) { c.invalidations++ }

type fakeReceipts struct{ last *sales.Receipt }

func (g *fakeReceipts) GenerateReceiptPDF(_ context.Context, receipt *sales.Receipt) ([]byte, error) {
	g.last = receipt
	return []byte("%PDF-fake"), nil
}

// Verificación en compilación de que los fakes cumplen los puertos.
var (
	_ sales.TxRunner                 = (*fakeTxRunner)(nil)
	_ repository.SaleRepository      = (*fakeSaleRepo)(nil)
	_ repository.ShopStockRepository = (*fakeShopStockRepo)(nil)
	_ repository.StockRepository     = (*fakeStockRepo)(nil)
	_ repository.LoanRepository      = (*fakeLoanRepo)(nil)
	_ repository.PaymentRepository   = (*fakePaymentRepo)(nil)
	_ repository.ShopRepository      = (*fakeShopRepo)(nil)
	_ repository.CustomerRepository  = (*fakeCustomerRepo)(nil)
	_ sales.EventPublisher           = (*fakePublisher)(nil)
	_ sales.ReportCacheInvalidator   = (*fakeCache)(nil)
	_ sales.ReceiptGenerator         = (*fakeReceipts)(nil)
)
