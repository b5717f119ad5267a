package sales_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/application/sales"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
)

const (
	testShopID     = "shop-1"
	testCustomerID = "cust-1"
	testStockID    = "stock-1"
)

// fixture estado inicial de los tests: una tienda con 10 unidades emitidas de un
// producto cuyo precio de lista es 100 (inventario central: 50 unidades).
type fixture struct {
	uc        *sales.UseCase
	st        *memState
	publisher *fakePublisher
	cache     *fakeCache
	receipts  *fakeReceipts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newMemState()

	st.shops[testShopID] = entity.Shop{ID: testShopID, Name: "Tienda Centro"}
	st.customers[testCustomerID] = entity.Customer{ID: testCustomerID, Name: "María Gómez"}

	stock := entity.Stock{
		ID:          testStockID,
		ProductCode: "HP-001",
		Name:        "Proteína en polvo",
		Price:       decimal.NewFromInt(100),
		Qty:         decimal.NewFromInt(50),
		PV:          decimal.NewFromInt(10),
		BV:          decimal.NewFromInt(8),
	}
	st.stocks[testStockID] = stock

	st.shopStocks[shopStockKey(testShopID, testStockID)] = entity.ShopStock{
		ShopID:      testShopID,
		StockID:     testStockID,
		ProductCode: stock.ProductCode,
		Name:        stock.Name,
		Price:       stock.Price,
		Qty:         decimal.NewFromInt(10),
		PV:          stock.PV,
		BV:          stock.BV,
		IssuedAt:    time.Now(),
	}

	publisher := &fakePublisher{}
	cache := &fakeCache{}
	receipts := &fakeReceipts{}
	uc := sales.NewUseCase(
		&fakeTxRunner{st: st},
		&fakeSaleRepo{st: st},
		&fakeStockRepo{st: st},
		&fakeShopRepo{st: st},
		&fakeCustomerRepo{st: st},
		publisher,
		cache,
		receipts,
	)
	return &fixture{uc: uc, st: st, publisher: publisher, cache: cache, receipts: receipts}
}

func (f *fixture) shopQty(t *testing.T) decimal.Decimal {
	t.Helper()
	row, ok := f.st.shopStocks[shopStockKey(testShopID, testStockID)]
	require.True(t, ok, "la fila de la tienda debe existir")
	return row.Qty
}

func singleLine(qty int64) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		ShopID: testShopID,
		Lines: []dto.SaleLineRequest{{
			StockID:  testStockID,
			Quantity: decimal.NewFromInt(qty),
		}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de precio por tipo de cliente
// ──────────────────────────────────────────────────────────────────────────────

// Member paga precio de lista; el precio enviado en la línea se ignora.
func TestCreateSale_MemberUsaPrecioDeLista(t *testing.T) {
	f := newFixture(t)

	enviado := decimal.NewFromInt(999)
	in := singleLine(2)
	in.ClientType = entity.ClientTypeMember
	in.Lines[0].UnitPrice = &enviado

	out, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.True(t, out[0].UnitPrice.Equal(decimal.NewFromInt(100)),
		"member debe pagar el precio de lista, no el enviado")
	assert.True(t, out[0].Total.Equal(decimal.NewFromInt(200)))
	assert.True(t, out[0].Paid, "sin fecha de pago la venta queda pagada")
	assert.Equal(t, "Tienda Centro", out[0].ShopName)
}

// ClientType vacío se trata como Member.
func TestCreateSale_TipoVacioEsMember(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), singleLine(1))
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, entity.ClientTypeMember, out[0].ClientType)
	assert.True(t, out[0].UnitPrice.Equal(decimal.NewFromInt(100)))
}

// HP Client paga la mitad del precio de lista.
func TestCreateSale_HPClientMitadDePrecio(t *testing.T) {
	f := newFixture(t)

	in := singleLine(2)
	in.ClientType = entity.ClientTypeHPClient

	out, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.True(t, out[0].UnitPrice.Equal(decimal.NewFromInt(50)),
		"HP Client debe pagar la mitad del precio de lista")
	assert.True(t, out[0].Total.Equal(decimal.NewFromInt(100)))
}

// Non-Member sin precio acordado: la línea se rechaza y nada se persiste.
func TestCreateSale_NonMemberSinPrecioRechazado(t *testing.T) {
	f := newFixture(t)

	in := singleLine(1)
	in.ClientType = entity.ClientTypeNonMember

	_, err := f.uc.Create(context.Background(), in)
	require.Error(t, err)

	var lineErr *sales.LineError
	require.True(t, errors.As(err, &lineErr), "el error debe identificar la línea")
	assert.Equal(t, 0, lineErr.Line)
	assert.Equal(t, testStockID, lineErr.StockID)
	assert.True(t, errors.Is(err, domain.ErrUnitPriceRequired))

	assert.Empty(t, f.st.sales, "no debe quedar ninguna venta persistida")
	assert.True(t, f.shopQty(t).Equal(decimal.NewFromInt(10)),
		"el stock de la tienda no debe cambiar")
}

// Non-Member con precio acordado positivo: se usa tal cual.
func TestCreateSale_NonMemberConPrecioAcordado(t *testing.T) {
	f := newFixture(t)

	acordado := decimal.NewFromInt(80)
	in := singleLine(3)
	in.ClientType = entity.ClientTypeNonMember
	in.Lines[0].UnitPrice = &acordado

	out, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.True(t, out[0].UnitPrice.Equal(acordado))
	assert.True(t, out[0].Total.Equal(decimal.NewFromInt(240)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuento del stock de tienda
// ──────────────────────────────────────────────────────────────────────────────

// Venta parcial: la fila de la tienda queda con el remanente y derivados recalculados.
func TestCreateSale_DescuentaStockDeTienda(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), singleLine(3))
	require.NoError(t, err)

	row := f.st.shopStocks[shopStockKey(testShopID, testStockID)]
	assert.True(t, row.Qty.Equal(decimal.NewFromInt(7)), "10 - 3 = 7")
	assert.True(t, row.Total.Equal(decimal.NewFromInt(700)), "Total = Price × Qty recalculado")
	assert.True(t, row.TotalPV.Equal(decimal.NewFromInt(70)))

	// El inventario central no participa en la venta.
	assert.True(t, f.st.stocks[testStockID].Qty.Equal(decimal.NewFromInt(50)))
}

// Venta que agota la fila: la fila de la tienda desaparece.
func TestCreateSale_VentaAgotaFilaDeTienda(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), singleLine(10))
	require.NoError(t, err)

	_, ok := f.st.shopStocks[shopStockKey(testShopID, testStockID)]
	assert.False(t, ok, "la fila debe eliminarse al llegar a cero")
}

// Vender más de lo emitido también elimina la fila (no queda saldo negativo).
func TestCreateSale_VentaMayorAlEmitidoEliminaFila(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), singleLine(15))
	require.NoError(t, err)

	_, ok := f.st.shopStocks[shopStockKey(testShopID, testStockID)]
	assert.False(t, ok)
}

// Producto nunca emitido a la tienda: la venta se rechaza.
func TestCreateSale_ProductoNoEmitidoRechazado(t *testing.T) {
	f := newFixture(t)

	f.st.stocks["stock-2"] = entity.Stock{
		ID:    "stock-2",
		Name:  "Batido",
		Price: decimal.NewFromInt(40),
		Qty:   decimal.NewFromInt(20),
	}
	in := dto.CreateSaleRequest{
		ShopID: testShopID,
		Lines: []dto.SaleLineRequest{{
			StockID:  "stock-2",
			Quantity: decimal.NewFromInt(1),
		}},
	}

	_, err := f.uc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStockNotIssued))
}

// ──────────────────────────────────────────────────────────────────────────────
// Crédito
// ──────────────────────────────────────────────────────────────────────────────

// Cliente + fecha de pago: la venta queda a crédito y abre un préstamo
// con monto = saldo = precio × cantidad.
func TestCreateSale_ConFechaPagoCreaPrestamo(t *testing.T) {
	f := newFixture(t)

	customerID := testCustomerID
	paymentDate := time.Now().AddDate(0, 0, 15)
	in := singleLine(2)
	in.CustomerID = &customerID
	in.PaymentDate = &paymentDate

	out, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.False(t, out[0].Paid, "con fecha de pago la venta queda a crédito")
	assert.Equal(t, "María Gómez", out[0].CustomerName)

	require.Len(t, f.st.loans, 1)
	for _, loan := range f.st.loans {
		assert.Equal(t, out[0].ID, loan.SaleID)
		assert.Equal(t, testCustomerID, loan.CustomerID)
		assert.True(t, loan.Amount.Equal(decimal.NewFromInt(200)), "monto = 100 × 2")
		assert.True(t, loan.Balance.Equal(loan.Amount), "el saldo inicia igual al monto")
	}
}

// Cliente sin fecha de pago: venta pagada, sin préstamo.
func TestCreateSale_SinFechaPagoNoCreaPrestamo(t *testing.T) {
	f := newFixture(t)

	customerID := testCustomerID
	in := singleLine(1)
	in.CustomerID = &customerID

	out, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, out[0].Paid)
	assert.Empty(t, f.st.loans)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad del lote
// ──────────────────────────────────────────────────────────────────────────────

// Si una línea del lote falla, las líneas anteriores ya escritas se revierten.
func TestCreateSale_LoteAtomicoRevierteLineasPrevias(t *testing.T) {
	f := newFixture(t)

	// stock-2 existe en el inventario central pero nunca fue emitido a la tienda.
	f.st.stocks["stock-2"] = entity.Stock{
		ID:    "stock-2",
		Name:  "Batido",
		Price: decimal.NewFromInt(40),
		Qty:   decimal.NewFromInt(20),
	}
	in := dto.CreateSaleRequest{
		ShopID: testShopID,
		Lines: []dto.SaleLineRequest{
			{StockID: testStockID, Quantity: decimal.NewFromInt(2)}, // válida
			{StockID: "stock-2", Quantity: decimal.NewFromInt(1)},  // falla
		},
	}

	_, err := f.uc.Create(context.Background(), in)
	require.Error(t, err)

	var lineErr *sales.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 1, lineErr.Line, "el error debe señalar la segunda línea")
	assert.Equal(t, "stock-2", lineErr.StockID)

	assert.Empty(t, f.st.sales, "la primera línea también debe revertirse")
	assert.True(t, f.shopQty(t).Equal(decimal.NewFromInt(10)),
		"el descuento de la primera línea debe revertirse")
	assert.Empty(t, f.publisher.events, "no deben publicarse eventos de un lote revertido")
	assert.Zero(t, f.cache.invalidations)
}

// Lote de dos líneas válidas: dos ventas, dos eventos, una invalidación de cache.
func TestCreateSale_LoteValidoPublicaEventos(t *testing.T) {
	f := newFixture(t)

	in := dto.CreateSaleRequest{
		ShopID: testShopID,
		Lines: []dto.SaleLineRequest{
			{StockID: testStockID, Quantity: decimal.NewFromInt(2)},
			{StockID: testStockID, Quantity: decimal.NewFromInt(3)},
		},
	}

	out, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	assert.Len(t, f.st.sales, 2)
	assert.True(t, f.shopQty(t).Equal(decimal.NewFromInt(5)), "10 - 2 - 3 = 5")
	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, out[0].ID, f.publisher.events[0].SaleID)
	assert.Equal(t, 1, f.cache.invalidations, "una sola invalidación por lote")
}

// Validaciones de entrada del lote.
func TestCreateSale_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateSaleRequest{ShopID: testShopID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "lote sin líneas")

	_, err = f.uc.Create(ctx, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{StockID: testStockID, Quantity: decimal.NewFromInt(1)}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "lote sin tienda")

	_, err = f.uc.Create(ctx, singleLine(0))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "cantidad cero")

	in := singleLine(1)
	in.ShopID = "shop-inexistente"
	_, err = f.uc.Create(ctx, in)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "tienda inexistente")

	inexistente := "cust-inexistente"
	in = singleLine(1)
	in.CustomerID = &inexistente
	_, err = f.uc.Create(ctx, in)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "cliente inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación de ventas
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar una venta restaura la cantidad en el inventario central (no en la
// tienda) y borra el crédito asociado.
func TestDeleteSale_RestauraInventarioCentral(t *testing.T) {
	f := newFixture(t)

	customerID := testCustomerID
	paymentDate := time.Now().AddDate(0, 0, 30)
	in := singleLine(4)
	in.CustomerID = &customerID
	in.PaymentDate = &paymentDate

	out, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, f.st.loans, 1)

	err = f.uc.Delete(context.Background(), out[0].ID)
	require.NoError(t, err)

	assert.Empty(t, f.st.sales, "la venta debe eliminarse")
	assert.Empty(t, f.st.loans, "el crédito de la venta debe eliminarse")
	assert.True(t, f.st.stocks[testStockID].Qty.Equal(decimal.NewFromInt(54)),
		"la cantidad vuelve al inventario central: 50 + 4")
	assert.True(t, f.shopQty(t).Equal(decimal.NewFromInt(6)),
		"el snapshot de la tienda NO se restaura: queda en 10 - 4")
}

func TestDeleteSale_VentaInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.uc.Delete(context.Background(), "venta-inexistente")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSales_LimiteIncremental(t *testing.T) {
	f := newFixture(t)

	// 35 ventas: la página 1 devuelve 30, la 2 devuelve todas.
	base := time.Now()
	for i := 0; i < 35; i++ {
		id := "sale-" + strconv.Itoa(i)
		f.st.sales[id] = entity.Sale{
			ID:        id,
			StockID:   testStockID,
			ShopID:    testShopID,
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.NewFromInt(100),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	page1, err := f.uc.GetSales(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, page1, 30)

	page2, err := f.uc.GetSales(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page2, 35)
}

func TestReceipt_GeneraComprobante(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), singleLine(2))
	require.NoError(t, err)

	pdf, err := f.uc.Receipt(context.Background(), out[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.NotNil(t, f.receipts.last)
	assert.True(t, strings.HasPrefix(f.receipts.last.Number, "V-"), "el folio lleva prefijo V-")
	assert.Equal(t, "Tienda Centro", f.receipts.last.ShopName)
	require.Len(t, f.receipts.last.Lines, 1)
	assert.True(t, f.receipts.last.Total.Equal(decimal.NewFromInt(200)))
	assert.False(t, f.receipts.last.OnCredit)
}

func TestReceipt_VentaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Receipt(context.Background(), "venta-inexistente")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
