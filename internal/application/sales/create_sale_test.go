package sales_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/application/inventory"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: store compartido + tx runner con rollback por snapshot
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu            sync.Mutex
	products      map[string]*entity.Product
	customers     map[string]*entity.Customer
	movements     []*entity.Movement
	sales         []*entity.Sale
	lastListLimit int
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
	}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *memStore) stockOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapProducts := make(map[string]*entity.Product, len(r.store.products))
	for id, p := range r.store.products {
		cp := *p
		snapProducts[id] = &cp
	}
	snapMovs := len(r.store.movements)
	snapSales := len(r.store.sales)

	err := fn(&memMovementRepo{store: r.store}, &memProductRepo{store: r.store, locked: true}, &memSaleRepo{store: r.store, locked: true})
	if err != nil {
		r.store.products = snapProducts
		r.store.movements = r.store.movements[:snapMovs]
		r.store.sales = r.store.sales[:snapSales]
		return err
	}
	return nil
}

// memProductRepo con locked=true asume que el caller tiene el lock del
// store (dentro de la tx); con locked=false toma el lock en cada llamada
// (lecturas fuera de la tx).
type memProductRepo struct {
	store  *memStore
	locked bool
}

func (r *memProductRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memProductRepo) Create(p *entity.Product) error {
	defer r.lock()()
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	defer r.lock()()
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id string, stock int) error {
	defer r.lock()()
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return r.ListActive()
}

func (r *memProductRepo) ListActive() ([]*entity.Product, error) {
	defer r.lock()()
	var out []*entity.Product
	for _, p := range r.store.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.store.products, id)
	return nil
}

type memMovementRepo struct {
	store *memStore
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) { return nil, nil }

func (r *memMovementRepo) List(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if productID != "" && m.ProductID != productID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type memSaleRepo struct {
	store  *memStore
	locked bool
}

func (r *memSaleRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	defer r.lock()()
	cp := *sale
	cp.Lines = append([]entity.SaleLine(nil), sale.Lines...)
	r.store.sales = append(r.store.sales, &cp)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	defer r.lock()()
	for _, s := range r.store.sales {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	defer r.lock()()
	r.store.lastListLimit = limit
	var out []*entity.Sale
	for _, s := range r.store.sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

type memCustomerRepo struct {
	store *memStore
}

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *c
	r.store.customers[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) Update(c *entity.Customer) error                    { return nil }
func (r *memCustomerRepo) Delete(id string) error                             { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testProduct(id, name string, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:        id,
		Name:      name,
		Price:     dec(price),
		Stock:     stock,
		MinStock:  5,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

// newSaleUseCase arma el procesador de ventas con el motor de inventario
// real sobre los fakes de persistencia.
func newSaleUseCase(store *memStore) *sales.CreateSaleUseCase {
	return newSaleUseCaseWithRunner(store, &memTxRunner{store: store})
}

func newSaleUseCaseWithRunner(store *memStore, txRunner sales.SalesTxRunner) *sales.CreateSaleUseCase {
	movementUC := inventory.NewApplyMovementUseCase(nil, &memMovementRepo{store: store})
	return sales.NewCreateSaleUseCase(
		txRunner,
		movementUC,
		&memCustomerRepo{store: store},
		&memProductRepo{store: store},
		&memSaleRepo{store: store},
	)
}

// conflictTxRunner rechaza las primeras fails transacciones con un error que
// envuelve domain.ErrConflict (como hace el runner de Postgres ante
// 40001/40P01) y después delega en el runner real.
type conflictTxRunner struct {
	inner    *memTxRunner
	fails    int
	attempts int
}

func (r *conflictTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.attempts++
	if r.attempts <= r.fails {
		return fmt.Errorf("%w: deadlock detected", domain.ErrConflict)
	}
	return r.inner.RunSale(ctx, fn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYRegistraMovimientos(t *testing.T) {
	store := newMemStore(
		testProduct("p1", "Paracetamol 500mg", "2.50", 20),
		testProduct("p2", "Amoxicilina 250mg", "8.00", 10),
	)
	uc := newSaleUseCase(store)

	sale, err := uc.CreateSale(context.Background(), "u1", "Carlos", dto.CreateSaleRequest{
		CustomerName: "María",
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 4},
			{ProductID: "p2", Quantity: 2},
		},
		Tax:      dec("3.00"),
		Discount: dec("1.00"),
	})
	require.NoError(t, err)

	// 4*2.50 + 2*8.00 = 26.00; total = 26 + 3 - 1 = 28
	assert.True(t, dec("26.00").Equal(sale.Subtotal), "subtotal %s", sale.Subtotal)
	assert.True(t, dec("28.00").Equal(sale.Total), "total %s", sale.Total)
	assert.Equal(t, entity.PaymentCash, sale.PaymentMethod, "medio de pago por defecto")

	assert.Equal(t, 16, store.stockOf("p1"))
	assert.Equal(t, 8, store.stockOf("p2"))

	// Un movimiento OUTBOUND por línea con la referencia a la venta.
	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementTypeOUTBOUND, m.Type)
		assert.Equal(t, "sale:"+sale.ID, m.Reason)
		assert.Equal(t, "u1", m.UserID)
	}
	require.Len(t, store.sales, 1)
}

func TestCreateSale_IgnoraSubtotalDelCliente(t *testing.T) {
	store := newMemStore(testProduct("p1", "Paracetamol 500mg", "2.50", 20))
	uc := newSaleUseCase(store)

	sale, err := uc.CreateSale(context.Background(), "u1", "Carlos", dto.CreateSaleRequest{
		CustomerName: "María",
		Lines: []dto.SaleLineRequest{
			// El cliente manda un subtotal manipulado; el servidor recalcula.
			{ProductID: "p1", Quantity: 2, UnitPrice: dec("2.50"), Subtotal: dec("0.01")},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("5.00").Equal(sale.Lines[0].Subtotal),
		"el subtotal debe recalcularse, obtuvo %s", sale.Lines[0].Subtotal)
	assert.True(t, dec("5.00").Equal(sale.Total))
}

func TestCreateSale_PrecioCeroTomaPrecioDeCatalogo(t *testing.T) {
	store := newMemStore(testProduct("p1", "Paracetamol 500mg", "2.50", 20))
	uc := newSaleUseCase(store)

	sale, err := uc.CreateSale(context.Background(), "u1", "Carlos", dto.CreateSaleRequest{
		CustomerName: "María",
		Lines:        []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, dec("2.50").Equal(sale.Lines[0].UnitPrice))
	assert.Equal(t, "Paracetamol 500mg", sale.Lines[0].ProductName, "nombre congelado del catálogo")
}

func TestCreateSale_ValidacionDeEntradas(t *testing.T) {
	store := newMemStore(testProduct("p1", "Paracetamol 500mg", "2.50", 20))
	uc := newSaleUseCase(store)
	ctx := context.Background()

	line := []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}}

	_, err := uc.CreateSale(ctx, "u1", "Carlos", dto.CreateSaleRequest{CustomerName: "María"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.CreateSale(ctx, "u1", "Carlos", dto.CreateSaleRequest{Lines: line})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin nombre de cliente")

	_, err = uc.CreateSale(ctx, "", "", dto.CreateSaleRequest{CustomerName: "María", Lines: line})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin usuario")

	_, err = uc.CreateSale(ctx, "u1", "Carlos", dto.CreateSaleRequest{
		CustomerName: "María", Lines: line, PaymentMethod: "cheque",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "medio de pago desconocido")

	_, err = uc.CreateSale(ctx, "u1", "Carlos", dto.CreateSaleRequest{
		CustomerName: "María", Lines: line, Discount: dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "total negativo")

	assert.Equal(t, 20, store.stockOf("p1"), "ninguna validación fallida debe tocar stock")
}

func TestCreateSale_ProductoInactivoRechazado(t *testing.T) {
	inactive := testProduct("p1", "Descontinuado", "2.00", 20)
	inactive.Active = false
	store := newMemStore(inactive)
	uc := newSaleUseCase(store)

	_, err := uc.CreateSale(context.Background(), "u1", "Carlos", dto.CreateSaleRequest{
		CustomerName: "María",
		Lines:        []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_ClienteReferenciadoDebeExistir(t *testing.T) {
	store := newMemStore(testProduct("p1", "Paracetamol 500mg", "2.50", 20))
	uc := newSaleUseCase(store)

	_, err := uc.CreateSale(context.Background(), "u1", "Carlos", dto.CreateSaleRequest{
		CustomerID:   "c-fantasma",
		CustomerName: "María",
		Lines:        []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Atomicidad: si una línea no tiene stock, ninguna línea queda aplicada y la
// venta no se persiste.
func TestCreateSale_RollbackSiUnaLineaNoTieneStock(t *testing.T) {
	store := newMemStore(
		testProduct("p1", "Paracetamol 500mg", "2.50", 20),
		testProduct("p2", "Amoxicilina 250mg", "8.00", 1),
	)
	uc := newSaleUseCase(store)

	_, err := uc.CreateSale(context.Background(), "u1", "Carlos", dto.CreateSaleRequest{
		CustomerName: "María",
		Lines: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: 3}, // insuficiente
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 20, store.stockOf("p1"), "la línea con stock también debe revertirse")
	assert.Equal(t, 1, store.stockOf("p2"))
	assert.Empty(t, store.sales, "la venta no debe persistirse")
	assert.Empty(t, store.movements, "el libro no debe registrar movimientos de la venta fallida")
}

// Un conflicto de serialización se reintenta y la venta termina aplicándose
// una sola vez.
func TestCreateSale_ConflictoSeReintentaYLuegoExito(t *testing.T) {
	store := newMemStore(testProduct("p1", "Paracetamol 500mg", "2.50", 20))
	runner := &conflictTxRunner{inner: &memTxRunner{store: store}, fails: 2}
	uc := newSaleUseCaseWithRunner(store, runner)

	sale, err := uc.CreateSale(context.Background(), "u1", "Carlos", dto.CreateSaleRequest{
		CustomerName: "María",
		Lines:        []dto.SaleLineRequest{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, runner.attempts, "dos conflictos y un intento exitoso")
	assert.Equal(t, 16, store.stockOf("p1"))
	require.Len(t, store.sales, 1, "la venta se persiste una sola vez")
	require.Len(t, store.movements, 1)
	assert.Equal(t, "sale:"+sale.ID, store.movements[0].Reason)
}

func TestCreateSale_ConflictoAgotaIntentos(t *testing.T) {
	store := newMemStore(testProduct("p1", "Paracetamol 500mg", "2.50", 20))
	runner := &conflictTxRunner{inner: &memTxRunner{store: store}, fails: 10}
	uc := newSaleUseCaseWithRunner(store, runner)

	_, err := uc.CreateSale(context.Background(), "u1", "Carlos", dto.CreateSaleRequest{
		CustomerName: "María",
		Lines:        []dto.SaleLineRequest{{ProductID: "p1", Quantity: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, runner.attempts, "tope de tres intentos")
	assert.Equal(t, 20, store.stockOf("p1"), "el stock no debe cambiar")
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
}

func TestListSales_LimiteSeAcota(t *testing.T) {
	store := newMemStore()
	uc := newSaleUseCase(store)
	ctx := context.Background()

	_, err := uc.ListSales(ctx, nil, nil, 9999, 0)
	require.NoError(t, err)
	assert.Equal(t, 500, store.lastListLimit, "limit por encima del máximo se acota a 500")

	_, err = uc.ListSales(ctx, nil, nil, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 100, store.lastListLimit, "limit no positivo usa el valor por defecto")
}

// Ventas concurrentes sobre el mismo producto: nunca sobrevenden.
func TestCreateSale_VentasConcurrentesNoSobrevenden(t *testing.T) {
	const n = 30
	store := newMemStore(testProduct("p1", "Paracetamol 500mg", "2.50", n/2))
	uc := newSaleUseCase(store)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateSale(context.Background(), "u1", "Carlos", dto.CreateSaleRequest{
				CustomerName: "Mostrador",
				Lines:        []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok, failed := 0, 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, n/2, ok)
	assert.Equal(t, n/2, failed)
	assert.Equal(t, 0, store.stockOf("p1"))
	assert.Len(t, store.sales, n/2)
}

func TestGetSale_NoExiste(t *testing.T) {
	store := newMemStore()
	uc := newSaleUseCase(store)

	_, err := uc.GetSale(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
