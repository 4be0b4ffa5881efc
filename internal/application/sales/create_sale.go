// Package sales implementa el procesador transaccional de ventas: valida y
// tasa una venta multi-línea, descuenta el stock de cada línea dentro de una
// sola transacción y persiste la venta inmutable solo si todas las líneas
// tuvieron stock suficiente.
package sales

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	domsale "github.com/jhoicas/farmacia-pos/internal/domain/sale"
)

const (
	maxTxAttempts  = 3
	initialBackoff = 50 * time.Millisecond
)

// CreateSaleUseCase crea ventas descontando inventario de forma atómica.
type CreateSaleUseCase struct {
	txRunner     SalesTxRunner
	stock        StockOutbound
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
}

// NewCreateSaleUseCase construye el caso de uso. productRepo y saleRepo
// (sin tx) se usan solo para lecturas.
func NewCreateSaleUseCase(
	txRunner SalesTxRunner,
	stock StockOutbound,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		stock:        stock,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
	}
}

// CreateSale valida la venta, recalcula subtotales y total (los subtotales
// enviados por el cliente se ignoran), y dentro de una transacción descuenta
// el stock de cada línea en orden de product_id ascendente (orden de bloqueo
// determinista para evitar deadlocks entre ventas que comparten productos).
// Si cualquier línea falla por stock insuficiente, la transacción se
// revierte y ningún producto de la venta queda afectado.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID, userName string, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if len(in.Lines) == 0 || in.CustomerName == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	// Cliente opcional: si viene referencia debe existir.
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Validar productos y congelar nombre/precio (lecturas fuera de la tx).
	lines := make([]entity.SaleLine, 0, len(in.Lines))
	for _, lr := range in.Lines {
		if lr.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(lr.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, domain.ErrNotFound
		}
		unitPrice := lr.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		subtotal, err := domsale.LineSubtotal(lr.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.SaleLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    lr.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
	}

	subtotal, total, err := domsale.Totals(lines, in.Tax, in.Discount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		UserID:        userID,
		UserName:      userName,
		Lines:         lines,
		Subtotal:      subtotal,
		Tax:           in.Tax,
		Discount:      in.Discount,
		Total:         total,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now,
	}

	// Orden de bloqueo: índices de línea ordenados por product_id.
	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return lines[order[a]].ProductID < lines[order[b]].ProductID
	})

	reason := "sale:" + sale.ID
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err = uc.txRunner.RunSale(ctx, func(
			movRepo repository.MovementRepository,
			productRepo repository.ProductRepository,
			saleRepo repository.SaleRepository,
		) error {
			for _, idx := range order {
				line := lines[idx]
				if _, err := uc.stock.ApplyOutboundInTx(
					movRepo, productRepo,
					line.ProductID, line.Quantity,
					userID, userName, reason,
					now,
				); err != nil {
					return err
				}
			}
			return saleRepo.Create(sale)
		})
		if err == nil {
			return sale, nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= maxTxAttempts {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// GetSale obtiene una venta con sus líneas.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ListSales lista ventas (más recientes primero), opcionalmente acotadas
// por rango de fechas. El limit no positivo usa el valor por defecto; por
// encima del máximo se acota.
func (uc *CreateSaleUseCase) ListSales(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return uc.saleRepo.List(from, to, limit, offset)
}
