package sales

import (
	"context"
	"time"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios de inventario y de ventas: el descuento de stock de todas
// las líneas y la persistencia de la venta confirman como una sola unidad.
type SalesTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockOutbound integra el procesador de ventas con el motor de inventario.
// ApplyOutboundInTx descuenta stock y registra el movimiento usando los
// repositorios del caller (misma transacción); devuelve el stock resultante.
type StockOutbound interface {
	ApplyOutboundInTx(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		productID string,
		quantity int,
		userID, userName, reason string,
		now time.Time,
	) (int, error)
}

// ReceiptGenerator genera el PDF del comprobante de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale) ([]byte, error)
}
