package inventory

import (
	"context"

	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El update del stock y el append al libro de
// movimientos confirman juntos o no confirman ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
