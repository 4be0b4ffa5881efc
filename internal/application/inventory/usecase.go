// Package inventory implementa el motor de inventario: aplicación atómica
// de movimientos de stock (INBOUND, OUTBOUND, ADJUSTMENT) con bloqueo de
// fila por producto y registro en el libro de movimientos.
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// Reintentos ante conflictos de serialización/deadlock en la BD.
const (
	maxTxAttempts  = 3
	initialBackoff = 50 * time.Millisecond
)

// ApplyMovementUseCase aplica movimientos de stock de forma transaccional.
// Dos movimientos concurrentes sobre el mismo producto se serializan por el
// bloqueo de fila (GetForUpdate); productos distintos avanzan en paralelo.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
}

// NewApplyMovementUseCase construye el caso de uso. movRepo (sin tx) se usa
// solo para las consultas de lectura del libro.
func NewApplyMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// MovementInput entrada para aplicar un movimiento de stock.
type MovementInput struct {
	ProductID string
	Type      string // INBOUND, OUTBOUND, ADJUSTMENT
	Quantity  int    // magnitud para IN/OUT; stock absoluto para ADJUSTMENT
	Reason    string
	UserID    string
	UserName  string
}

// MovementResult movimiento registrado y stock resultante.
type MovementResult struct {
	Movement *entity.Movement
	NewStock int
}

// Apply valida el movimiento y lo aplica en una transacción: bloquea la fila
// del producto, calcula el nuevo stock, actualiza el registro y hace append
// al libro. Ante un conflicto de serialización reintenta con backoff
// exponencial acotado antes de devolver domain.ErrConflict.
//
// OUTBOUND que dejaría el stock negativo se rechaza con
// domain.ErrInsufficientStock sin escribir nada: el libro nunca registra una
// salida que el stock real no respalda.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		var res *MovementResult
		err := uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			productRepo repository.ProductRepository,
		) error {
			r, err := applyInTx(movRepo, productRepo, input, now)
			if err != nil {
				return err
			}
			res = r
			return nil
		})
		if err == nil {
			return res, nil
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

func validate(input MovementInput) error {
	if input.ProductID == "" || input.Reason == "" || input.UserID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeADJUSTMENT:
		// cero es válido: fija el stock exactamente en cero
		if input.Quantity < 0 {
			return domain.ErrInvalidInput
		}
	default:
		if input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// applyInTx ejecuta la lectura-verificación-escritura bajo el bloqueo de
// fila del producto. Asume que el caller está dentro de una transacción.
func applyInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
) (*MovementResult, error) {
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var newStock int
	switch input.Type {
	case entity.MovementTypeINBOUND:
		newStock = product.Stock + input.Quantity
	case entity.MovementTypeOUTBOUND:
		newStock = product.Stock - input.Quantity
		if newStock < 0 {
			return nil, domain.ErrInsufficientStock
		}
	case entity.MovementTypeADJUSTMENT:
		newStock = input.Quantity
	}

	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	mov := &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Reason:      input.Reason,
		UserID:      input.UserID,
		UserName:    input.UserName,
		CreatedAt:   now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, NewStock: newStock}, nil
}

// ApplyOutboundInTx ejecuta una salida usando los repositorios del caller
// (misma transacción). Lo usa el procesador de ventas para descontar cada
// línea dentro de la transacción de la venta; si retorna error (por ejemplo
// ErrInsufficientStock) el caller hace rollback y ninguna línea queda
// aplicada.
func (uc *ApplyMovementUseCase) ApplyOutboundInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity int,
	userID, userName, reason string,
	now time.Time,
) (int, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	result, err := applyInTx(movRepo, productRepo, MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeOUTBOUND,
		Quantity:  quantity,
		Reason:    reason,
		UserID:    userID,
		UserName:  userName,
	}, now)
	if err != nil {
		return 0, err
	}
	return result.NewStock, nil
}

// ListMovements consulta el libro (orden created_at ascendente). El limit
// no positivo usa el valor por defecto; por encima del máximo se acota.
func (uc *ApplyMovementUseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.List(productID, from, to, limit, offset)
}
