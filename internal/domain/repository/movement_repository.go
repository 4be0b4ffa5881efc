package repository

import (
	"time"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de
// movimientos. El libro es append-only: no expone update ni delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// List devuelve movimientos ordenados por created_at ascendente.
	// productID vacío lista todos los productos; from/to acotan el rango.
	List(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
