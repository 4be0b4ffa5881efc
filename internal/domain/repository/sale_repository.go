package repository

import (
	"time"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
// Las ventas son write-once: no existe update ni delete.
type SaleRepository interface {
	// Create persiste la cabecera y todas las líneas de la venta.
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// List devuelve ventas (con líneas) ordenadas por created_at descendente.
	List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
}
