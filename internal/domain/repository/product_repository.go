package repository

import "github.com/jhoicas/farmacia-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// UpdateStock es de uso exclusivo del motor de inventario; Update no toca
// el campo stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar lecturas-modificaciones de stock sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stock int) error
	List(limit, offset int) ([]*entity.Product, error)
	ListActive() ([]*entity.Product, error)
	Delete(id string) error
}
