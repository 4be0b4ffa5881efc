package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. Stock es el stock inicial; después
// del alta solo cambia mediante movimientos de inventario.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CategoryID     string          `json:"category_id"`
	SupplierID     string          `json:"supplier_id"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	Stock          int             `json:"stock"`
	MinStock       int             `json:"min_stock"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	Barcode        string          `json:"barcode"`
}

// UpdateProductRequest actualización parcial; campos nil no se tocan.
// No incluye stock: el stock solo se modifica con movimientos.
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	CategoryID     *string          `json:"category_id"`
	SupplierID     *string          `json:"supplier_id"`
	Price          *decimal.Decimal `json:"price"`
	Cost           *decimal.Decimal `json:"cost"`
	MinStock       *int             `json:"min_stock"`
	ExpirationDate *time.Time       `json:"expiration_date"`
	Barcode        *string          `json:"barcode"`
	Active         *bool            `json:"active"`
}

// ProductResponse representación pública del producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CategoryID     string          `json:"category_id"`
	SupplierID     string          `json:"supplier_id"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	Stock          int             `json:"stock"`
	MinStock       int             `json:"min_stock"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	Barcode        string          `json:"barcode,omitempty"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
}
