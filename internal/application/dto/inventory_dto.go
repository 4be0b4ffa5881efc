package dto

import "time"

// ApplyMovementRequest registra un movimiento manual de inventario.
// Para INBOUND/OUTBOUND quantity es la magnitud (> 0); para ADJUSTMENT es
// el nuevo stock absoluto (>= 0).
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ApplyMovementResponse resultado de aplicar un movimiento.
type ApplyMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	NewStock int              `json:"new_stock"`
}
