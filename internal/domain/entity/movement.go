package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeINBOUND    = "INBOUND"    // entrada (compra, devolución)
	MovementTypeOUTBOUND   = "OUTBOUND"   // salida (venta, merma)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste: Quantity es el stock absoluto resultante
)

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeINBOUND, MovementTypeOUTBOUND, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// Movement es una entrada del libro de movimientos de inventario.
// El libro es append-only: una vez escrito, un movimiento no se actualiza
// ni se borra. Quantity es la magnitud (no negativa) para INBOUND/OUTBOUND;
// para ADJUSTMENT es el nuevo valor absoluto del stock, no un delta.
type Movement struct {
	ID          string
	ProductID   string
	ProductName string // snapshot del nombre al momento del movimiento
	Type        string
	Quantity    int
	Reason      string // texto libre; "sale:<id>" para movimientos generados por ventas
	UserID      string
	UserName    string
	CreatedAt   time.Time
}
