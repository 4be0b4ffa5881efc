package entity

import "time"

// Customer representa un cliente de la farmacia.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
}
