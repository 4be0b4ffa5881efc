package entity

import "time"

// Supplier representa un proveedor/laboratorio.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	CreatedAt     time.Time
}
