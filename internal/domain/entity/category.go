package entity

import "time"

// Category agrupa productos (analgésicos, antibióticos, cuidado personal...).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
