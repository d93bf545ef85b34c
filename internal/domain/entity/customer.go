package entity

import "time"

// Customer cliente del taller. El email se guarda en minúsculas.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
