package entity

import "time"

// Límites del radio del geoperímetro en metros. Se validan al crear la ubicación
// (colaborador externo) y se refuerzan con un CHECK en la tabla locations.
const (
	MinRadiusMeters = 100
	MaxRadiusMeters = 10000
)

// Location es una ubicación física con geoperímetro circular (centro + radio).
// Inmutable desde la perspectiva del ledger dentro de una operación.
type Location struct {
	ID        string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	Radius    int // metros
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
