// Package geofence implementa la validación de perímetro circular para los
// fichajes: un trabajador solo puede fichar entrada dentro del radio permitido
// de su ubicación asignada. Funciones puras, sin I/O.
package geofence

import "math"

const earthRadiusMeters = 6371000.0

// Position es una coordenada geográfica reportada por el cliente.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Distance calcula la distancia de círculo máximo en metros entre dos puntos
// (fórmula Haversine).
func Distance(a, b Position) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	deltaLat := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// IsWithinPerimeter indica si position está dentro del radio permitido (en
// metros) alrededor de center. El borde cuenta como dentro (distancia ≤ radio).
// No acota el radio: los límites [100, 10000] se validan al crear la ubicación.
func IsWithinPerimeter(position, center Position, radiusMeters float64) bool {
	return Distance(position, center) <= radiusMeters
}

// ValidCoordinates verifica que la coordenada esté en el rango geográfico real.
func ValidCoordinates(p Position) bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}
