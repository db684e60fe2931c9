package repository

import (
	"context"

	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
)

// LocationRepository puerto de solo lectura sobre locations.
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
}
