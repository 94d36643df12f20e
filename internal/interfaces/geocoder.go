package interfaces

import (
	"context"

	"github.com/pratofeito/pratofeito/internal/domain"
)

// Geocoder resolves coordinates into a human-readable place. Implementations
// always return a usable result value; failures are carried inside it.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) domain.GeocodeResult
}
