package location

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/geo"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

type Service struct {
	restaurants interfaces.RestaurantRepository
	geocoder    interfaces.Geocoder
	logger      logger.Logger
	// throttle is the fixed pause between provider calls in the backfill
	// loop, a self-imposed cap against the provider's rate limits.
	throttle time.Duration
}

func NewService(restaurants interfaces.RestaurantRepository, geocoder interfaces.Geocoder, lgr logger.Logger, throttle time.Duration) *Service {
	return &Service{
		restaurants: restaurants,
		geocoder:    geocoder,
		logger:      lgr,
		throttle:    throttle,
	}
}

// NearbyRestaurants filters active restaurants by distance from the query
// point and returns them nearest first. Restaurants without coordinates are
// skipped; ties keep their input order.
func (s *Service) NearbyRestaurants(ctx context.Context, query interfaces.NearbyQuery) ([]interfaces.NearbyRestaurant, error) {
	all, err := s.restaurants.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		restaurant *domain.Restaurant
		distance   float64
	}

	var matches []scored
	for _, r := range all {
		coords := r.Address.Coordinates
		if coords == nil {
			continue
		}
		d := geo.DistanceMeters(query.Latitude, query.Longitude, coords.Latitude, coords.Longitude)
		if query.RadiusMeters != nil && d > *query.RadiusMeters {
			continue
		}
		matches = append(matches, scored{restaurant: r, distance: d})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	result := make([]interfaces.NearbyRestaurant, len(matches))
	for i, m := range matches {
		result[i] = interfaces.NearbyRestaurant{
			RestaurantID:   m.restaurant.ID,
			Name:           m.restaurant.Name,
			DisplayAddress: m.restaurant.Address.Display(),
			DistanceMeters: int(math.Round(m.distance)),
			DeliveryFee:    m.restaurant.DeliveryFee,
			MinimumOrder:   m.restaurant.MinimumOrder,
		}
	}
	return result, nil
}

// ResolveAddress reverse-geocodes a coordinate pair. When the provider gave
// no street component the place name stands in for it, so callers always
// get the most readable label available.
func (s *Service) ResolveAddress(ctx context.Context, lat, lng float64) domain.GeocodeResult {
	result := s.geocoder.Reverse(ctx, lat, lng)
	if result.Failed() {
		return result
	}

	if result.Address == nil {
		result.Address = &domain.AddressGuess{}
	}
	if result.Address.Street == "" && result.PlaceName != nil {
		result.Address.Street = *result.PlaceName
	}
	return result
}

// BackfillPlaceNames resolves and caches place names for restaurants that
// have coordinates but no label yet, pausing between provider calls. A
// failed lookup simply leaves that restaurant for a later run.
func (s *Service) BackfillPlaceNames(ctx context.Context) (int, error) {
	pending, err := s.restaurants.ListMissingPlaceName(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i, r := range pending {
		if i > 0 {
			select {
			case <-ctx.Done():
				return updated, ctx.Err()
			case <-time.After(s.throttle):
			}
		}

		coords := r.Address.Coordinates
		if coords == nil {
			continue
		}

		result := s.geocoder.Reverse(ctx, coords.Latitude, coords.Longitude)
		if result.PlaceName == nil {
			s.logger.Debug("geocode_skipped", "No readable place name resolved", "", map[string]interface{}{
				"restaurant_id": r.ID,
				"error":         result.Err,
			})
			continue
		}

		if err := s.restaurants.UpdatePlaceName(ctx, r.ID, *result.PlaceName); err != nil {
			s.logger.Error("place_name_update_failed", "Failed to cache place name", "", map[string]interface{}{
				"restaurant_id": r.ID,
			}, err)
			continue
		}
		updated++
	}
	return updated, nil
}
