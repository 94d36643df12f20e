package http

import (
	"net/http"
	"strconv"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

// defaultRadiusMeters applies when the "raio" query parameter is absent.
const defaultRadiusMeters = 3000.0

type LocationHandler struct {
	service interfaces.LocationService
	logger  logger.Logger
}

func NewLocationHandler(service interfaces.LocationService, lgr logger.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		logger:  lgr,
	}
}

type NearbyRestaurantResponse struct {
	RestaurantID   int     `json:"restaurant_id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	DistanceMeters int     `json:"distance_meters"`
	DeliveryFee    float64 `json:"delivery_fee"`
	MinimumOrder   float64 `json:"minimum_order"`
}

type ReverseGeocodeResponse struct {
	PlaceName        *string              `json:"place_name"`
	FormattedAddress *string              `json:"formatted_address"`
	Address          *domain.AddressGuess `json:"address,omitempty"`
	Error            string               `json:"error,omitempty"`
}

func (h *LocationHandler) NearbyRestaurants(w http.ResponseWriter, r *http.Request) {
	coords, validationErrors := parseCoordinates(r)

	radius := defaultRadiusMeters
	if raw := r.URL.Query().Get("raio"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			validationErrors = append(validationErrors, ValidationError{
				Field:   "raio",
				Message: "radius must be a non-negative number of meters",
			})
		} else {
			radius = parsed
		}
	}

	if len(validationErrors) > 0 {
		respondError(w, "Validation failed", http.StatusBadRequest, validationErrors)
		return
	}

	results, err := h.service.NearbyRestaurants(r.Context(), interfaces.NearbyQuery{
		Latitude:     coords.Latitude,
		Longitude:    coords.Longitude,
		RadiusMeters: &radius,
	})
	if err != nil {
		h.logger.Error("nearby_search_failed", "Failed to search nearby restaurants", requestID(r), nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	resp := make([]NearbyRestaurantResponse, 0, len(results))
	for _, nr := range results {
		resp = append(resp, NearbyRestaurantResponse{
			RestaurantID:   nr.RestaurantID,
			Name:           nr.Name,
			Address:        nr.DisplayAddress,
			DistanceMeters: nr.DistanceMeters,
			DeliveryFee:    nr.DeliveryFee,
			MinimumOrder:   nr.MinimumOrder,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *LocationHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	coords, validationErrors := parseCoordinates(r)
	if len(validationErrors) > 0 {
		respondError(w, "Validation failed", http.StatusBadRequest, validationErrors)
		return
	}

	result := h.service.ResolveAddress(r.Context(), coords.Latitude, coords.Longitude)

	// Provider trouble is not a client error: the response degrades to
	// null fields with the failure description attached.
	respondJSON(w, http.StatusOK, ReverseGeocodeResponse{
		PlaceName:        result.PlaceName,
		FormattedAddress: result.FormattedAddress,
		Address:          result.Address,
		Error:            result.Err,
	})
}

func parseCoordinates(r *http.Request) (domain.Coordinates, []ValidationError) {
	var validationErrors []ValidationError

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "lat",
			Message: "latitude is required and must be a number",
		})
	} else if lat < -90 || lat > 90 {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "lat",
			Message: "latitude must be between -90 and 90",
		})
	}

	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "lng",
			Message: "longitude is required and must be a number",
		})
	} else if lng < -180 || lng > 180 {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "lng",
			Message: "longitude must be between -180 and 180",
		})
	}

	return domain.Coordinates{Latitude: lat, Longitude: lng}, validationErrors
}
