// Package geocode adapts an external reverse-geocoding provider into the
// best-effort lookup contract the location flows rely on.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/config"
	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

type providerResponse struct {
	Status       string           `json:"status"`
	ErrorMessage string           `json:"error_message"`
	Results      []providerResult `json:"results"`
}

type providerResult struct {
	Name              string             `json:"name"`
	FormattedAddress  string             `json:"formatted_address"`
	Types             []string           `json:"types"`
	AddressComponents []addressComponent `json:"address_components"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Result types that identify a venue rather than a plain address; for these
// the provider's own name field is the best label.
var establishmentTypes = map[string]bool{
	"establishment":     true,
	"point_of_interest": true,
	"park":              true,
	"train_station":     true,
	"transit_station":   true,
	"bus_station":       true,
	"university":        true,
	"hospital":          true,
	"stadium":           true,
	"airport":           true,
	"shopping_mall":     true,
}

// Component types that never make a useful place name on their own.
var noiseComponentTypes = map[string]bool{
	"street_number": true,
	"postal_code":   true,
	"plus_code":     true,
}

type Resolver struct {
	cfg    config.GeocodingConfig
	client *http.Client
	logger logger.Logger
}

// NewResolver builds a resolver over the configured provider. The client
// carries no timeout of its own; each call is bounded by its context.
func NewResolver(cfg config.GeocodingConfig, lgr logger.Logger) interfaces.Geocoder {
	return &Resolver{
		cfg:    cfg,
		client: &http.Client{},
		logger: lgr,
	}
}

// Reverse performs one provider lookup. It always returns a value: any
// failure mode (missing credentials, provider status, network, parse) is
// reported inside the result so callers can fall back to the structured
// address.
func (r *Resolver) Reverse(ctx context.Context, lat, lng float64) domain.GeocodeResult {
	if r.cfg.APIKey == "" {
		return failure("geocoding credentials are not configured")
	}

	resp, err := r.fetch(ctx, lat, lng)
	if err != nil {
		r.logger.Error("geocode_request_failed", "Reverse geocoding request failed", "", map[string]interface{}{
			"lat": lat,
			"lng": lng,
		}, err)
		return failure(err.Error())
	}

	switch {
	case resp.Status == "ZERO_RESULTS" || (resp.Status == "OK" && len(resp.Results) == 0):
		return failure("no results for coordinates")
	case resp.Status != "OK":
		msg := "geocoding provider returned status " + resp.Status
		if resp.ErrorMessage != "" {
			msg += ": " + resp.ErrorMessage
		}
		return failure(msg)
	}

	top := resp.Results[0]
	result := domain.GeocodeResult{
		FormattedAddress: &top.FormattedAddress,
		Address:          guessAddress(top),
	}
	if name := extractPlaceName(top); name != "" {
		result.PlaceName = &name
	}
	return result
}

func (r *Resolver) fetch(ctx context.Context, lat, lng float64) (*providerResponse, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("language", r.cfg.Language)
	params.Set("key", r.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach geocoding provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding provider answered HTTP %d", resp.StatusCode)
	}

	var parsed providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	return &parsed, nil
}

// extractPlaceName runs the ordered extractor chain over the top result and
// returns the first candidate that passes the readability predicate.
func extractPlaceName(res providerResult) string {
	extractors := []func(providerResult) string{
		establishmentName,
		establishmentComponent,
		routeComponent,
		firstUsefulComponent,
		firstFormattedSegment,
	}

	for _, extract := range extractors {
		if candidate := extract(res); isReadable(candidate) {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

func establishmentName(res providerResult) string {
	for _, t := range res.Types {
		if establishmentTypes[t] {
			return res.Name
		}
	}
	return ""
}

func establishmentComponent(res providerResult) string {
	for _, c := range res.AddressComponents {
		for _, t := range c.Types {
			if t == "establishment" || t == "point_of_interest" {
				return c.LongName
			}
		}
	}
	return ""
}

func routeComponent(res providerResult) string {
	return componentByType(res, "route")
}

func firstUsefulComponent(res providerResult) string {
	for _, c := range res.AddressComponents {
		noise := false
		for _, t := range c.Types {
			if noiseComponentTypes[t] {
				noise = true
				break
			}
		}
		if !noise {
			return c.LongName
		}
	}
	return ""
}

func firstFormattedSegment(res providerResult) string {
	for _, segment := range strings.Split(res.FormattedAddress, ",") {
		if isReadable(segment) {
			return segment
		}
	}
	return ""
}

// guessAddress pulls the common street/number/neighborhood/city/state
// components out of the top result.
func guessAddress(res providerResult) *domain.AddressGuess {
	guess := domain.AddressGuess{
		Street: componentByType(res, "route"),
		Number: componentByType(res, "street_number"),
		City:   componentByType(res, "locality"),
		State:  shortComponentByType(res, "administrative_area_level_1"),
	}

	for _, t := range []string{"sublocality_level_1", "sublocality", "neighborhood"} {
		if v := componentByType(res, t); v != "" {
			guess.Neighborhood = v
			break
		}
	}
	if guess.City == "" {
		guess.City = componentByType(res, "administrative_area_level_2")
	}

	if guess == (domain.AddressGuess{}) {
		return nil
	}
	return &guess
}

func componentByType(res providerResult, wanted string) string {
	for _, c := range res.AddressComponents {
		for _, t := range c.Types {
			if t == wanted {
				return c.LongName
			}
		}
	}
	return ""
}

func shortComponentByType(res providerResult, wanted string) string {
	for _, c := range res.AddressComponents {
		for _, t := range c.Types {
			if t == wanted {
				return c.ShortName
			}
		}
	}
	return ""
}

func failure(desc string) domain.GeocodeResult {
	return domain.GeocodeResult{Err: desc}
}
