package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/config"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r := NewResolver(config.GeocodingConfig{
		BaseURL:  srv.URL,
		Language: "pt-BR",
		APIKey:   "test-key",
	}, logger.NewNop())
	return r.(*Resolver)
}

func respondJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestReverseMissingCredentials(t *testing.T) {
	r := NewResolver(config.GeocodingConfig{BaseURL: "http://unused.invalid"}, logger.NewNop())

	result := r.Reverse(context.Background(), -23.56, -46.65)
	require.True(t, result.Failed())
	require.Nil(t, result.PlaceName)
	require.Nil(t, result.FormattedAddress)
}

func TestReverseZeroResults(t *testing.T) {
	r := newTestResolver(t, respondJSON(`{"status":"ZERO_RESULTS","results":[]}`))

	result := r.Reverse(context.Background(), 0, 0)
	require.True(t, result.Failed())
	require.Nil(t, result.PlaceName)
}

func TestReverseProviderError(t *testing.T) {
	r := newTestResolver(t, respondJSON(`{"status":"OVER_QUERY_LIMIT","error_message":"slow down"}`))

	result := r.Reverse(context.Background(), 0, 0)
	require.True(t, result.Failed())
	require.Contains(t, result.Err, "OVER_QUERY_LIMIT")
}

func TestReverseNetworkFailure(t *testing.T) {
	r := NewResolver(config.GeocodingConfig{
		BaseURL: "http://127.0.0.1:1",
		APIKey:  "test-key",
	}, logger.NewNop())

	result := r.Reverse(context.Background(), 0, 0)
	require.True(t, result.Failed())
	require.Nil(t, result.PlaceName)
}

func TestReverseEstablishmentName(t *testing.T) {
	r := newTestResolver(t, respondJSON(`{
		"status": "OK",
		"results": [{
			"name": "Parque Ibirapuera",
			"formatted_address": "Av. Pedro Álvares Cabral - Vila Mariana, São Paulo - SP, Brasil",
			"types": ["park", "point_of_interest"],
			"address_components": [
				{"long_name": "Av. Pedro Álvares Cabral", "short_name": "Av. Pedro Álvares Cabral", "types": ["route"]}
			]
		}]
	}`))

	result := r.Reverse(context.Background(), -23.5874, -46.6576)
	require.False(t, result.Failed())
	require.NotNil(t, result.PlaceName)
	require.Equal(t, "Parque Ibirapuera", *result.PlaceName)
	require.Equal(t, "Av. Pedro Álvares Cabral - Vila Mariana, São Paulo - SP, Brasil", *result.FormattedAddress)
}

func TestReverseRouteFallback(t *testing.T) {
	r := newTestResolver(t, respondJSON(`{
		"status": "OK",
		"results": [{
			"formatted_address": "Avenida Paulista, 1578 - Bela Vista, São Paulo - SP, Brasil",
			"types": ["street_address"],
			"address_components": [
				{"long_name": "1578", "short_name": "1578", "types": ["street_number"]},
				{"long_name": "Avenida Paulista", "short_name": "Av. Paulista", "types": ["route"]},
				{"long_name": "Bela Vista", "short_name": "Bela Vista", "types": ["sublocality_level_1", "sublocality"]},
				{"long_name": "São Paulo", "short_name": "São Paulo", "types": ["locality"]},
				{"long_name": "São Paulo", "short_name": "SP", "types": ["administrative_area_level_1"]},
				{"long_name": "01310-200", "short_name": "01310-200", "types": ["postal_code"]}
			]
		}]
	}`))

	result := r.Reverse(context.Background(), -23.5614, -46.6559)
	require.NotNil(t, result.PlaceName)
	require.Equal(t, "Avenida Paulista", *result.PlaceName)

	require.NotNil(t, result.Address)
	require.Equal(t, "Avenida Paulista", result.Address.Street)
	require.Equal(t, "1578", result.Address.Number)
	require.Equal(t, "Bela Vista", result.Address.Neighborhood)
	require.Equal(t, "São Paulo", result.Address.City)
	require.Equal(t, "SP", result.Address.State)
}

func TestReverseRejectsShortCodeOnlyCandidate(t *testing.T) {
	// Provider sometimes answers with nothing but a location short-code.
	// That must never surface as a place name.
	r := newTestResolver(t, respondJSON(`{
		"status": "OK",
		"results": [{
			"formatted_address": "89XF+RV",
			"types": ["plus_code"],
			"address_components": [
				{"long_name": "89XF+RV", "short_name": "89XF+RV", "types": ["plus_code"]}
			]
		}]
	}`))

	result := r.Reverse(context.Background(), -23.5, -46.6)
	require.Nil(t, result.PlaceName)
	// The formatted address is still returned verbatim.
	require.NotNil(t, result.FormattedAddress)
	require.Equal(t, "89XF+RV", *result.FormattedAddress)
}

func TestReverseFormattedSegmentFallback(t *testing.T) {
	// No usable components at all: the first readable comma segment of the
	// formatted address wins, skipping the leading short-code.
	r := newTestResolver(t, respondJSON(`{
		"status": "OK",
		"results": [{
			"formatted_address": "89XF+RV, Consolação, São Paulo - SP, Brasil",
			"types": ["plus_code"],
			"address_components": [
				{"long_name": "89XF+RV", "short_name": "89XF+RV", "types": ["plus_code"]}
			]
		}]
	}`))

	result := r.Reverse(context.Background(), -23.5, -46.6)
	require.NotNil(t, result.PlaceName)
	require.Equal(t, "Consolação", *result.PlaceName)
}
