package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pratofeito/pratofeito/internal/adapter/logger"
	"github.com/pratofeito/pratofeito/internal/domain"
	"github.com/pratofeito/pratofeito/internal/interfaces"
)

type stubLocationService struct {
	lastQuery interfaces.NearbyQuery
	results   []interfaces.NearbyRestaurant
	geocode   domain.GeocodeResult
}

func (s *stubLocationService) NearbyRestaurants(_ context.Context, query interfaces.NearbyQuery) ([]interfaces.NearbyRestaurant, error) {
	s.lastQuery = query
	return s.results, nil
}

func (s *stubLocationService) ResolveAddress(_ context.Context, _, _ float64) domain.GeocodeResult {
	return s.geocode
}

func (s *stubLocationService) BackfillPlaceNames(_ context.Context) (int, error) {
	return 0, nil
}

func TestNearbyRestaurantsValidation(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"missing coordinates", "", http.StatusBadRequest},
		{"latitude not a number", "lat=abc&lng=-46.65", http.StatusBadRequest},
		{"latitude out of range", "lat=91&lng=-46.65", http.StatusBadRequest},
		{"latitude below range", "lat=-90.5&lng=-46.65", http.StatusBadRequest},
		{"longitude out of range", "lat=-23.56&lng=181", http.StatusBadRequest},
		{"negative radius", "lat=-23.56&lng=-46.65&raio=-1", http.StatusBadRequest},
		{"radius not a number", "lat=-23.56&lng=-46.65&raio=abc", http.StatusBadRequest},
		{"valid", "lat=-23.56&lng=-46.65", http.StatusOK},
		{"valid with radius", "lat=-23.56&lng=-46.65&raio=5000", http.StatusOK},
		{"boundary coordinates", "lat=90&lng=-180", http.StatusOK},
		{"zero radius", "lat=-23.56&lng=-46.65&raio=0", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewLocationHandler(&stubLocationService{}, logger.NewNop())
			r := httptest.NewRequest(http.MethodGet, "/location/restaurants?"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.NearbyRestaurants(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestNearbyRestaurantsDefaultRadius(t *testing.T) {
	svc := &stubLocationService{}
	handler := NewLocationHandler(svc, logger.NewNop())
	r := httptest.NewRequest(http.MethodGet, "/location/restaurants?lat=-23.56&lng=-46.65", nil)
	w := httptest.NewRecorder()

	handler.NearbyRestaurants(w, r)

	if svc.lastQuery.RadiusMeters == nil || *svc.lastQuery.RadiusMeters != 3000 {
		t.Errorf("radius = %v, want default 3000", svc.lastQuery.RadiusMeters)
	}
}

func TestNearbyRestaurantsEmptyResultIsJSONArray(t *testing.T) {
	handler := NewLocationHandler(&stubLocationService{}, logger.NewNop())
	r := httptest.NewRequest(http.MethodGet, "/location/restaurants?lat=-23.56&lng=-46.65", nil)
	w := httptest.NewRecorder()

	handler.NearbyRestaurants(w, r)

	var body []NearbyRestaurantResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if body == nil {
		t.Error("empty result should encode as [], not null")
	}
}

func TestReverseGeocodeDegradesOnFailure(t *testing.T) {
	svc := &stubLocationService{geocode: domain.GeocodeResult{Err: "geocoding credentials are not configured"}}
	handler := NewLocationHandler(svc, logger.NewNop())
	r := httptest.NewRequest(http.MethodGet, "/location/reverse-geocode?lat=-23.56&lng=-46.65", nil)
	w := httptest.NewRecorder()

	handler.ReverseGeocode(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 on provider failure", w.Code)
	}
	var body ReverseGeocodeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.PlaceName != nil || body.Error == "" {
		t.Errorf("expected null place name with error string, got %+v", body)
	}
}

func TestReverseGeocodeValidation(t *testing.T) {
	handler := NewLocationHandler(&stubLocationService{}, logger.NewNop())
	r := httptest.NewRequest(http.MethodGet, "/location/reverse-geocode?lat=100&lng=0", nil)
	w := httptest.NewRecorder()

	handler.ReverseGeocode(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
