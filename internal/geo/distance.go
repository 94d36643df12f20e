// Package geo holds pure geodesic helpers shared by the proximity flows.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius of the spherical model.
const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula. It is symmetric and zero for identical points.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
