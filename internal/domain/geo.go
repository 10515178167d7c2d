package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the great-circle distance between two coordinates in
// kilometers, computed with the haversine formula. The square-root argument is
// clamped to [0,1] so antipodal points cannot push it out of domain through
// floating-point overshoot.
func Distance(a, b Coordinate) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	if h < 0 {
		h = 0
	}
	if h > 1 {
		h = 1
	}

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// RoundDistance rounds a distance to one decimal place for presentation.
func RoundDistance(km float64) float64 {
	return math.Round(km*10) / 10
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
