package geo

import "math"

const earthRadiusKM = 6371.0

// AreaChecker answers whether a booking point falls inside the served
// region, modeled as a radius around a configured center.
type AreaChecker struct {
	centerLat float64
	centerLng float64
	radiusKM  float64
}

// NewAreaChecker builds a checker for the given center and radius.
func NewAreaChecker(centerLat, centerLng, radiusKM float64) *AreaChecker {
	return &AreaChecker{centerLat: centerLat, centerLng: centerLng, radiusKM: radiusKM}
}

// Contains reports whether the point is inside the service area.
func (c *AreaChecker) Contains(lat, lng float64) bool {
	return haversineKM(c.centerLat, c.centerLng, lat, lng) <= c.radiusKM
}

func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
