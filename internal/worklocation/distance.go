package worklocation

import "math"

const earthRadiusMeters = 6371000

// DistanceMeters: Haversine。キオスクの座標と拠点の距離（メートル）。
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

// Nearest: 最寄り拠点とその距離。拠点が無ければ nil。
func Nearest(locations []WorkLocation, lat, lon float64) (*WorkLocation, float64) {
	var best *WorkLocation
	bestDist := math.Inf(1)
	for i := range locations {
		d := DistanceMeters(lat, lon, locations[i].Latitude, locations[i].Longitude)
		if d < bestDist {
			bestDist = d
			best = &locations[i]
		}
	}
	return best, bestDist
}
