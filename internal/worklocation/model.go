package worklocation

// 承認済み勤務拠点。キオスクの位置情報はここへの距離で注釈される。
type WorkLocation struct {
	ID           int64
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
}
