package worklocation

import (
	"math"
	"testing"
)

func TestDistanceMetersKnownPair(t *testing.T) {
	// カイロタワー → タハリール広場、およそ1.1km
	d := DistanceMeters(30.0459, 31.2243, 30.0444, 31.2357)
	if d < 1000 || d > 1300 {
		t.Fatalf("unexpected distance: %.0f m", d)
	}
}

func TestDistanceMetersZero(t *testing.T) {
	d := DistanceMeters(30.0, 31.0, 30.0, 31.0)
	if math.Abs(d) > 0.001 {
		t.Fatalf("expected ~0, got %f", d)
	}
}

func TestNearestPicksClosest(t *testing.T) {
	sites := []WorkLocation{
		{ID: 1, Name: "HQ", Latitude: 30.0444, Longitude: 31.2357, RadiusMeters: 200},
		{ID: 2, Name: "Branch", Latitude: 31.2001, Longitude: 29.9187, RadiusMeters: 200},
	}
	site, dist := Nearest(sites, 30.0450, 31.2360)
	if site == nil || site.ID != 1 {
		t.Fatalf("expected HQ, got %+v", site)
	}
	if dist > float64(site.RadiusMeters) {
		t.Fatalf("expected within radius, got %.0f m", dist)
	}
}

func TestNearestEmpty(t *testing.T) {
	site, _ := Nearest(nil, 30, 31)
	if site != nil {
		t.Fatalf("expected nil for empty site list")
	}
}
