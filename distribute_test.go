package orbita

import (
	"math"
	"testing"
)

func TestPlanDistributionPlacesEveryImageExactlyOnce(t *testing.T) {
	const n = 29
	placements := PlanDistribution(n, DistributionOptions{})
	if len(placements) != n {
		t.Fatalf("len(placements) = %d, want %d", len(placements), n)
	}
	for i, p := range placements {
		if p.Lat < -64-geomEps || p.Lat > 64+geomEps {
			t.Errorf("placement %d latitude %f outside the band span plus jitter", i, p.Lat)
		}
		if p.Lng < -180 || p.Lng >= 180 {
			t.Errorf("placement %d longitude %f not normalized", i, p.Lng)
		}
	}
}

func TestPolarBandsHoldFewerImagesThanEquatorialBands(t *testing.T) {
	const n = 29
	placements := PlanDistribution(n, DistributionOptions{})

	// 29 images yield 6 bands centered at ±10, ±30, ±50 degrees.
	// Aggregate per |center| tier; coverage must thin toward the poles.
	tiers := map[int]int{}
	for _, p := range placements {
		center := -60 + (float64(p.Band)+0.5)*20
		tiers[int(math.Abs(center))]++
	}
	if !(tiers[10] > tiers[30] && tiers[30] > tiers[50]) {
		t.Fatalf("tier counts 10°=%d 30°=%d 50°=%d, want strictly decreasing",
			tiers[10], tiers[30], tiers[50])
	}
}

func TestPlanDistributionDeterministic(t *testing.T) {
	a := PlanDistribution(17, DistributionOptions{})
	b := PlanDistribution(17, DistributionOptions{})
	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs across identical runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPlanDistributionEdgeCounts(t *testing.T) {
	if got := PlanDistribution(0, DistributionOptions{}); got != nil {
		t.Errorf("n=0 should plan nothing, got %d placements", len(got))
	}
	if got := PlanDistribution(-3, DistributionOptions{}); got != nil {
		t.Errorf("negative n should plan nothing, got %d placements", len(got))
	}

	one := PlanDistribution(1, DistributionOptions{})
	if len(one) != 1 {
		t.Fatalf("n=1 planned %d placements", len(one))
	}
	// A single image sits in the lone band straddling the equator.
	if math.Abs(one[0].Lat) > 60+4 {
		t.Errorf("single placement at latitude %f, want near the equator", one[0].Lat)
	}
}

func TestPlanDistributionHonorsMaxBandsCap(t *testing.T) {
	placements := PlanDistribution(100, DistributionOptions{})
	// sqrt(100) = 10 bands uncapped; the default cap is 7.
	for _, p := range placements {
		if p.Band < 0 || p.Band >= 7 {
			t.Fatalf("band index %d outside [0, 7)", p.Band)
		}
	}
}
