package orbita

import (
	"math"
	"math/rand/v2"
	"sort"
)

// DistributionOptions tunes the latitude-band planner. Zero values mean
// defaults.
type DistributionOptions struct {
	// MaxBands caps the number of latitude bands (default 7).
	MaxBands int
	// MinPerBand is the capacity floor of every band (default 1).
	MinPerBand int
	// CapacityScale multiplies each band's nominal capacity (default 1).
	CapacityScale float64
	// TopUpScale is the capacity multiplier of the second pass that
	// redistributes leftovers (default 1.5).
	TopUpScale float64
	// LatSpan is the maximum band-center distance from the equator in
	// degrees (default 60).
	LatSpan float64
	// JitterDeg is the deterministic jitter amplitude in degrees
	// (default 4).
	JitterDeg float64
}

func (o DistributionOptions) withDefaults() DistributionOptions {
	if o.MaxBands == 0 {
		o.MaxBands = 7
	}
	if o.MinPerBand == 0 {
		o.MinPerBand = 1
	}
	if o.CapacityScale == 0 {
		o.CapacityScale = 1
	}
	if o.TopUpScale == 0 {
		o.TopUpScale = 1.5
	}
	if o.LatSpan == 0 {
		o.LatSpan = 60
	}
	if o.JitterDeg == 0 {
		o.JitterDeg = 4
	}
	return o
}

// Placement is one planned image position.
type Placement struct {
	Lat, Lng float64
	Band     int
}

// LatLng returns the placement as a geographic position.
func (p Placement) LatLng() LatLng { return LatLng{Lat: p.Lat, Lng: p.Lng} }

// PlanDistribution partitions n images into latitude bands and longitude
// slots so the sphere is evenly covered. Bands are filled starting from
// the equator and alternating outward; each band's capacity is
// proportional to its circumference (the cos(latitude) factor) with a
// configurable floor, and a second top-up pass under a larger capacity
// multiplier absorbs leftovers. Jitter is seeded per band, so the layout
// looks organic but is exactly reproducible for identical inputs.
func PlanDistribution(n int, opts DistributionOptions) []Placement {
	if n <= 0 {
		return nil
	}
	opts = opts.withDefaults()

	bands := int(math.Ceil(math.Sqrt(float64(n))))
	if bands > opts.MaxBands {
		bands = opts.MaxBands
	}

	// Band-center latitudes, then equator-out visiting order.
	lats := make([]float64, bands)
	for i := range lats {
		lats[i] = -opts.LatSpan + (float64(i)+0.5)*2*opts.LatSpan/float64(bands)
	}
	order := make([]int, bands)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		la, lb := math.Abs(lats[order[a]]), math.Abs(lats[order[b]])
		if la != lb {
			return la < lb
		}
		return lats[order[a]] > lats[order[b]]
	})

	var sumCos float64
	for _, lat := range lats {
		sumCos += math.Cos(degToRad(lat))
	}
	unit := float64(n) / sumCos

	capacity := func(band int, scale float64) int {
		c := int(math.Floor(unit * math.Cos(degToRad(lats[band])) * opts.CapacityScale * scale))
		if c < opts.MinPerBand {
			c = opts.MinPerBand
		}
		return c
	}

	// First pass: greedy fill up to nominal capacity, equator outward.
	counts := make([]int, bands)
	remaining := n
	for _, band := range order {
		take := capacity(band, 1)
		if take > remaining {
			take = remaining
		}
		counts[band] = take
		remaining -= take
		if remaining == 0 {
			break
		}
	}

	// Top-up pass: raise capacities and hand out leftovers one per band
	// per cycle so no single band swallows them all.
	for remaining > 0 {
		placed := false
		for _, band := range order {
			if remaining == 0 {
				break
			}
			if counts[band] < capacity(band, opts.TopUpScale) {
				counts[band]++
				remaining--
				placed = true
			}
		}
		if !placed {
			// Every band is at top-up capacity; spill onto the
			// equator-most bands regardless.
			for _, band := range order {
				if remaining == 0 {
					break
				}
				counts[band]++
				remaining--
			}
		}
	}

	placements := make([]Placement, 0, n)
	for _, band := range order {
		count := counts[band]
		if count == 0 {
			continue
		}
		// Deterministic per-band jitter: same inputs, same layout.
		rng := rand.New(rand.NewPCG(uint64(band)+1, 0x6f726269746121))
		phase := rng.Float64() * 360
		step := 360 / float64(count)
		for k := 0; k < count; k++ {
			lat := lats[band] + (rng.Float64()*2-1)*opts.JitterDeg
			lng := phase + float64(k)*step + (rng.Float64()*2-1)*opts.JitterDeg*0.5
			placements = append(placements, Placement{
				Lat:  lat,
				Lng:  normalizeLng(lng),
				Band: band,
			})
		}
	}
	return placements
}

// normalizeLng wraps a longitude into [-180, 180).
func normalizeLng(lng float64) float64 {
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}
