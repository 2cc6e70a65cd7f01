// Seeded pseudo-random source driving arrival generation. Identical seeds
// reproduce identical passenger streams.
package simrand

import "math/rand"

type Source struct {
	rng *rand.Rand
}

func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

func (s *Source) IntN(n int) int {
	return s.rng.Intn(n)
}

// GiveUpThreshold draws a personal abandonment timeout in [min, max).
func (s *Source) GiveUpThreshold(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// ArrivalFloor samples an origin floor. With probability edgeBias the sample
// is forced onto the ground or top floor to stress boundary handling.
func (s *Source) ArrivalFloor(numFloors int, edgeBias float64) int {
	if s.rng.Float64() < edgeBias {
		if s.rng.Intn(2) == 0 {
			return 0
		}
		return numFloors - 1
	}
	return s.rng.Intn(numFloors)
}

// Destination samples a destination floor distinct from origin. Because the
// result is never the origin, ground-floor arrivals always travel up and
// top-floor arrivals always travel down.
func (s *Source) Destination(origin, numFloors int) int {
	d := s.rng.Intn(numFloors - 1)
	if d >= origin {
		d++
	}
	return d
}
