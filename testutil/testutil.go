package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync"

	"github.com/hupe1980/pointfield/document"
	"github.com/hupe1980/pointfield/point"
)

// Form is one of the accepted input forms of a point.
type Form int

const (
	FormObject Form = iota
	FormString
	FormWKT
	FormArray
	numForms
)

// String returns the string representation of the Form.
func (f Form) String() string {
	switch f {
	case FormObject:
		return "object"
	case FormString:
		return "string"
	case FormWKT:
		return "wkt"
	case FormArray:
		return "array"
	default:
		return fmt.Sprintf("form(%d)", int(f))
	}
}

// Forms lists every input form.
func Forms() []Form {
	return []Form{FormObject, FormString, FormWKT, FormArray}
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates points with both coordinates in [minVal, maxVal).
func (r *RNG) UniformPoints(num int, minVal, maxVal float64) []point.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	pts := make([]point.Point, num)
	for i := range pts {
		pts[i] = point.New(minVal+r.rand.Float64()*span, minVal+r.rand.Float64()*span)
	}
	return pts
}

// ClusteredPoints generates points around random centers in [-1000, 1000).
// Useful to get duplicate x values and dense key ranges.
func (r *RNG) ClusteredPoints(num, clusters int, spread float64) []point.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([]point.Point, clusters)
	for i := range centers {
		centers[i] = point.New(r.rand.Float64()*2000-1000, r.rand.Float64()*2000-1000)
	}

	pts := make([]point.Point, num)
	for i := range pts {
		c := centers[r.rand.Intn(clusters)]
		pts[i] = point.New(c.X+r.rand.NormFloat64()*spread, c.Y+r.rand.NormFloat64()*spread)
	}
	return pts
}

// MixedPoints mixes uniform points with EdgePoints.
func (r *RNG) MixedPoints(num int) []point.Point {
	edges := EdgePoints()
	pts := r.UniformPoints(num, -1e6, 1e6)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range pts {
		if r.rand.Intn(4) == 0 {
			pts[i] = edges[r.rand.Intn(len(edges))]
		}
	}
	return pts
}

// EdgePoints returns finite points whose coordinates stress the key
// encoding: signed zeros, subnormals and the extremes of float64.
func EdgePoints() []point.Point {
	coords := []float64{
		0,
		math.Copysign(0, -1),
		math.SmallestNonzeroFloat64,
		-math.SmallestNonzeroFloat64,
		math.MaxFloat64,
		-math.MaxFloat64,
		1,
		-1,
		1e-300,
		-1e300,
	}
	var pts []point.Point
	for i, x := range coords {
		pts = append(pts, point.New(x, coords[(i+3)%len(coords)]))
	}
	return pts
}

// Form returns a random input form.
func (r *RNG) Form() Form {
	return Form(r.Intn(int(numForms)))
}

// Value renders p in form f.
func Value(p point.Point, f Form) document.Value {
	x := strconv.FormatFloat(p.X, 'g', -1, 64)
	y := strconv.FormatFloat(p.Y, 'g', -1, 64)

	switch f {
	case FormObject:
		return document.Object(map[string]document.Value{
			"x": document.Number(p.X),
			"y": document.Number(p.Y),
		})
	case FormString:
		return document.String(x + "," + y)
	case FormWKT:
		return document.String("POINT (" + x + " " + y + ")")
	case FormArray:
		return document.Array(document.Number(p.X), document.Number(p.Y))
	default:
		panic(fmt.Sprintf("unknown form %d", int(f)))
	}
}

// Occurrence renders pts as one field occurrence: a single value in a
// random form when there is one point, otherwise a list of mixed forms.
func (r *RNG) Occurrence(pts []point.Point) document.Value {
	if len(pts) == 1 {
		return Value(pts[0], r.Form())
	}
	vals := make([]document.Value, len(pts))
	for i, p := range pts {
		vals[i] = Value(p, r.Form())
	}
	return document.Array(vals...)
}

// BruteForceWithin returns the indices of pts inside the closed box [lo, hi].
func BruteForceWithin(pts []point.Point, lo, hi point.Point) []int {
	var out []int
	for i, p := range pts {
		if p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y {
			out = append(out, i)
		}
	}
	return out
}
