package dataset

import (
	"math/rand/v2"
)

const (
	PointsPerCategory = 20

	BaseMin    = 5.0
	BaseMax    = 15.0
	XSlope     = 0.2
	OffsetStep = 3.0
)

// DefaultCategories is the label set written by the generator.
var DefaultCategories = []string{"A", "B", "C"}

// Row is one record of the data table.
type Row struct {
	Category string  `json:"category"`
	X        int     `json:"x_value"`
	Y        float64 `json:"y_value"`
}

// Offset returns the per-category shift of y: the ordinal distance of the
// label's first letter from 'A', times OffsetStep.
func Offset(category string) float64 {
	if category == "" {
		return 0
	}
	return float64(int(category[0])-'A') * OffsetStep
}

// Bounds returns the closed interval every y for category must fall in when
// x stays within 1..points.
func Bounds(category string, points int) (float64, float64) {
	off := Offset(category)
	return BaseMin + off, BaseMax + off + XSlope*float64(points)
}

// Y computes the value for x given a base draw from [BaseMin, BaseMax).
func Y(category string, x int, base float64) float64 {
	return base + Offset(category) + XSlope*float64(x)
}

// NewSource returns a deterministic source when seeded is true and a randomly
// seeded one otherwise.
func NewSource(seed int64, seeded bool) rand.Source {
	if seeded {
		return rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	}
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// Synthesize builds points rows per category, category-major, x ascending.
// A nil src draws from an unseeded source.
func Synthesize(src rand.Source, categories []string, points int) []Row {
	if src == nil {
		src = NewSource(0, false)
	}
	r := rand.New(src)
	rows := make([]Row, 0, len(categories)*points)
	for _, cat := range categories {
		for x := 1; x <= points; x++ {
			base := BaseMin + r.Float64()*(BaseMax-BaseMin)
			rows = append(rows, Row{Category: cat, X: x, Y: Y(cat, x, base)})
		}
	}
	return rows
}
