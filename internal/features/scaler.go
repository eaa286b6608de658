package features

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// StdScaler divides every feature by its training standard deviation.
// No centering: the feature matrix is overwhelmingly zeros and subtracting
// means would densify it into nonsense, same reasoning as the original
// pipeline's variance-only scaling.
type StdScaler struct {
	Scale []float64
}

// Fit computes per-column standard deviations over x. Columns with zero
// variance scale by 1 so transforming them is a no-op.
func (s *StdScaler) Fit(x *mat.Dense) {
	rows, cols := x.Dims()
	s.Scale = make([]float64, cols)
	n := float64(rows)
	for j := 0; j < cols; j++ {
		var sum, sumSq float64
		for i := 0; i < rows; i++ {
			v := x.At(i, j)
			sum += v
			sumSq += v * v
		}
		mean := sum / n
		variance := sumSq/n - mean*mean
		if variance < 0 {
			variance = 0
		}
		sd := math.Sqrt(variance)
		if sd == 0 {
			sd = 1
		}
		s.Scale[j] = sd
	}
}

// Transform scales x in place.
func (s *StdScaler) Transform(x *mat.Dense) {
	rows, cols := x.Dims()
	for j := 0; j < cols && j < len(s.Scale); j++ {
		for i := 0; i < rows; i++ {
			x.Set(i, j, x.At(i, j)/s.Scale[j])
		}
	}
}
