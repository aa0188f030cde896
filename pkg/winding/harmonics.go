package winding

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Harmonic holds the winding factors for one space harmonic order.
type Harmonic struct {
	Order int
	Kp    float64
	Kd    float64
	Kw    float64
}

// Harmonics returns the factors for the odd orders 1, 3, ..., maxOrder.
// Order 1 reproduces the fundamental figures of Calculate.
func Harmonics(m Machine, maxOrder int) ([]Harmonic, error) {
	fig, err := Calculate(m)
	if err != nil {
		return nil, err
	}
	if maxOrder < 1 {
		return nil, fmt.Errorf("%w: harmonic order must be at least 1, got %d", ErrInvalidSpec, maxOrder)
	}

	out := make([]Harmonic, 0, (maxOrder+1)/2)
	for nu := 1; nu <= maxOrder; nu += 2 {
		n := float64(nu)
		kp := PitchFactor(n*float64(fig.K), fig.Alpha)
		kd := harmonicDistribution(fig.Q, fig.Alpha, n)
		out = append(out, Harmonic{
			Order: nu,
			Kp:    scalar.Round(kp, 12),
			Kd:    scalar.Round(kd, 12),
			Kw:    scalar.Round(kp*kd, 12),
		})
	}
	return out, nil
}

// harmonicDistribution evaluates kd for order n. Where sin(n·x) vanishes the
// quotient is replaced by its limit cos(n·q·x)/cos(n·x).
func harmonicDistribution(q, alpha, n float64) float64 {
	x := alpha * math.Pi / 360
	den := q * math.Sin(n*x)
	if scalar.EqualWithinAbs(den, 0, 1e-9) {
		return math.Cos(n*q*x) / math.Cos(n*x)
	}
	return math.Sin(n*q*x) / den
}
