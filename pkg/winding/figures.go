package winding

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// degenerateTol is the magnitude below which a distribution factor divisor
// is treated as zero.
const degenerateTol = 1e-12

// Figures holds the scalar results of a winding calculation. All values are
// recomputed together; a Figures value is never partially updated.
type Figures struct {
	Q     float64 // slots per pole per phase
	Tau   float64 // full pitch in slots
	Y     float64 // coil span in slots
	Alpha float64 // electrical slot angle in degrees
	Kp    float64 // pitch factor
	Kd    float64 // distribution factor
	Kw    float64 // winding factor
	K     int     // pitch offset the figures were computed with
}

// Span returns the coil span rounded to whole slots.
func (f Figures) Span() int {
	return int(math.Round(f.Y))
}

// Calculate derives the winding figures for m. The machine is validated
// first, so a returned error is ErrInvalidSpec, ErrPitchOutOfRange or
// ErrDegenerateFormula.
func Calculate(m Machine) (Figures, error) {
	if err := m.Validate(); err != nil {
		return Figures{}, err
	}

	p := float64(m.PolePairs())
	phases := float64(m.Phases)
	z := float64(m.Slots)
	k := m.Pitch.K()

	q := z / (2 * p * phases)
	tau := z / (2 * p)
	alpha := 180 * float64(m.Poles) / z

	kp := PitchFactor(float64(k), alpha)
	kd, err := DistributionFactor(q, alpha)
	if err != nil {
		return Figures{}, err
	}

	return Figures{
		Q:     q,
		Tau:   tau,
		Y:     tau - float64(k),
		Alpha: alpha,
		Kp:    kp,
		Kd:    kd,
		Kw:    kp * kd,
		K:     k,
	}, nil
}

// PitchFactor returns kp = cos(k·α·π/360) for a pitch offset of k slots and
// a slot angle of alpha electrical degrees.
func PitchFactor(k, alpha float64) float64 {
	return math.Cos(k * alpha * math.Pi / 360)
}

// DistributionFactor returns kd = sin(q·α·π/360) / (q·sin(α·π/360)).
// A zero q or a vanishing sine is reported as ErrDegenerateFormula rather
// than returned as a non-finite value.
func DistributionFactor(q, alpha float64) (float64, error) {
	if q == 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("%w: slots per pole per phase q=%g", ErrDegenerateFormula, q)
	}
	den := q * math.Sin(alpha*math.Pi/360)
	if scalar.EqualWithinAbs(den, 0, degenerateTol) {
		return 0, fmt.Errorf("%w: sin(α/2) vanishes for α=%g°", ErrDegenerateFormula, alpha)
	}
	kd := math.Sin(q*alpha*math.Pi/360) / den
	if math.IsNaN(kd) || math.IsInf(kd, 0) {
		return 0, fmt.Errorf("%w: kd is not finite for q=%g, α=%g°", ErrDegenerateFormula, q, alpha)
	}
	return kd, nil
}
