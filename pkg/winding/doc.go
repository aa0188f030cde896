// Package winding computes integral-slot stator windings.
//
// Given a Machine (phases, slots Z, poles, layer type, pitch policy and
// connection) it derives the scalar winding figures and the ordered coil
// list that the renderers draw.
//
// # Figures
//
// With p = poles/2 and m = phases:
//
//	q  = Z / (2·p·m)                      slots per pole per phase
//	τ  = Z / (2·p)                        full pitch in slots
//	y  = τ - k                            coil span for pitch offset k
//	α  = 180·poles / Z                    slot angle, electrical degrees
//	kp = cos(k·α·π/360)                   pitch factor
//	kd = sin(q·α·π/360) / (q·sin(α·π/360)) distribution factor
//	kw = kp·kd                            winding factor
//
// # Phase belts
//
// Slots are labelled from the six-belt cycle A+, B-, C+, A-, B+, C-. The
// canonical AngleBands assigner places each slot by its electrical angle;
// PoleGroups keeps the older group-index rule for comparison.
//
// # Usage
//
//	d, err := winding.NewDesign(winding.Machine{
//		Phases: 3, Slots: 24, Poles: 4,
//		Layer: winding.DoubleLayer,
//		Pitch: winding.Pitch{Kind: winding.FullPitch},
//	})
//	if err != nil {
//		return err
//	}
//	fmt.Println(d.Figures.Format().Kw) // 0.9659
//
// All failures wrap ErrInvalidSpec, ErrPitchOutOfRange or
// ErrDegenerateFormula and leave no partial result behind.
package winding
