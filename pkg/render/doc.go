// Package render draws winding designs onto abstract 2D surfaces.
//
// Two projections are provided. DrawCircular paints the stator cross
// section with the slots on two concentric rings; DrawLinear unrolls the
// stator onto a horizontal axis and draws each coil as a "U". Both consume
// an immutable Frame (machine, coils, selection, viewport) and repaint the
// whole surface on every call.
//
// Surfaces implement the Surface interface. Recorder keeps the operations
// in memory; the svgsurface, rastersurface and giosurface packages draw to
// SVG documents, PNG images and Gio windows.
//
// # Usage
//
//	rec := render.NewRecorder(560, 560)
//	render.DrawCircular(rec, render.Frame{
//		Machine:  design.Machine,
//		Coils:    design.Coils,
//		Selected: render.NoSelection,
//		Viewport: render.NewViewport(),
//	}, render.DefaultOptions())
package render
