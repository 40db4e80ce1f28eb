// Package radial solves one-dimensional radial diffusion inside a sphere.
//
// The concentration C(r, t) obeys Fick's second law with spherical symmetry:
//
//	∂C/∂t = D · (∂²C/∂r² + (2/r) · ∂C/∂r)
//
// and is advanced with an explicit forward-time centered-space (FTCS) scheme
// on a uniform grid of n+1 nodes over [0, R]:
//
//   - [Grid]: radial node coordinates, fixed for the whole run
//   - [Field]: concentration at every node
//   - [Snapshots]: copies of the field captured at whole simulated hours
//   - [Solver]: owns the two alternating field buffers and the checkpoints
//
// After every interior update the center node copies its neighbor's new value
// (symmetry) and the surface node is pinned to zero (a fully dry skin).
//
// # Example
//
//	p := radial.DefaultParams()
//	s, err := radial.New(p)
//	if err != nil {
//	    return err
//	}
//	res, _ := s.Run(ctx)
//	fmt.Println(res.Snapshots.Hours())
//
// # Stability
//
// The scheme is only conditionally stable. [StabilityNumber] reports
// D·dt/dr²; above [StabilityLimit] the field oscillates and diverges. The
// solver never checks this while stepping; callers decide whether to warn or
// refuse via [CheckStability].
package radial
