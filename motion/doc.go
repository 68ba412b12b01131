// Package motion advances an on-screen actor toward a target cell.
//
// A [Model] is a pure function of its inputs: [Model.Advance] takes the
// current [State], an optional new target, and the elapsed tick duration, and
// returns the next [State]. Motion follows a critically damped spring
// (see [github.com/charmbracelet/harmonica]) along the straight line to the
// destination, capped at [Model.MaxSpeed] and never overshooting.
//
//	m := motion.NewModel(geom.Size{Width: 80, Height: 24})
//	s := motion.NewState(geom.Position{X: 40, Y: 12})
//
//	target := geom.Position{X: 0, Y: 0}
//	s = m.Advance(s, &target, 16*time.Millisecond)
//	for s.Pos != target {
//	    s = m.Advance(s, nil, 16*time.Millisecond)
//	}
package motion
