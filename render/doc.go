// Package render paints actor state into a double-buffered cell grid and
// produces the minimal set of changed cells for each frame.
//
// A [Renderer] owns two [Buffer] values. [Renderer.Render] draws the current
// frame, diffs it against the previous one and swaps them; [Renderer.Flush]
// writes the resulting [DiffSet] to a [Surface]. When the surface size no
// longer matches, the diff is discarded, [ErrResized] is returned, and the
// next frame is a full redraw.
//
//	r := render.NewRenderer(size, render.WithTrail(6))
//	diff := r.Render(state)
//	err := r.Flush(diff, host)
//	if errors.Is(err, render.ErrResized) {
//	    // Redrawn in full on the next tick.
//	}
package render
