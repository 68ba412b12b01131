package render

import (
	"errors"
	"fmt"

	"go.jacobcolvin.com/ferrisfollow/geom"
	"go.jacobcolvin.com/ferrisfollow/motion"
)

var (
	// ErrResized indicates the surface changed size during a flush. The diff
	// was discarded and the next frame is a full redraw.
	ErrResized = errors.New("surface resized")
	// ErrFlush indicates the surface failed to present a frame.
	ErrFlush = errors.New("flush frame")
)

// Surface is a terminal that accepts cell writes.
type Surface interface {
	// Size returns the current terminal size.
	Size() geom.Size
	// SetCell stages c at p. Cells with Cont set may be ignored.
	SetCell(p geom.Position, c Cell)
	// Show presents every staged cell.
	Show() error
}

// Renderer draws actor state into a pair of buffers and diffs them.
//
// Create instances with [NewRenderer].
type Renderer struct {
	prev    *Buffer
	cur     *Buffer
	changes []Change
	trail   []geom.Position
	status  string
	glyphs  Glyphs
	size    geom.Size
	maxTail int
	hud     bool
	full    bool
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithGlyphs sets the runes drawn for the actor and trail.
func WithGlyphs(g Glyphs) Option {
	return func(r *Renderer) {
		r.glyphs = g
	}
}

// WithTrail sets how many previous positions are drawn behind the actor.
// Values less than 0 are clamped to 0.
func WithTrail(n int) Option {
	return func(r *Renderer) {
		r.maxTail = max(n, 0)
	}
}

// WithStatusLine reserves the bottom row for the text set by
// [Renderer.SetStatus].
func WithStatusLine(enabled bool) Option {
	return func(r *Renderer) {
		r.hud = enabled
	}
}

// NewRenderer creates a [Renderer] for a surface of the given size. The first
// frame is always a full redraw.
func NewRenderer(size geom.Size, opts ...Option) *Renderer {
	r := &Renderer{
		glyphs: DefaultGlyphs(),
		prev:   NewBuffer(size),
		cur:    NewBuffer(size),
		size:   size,
		full:   true,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Size returns the size of the buffers.
func (r *Renderer) Size() geom.Size {
	return r.size
}

// Bounds returns the area the actor may occupy: the whole surface, minus
// the bottom row when the status line is enabled.
func (r *Renderer) Bounds() geom.Size {
	if r.hud && r.size.Height > 1 {
		return geom.Size{Width: r.size.Width, Height: r.size.Height - 1}
	}

	return r.size
}

// Resize reallocates both buffers and forces a full redraw on the next
// [Renderer.Render]. Trail positions outside the new size are dropped.
func (r *Renderer) Resize(size geom.Size) {
	r.size = size
	r.prev.Resize(size)
	r.cur.Resize(size)
	r.full = true

	bounds := r.Bounds()
	kept := r.trail[:0]

	for _, p := range r.trail {
		if bounds.Contains(p) {
			kept = append(kept, p)
		}
	}

	r.trail = kept
}

// Invalidate forces the next frame to be a full redraw without resizing.
func (r *Renderer) Invalidate() {
	r.full = true
}

// SetStatus sets the status line text. It is drawn only when the status line
// is enabled.
func (r *Renderer) SetStatus(text string) {
	r.status = text
}

// Render draws s into the current buffer, returns the cells that differ from
// the previously rendered frame, and swaps the buffers.
//
// The returned diff shares storage with the renderer and is valid until the
// next call to Render.
func (r *Renderer) Render(s motion.State) DiffSet {
	r.cur.Clear()
	r.pushTrail(s.Pos)

	if r.hud && r.size.Height > 1 {
		r.cur.SetString(geom.Position{X: 0, Y: r.size.Height - 1}, r.status,
			Style{Fg: ColorStatus, Attrs: AttrDim})
	}

	r.drawTrail()
	r.drawActor(s)

	d := DiffSet{
		Size: r.size,
		Full: r.full,
	}

	r.changes = diff(r.changes[:0], r.prev, r.cur, r.full)
	d.Changes = r.changes

	r.prev, r.cur = r.cur, r.prev
	r.full = false

	return d
}

// Flush writes d to out. If the surface size no longer matches the size d
// was rendered for, before or during the write, the diff is discarded, the
// buffers are resized to the surface, and [ErrResized] is returned.
func (r *Renderer) Flush(d DiffSet, out Surface) error {
	size := out.Size()
	if size != d.Size {
		r.Resize(size)

		return fmt.Errorf("%w: %s to %s", ErrResized, d.Size, size)
	}

	for _, c := range d.Changes {
		if !size.Contains(c.Pos) {
			continue
		}

		out.SetCell(c.Pos, c.Cell)
	}

	if now := out.Size(); now != size {
		r.Resize(now)

		return fmt.Errorf("%w: %s to %s", ErrResized, size, now)
	}

	err := out.Show()
	if err != nil {
		// The surface may hold a partial frame.
		r.full = true

		return fmt.Errorf("%w: %w", ErrFlush, err)
	}

	return nil
}

// Frame returns the text of the last rendered frame.
func (r *Renderer) Frame() string {
	return r.prev.String()
}

// pushTrail records p as the newest trail position if the actor moved.
func (r *Renderer) pushTrail(p geom.Position) {
	if r.maxTail == 0 {
		return
	}

	if len(r.trail) > 0 && r.trail[0] == p {
		return
	}

	// The newest entry is the actor itself; keep maxTail positions behind it.
	if len(r.trail) < r.maxTail+1 {
		r.trail = append(r.trail, geom.Position{})
	}

	copy(r.trail[1:], r.trail)
	r.trail[0] = p
}

// drawTrail paints trail positions behind the actor, oldest faintest.
func (r *Renderer) drawTrail() {
	if len(r.trail) < 2 {
		return
	}

	glyph := r.glyphs.Trail
	if glyph == 0 {
		glyph = DefaultGlyphs().Trail
	}

	// Oldest first so newer positions win overlapping cells.
	for i := len(r.trail) - 1; i >= 1; i-- {
		fade := float64(i) / float64(r.maxTail+1)
		r.cur.SetRune(r.trail[i], glyph, Style{Fg: ColorFerris.Blend(ColorTrailEnd, fade)})
	}
}

func (r *Renderer) drawActor(s motion.State) {
	style := Style{Fg: ColorFerris}
	if s.Phase != motion.Idle {
		style.Attrs = AttrBold
	}

	r.cur.SetRune(r.Bounds().Clamp(s.Pos), r.glyphs.For(s.Phase), style)
}
