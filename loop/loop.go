package loop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"go.jacobcolvin.com/ferrisfollow/geom"
	"go.jacobcolvin.com/ferrisfollow/log"
	"go.jacobcolvin.com/ferrisfollow/motion"
	"go.jacobcolvin.com/ferrisfollow/profile"
	"go.jacobcolvin.com/ferrisfollow/render"
	"go.jacobcolvin.com/ferrisfollow/sample"
	"go.jacobcolvin.com/ferrisfollow/term"
)

// Loop owns the actor state, the renderer, and the sampler, and advances
// them once per tick.
//
// Create instances with [Config.NewLoop].
type Loop struct {
	host     term.Host
	sampler  *sample.Sampler
	renderer *render.Renderer
	logger   *slog.Logger
	status   *log.Subscription
	profiler *profile.Profiler
	message  string
	model    motion.Model
	state    motion.State
	tick     time.Duration
	ticks    uint64
	hud      bool
}

// Option configures a [Loop].
type Option func(*Loop)

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithStatus shows the newest entry from sub on the status line.
func WithStatus(sub *log.Subscription) Option {
	return func(l *Loop) {
		l.status = sub
	}
}

// WithProfiler labels each tick stage in profiles recorded by p.
func WithProfiler(p *profile.Profiler) Option {
	return func(l *Loop) {
		l.profiler = p
	}
}

// NewLoop validates c and creates a [Loop] drawing on host. The actor starts
// at the center of the drawable area.
func (c *Config) NewLoop(host term.Host, opts ...Option) (*Loop, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}

	glyphs, err := c.Glyphs()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	r := render.NewRenderer(host.Size(),
		render.WithGlyphs(glyphs),
		render.WithTrail(c.Trail),
		render.WithStatusLine(c.HUD),
	)

	bounds := r.Bounds()
	start := bounds.Center()

	sampleOpts := []sample.Option{
		sample.WithOrigin(start),
		sample.WithBounds(bounds),
		sample.WithStride(c.Stride),
	}
	if c.HUD {
		sampleOpts = append(sampleOpts, sample.WithReservedRows(1))
	}

	l := &Loop{
		host:     host,
		renderer: r,
		logger:   slog.New(slog.DiscardHandler),
		model: motion.NewModel(bounds,
			motion.WithMaxSpeed(c.MaxSpeed),
			motion.WithFrequency(c.Frequency),
		),
		state:   motion.NewState(start),
		sampler: sample.New(host, sampleOpts...),
		tick:    c.Tick(),
		hud:     c.HUD,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Run ticks until ctx is cancelled, a quit key is read, or a fatal error
// occurs. Waiting between ticks uses a [time.Ticker].
func (l *Loop) Run(ctx context.Context) error {
	l.logger.InfoContext(ctx, "follow loop started",
		slog.Duration("tick", l.tick),
		slog.String("size", l.renderer.Size().String()),
	)

	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	for {
		start := time.Now()

		done, err := l.Tick(ctx, l.tick)
		if err != nil {
			l.logger.ErrorContext(ctx, "follow loop failed", slog.Any("err", err))

			return err
		}

		if done {
			l.logger.InfoContext(ctx, "quit requested", slog.Uint64("ticks", l.ticks))

			return nil
		}

		if elapsed := time.Since(start); elapsed > l.tick {
			l.logger.DebugContext(ctx, "tick overrun",
				slog.Duration("elapsed", elapsed),
				slog.Uint64("tick", l.ticks),
			)
		}

		select {
		case <-ctx.Done():
			l.logger.InfoContext(ctx, "follow loop stopped", slog.Uint64("ticks", l.ticks))

			return nil

		case <-ticker.C:
		}
	}
}

// Tick runs one sample, advance, render, and flush cycle with elapsed time
// dt. It reports done when a quit key was read. Errors are fatal.
func (l *Loop) Tick(ctx context.Context, dt time.Duration) (bool, error) {
	l.ticks++

	var (
		ev  sample.Event
		ok  bool
		err error
	)

	l.profiler.Do(ctx, profile.StageSample, func(context.Context) {
		ev, ok, err = l.sampler.Sample()
	})

	if err != nil {
		return false, err
	}

	if l.sampler.QuitRequested() {
		return true, nil
	}

	if size, resized := l.sampler.Resized(); resized {
		l.resize(ctx, size)
	}

	var target *geom.Position
	if ok {
		target = &ev.Pos
	}

	l.profiler.Do(ctx, profile.StageAdvance, func(context.Context) {
		l.state = l.model.Advance(l.state, target, dt)
	})

	if l.hud {
		l.renderer.SetStatus(l.statusLine())
	}

	var diff render.DiffSet

	l.profiler.Do(ctx, profile.StageRender, func(context.Context) {
		diff = l.renderer.Render(l.state)
	})

	l.profiler.Do(ctx, profile.StageFlush, func(context.Context) {
		err = l.renderer.Flush(diff, l.host)
	})

	switch {
	case errors.Is(err, render.ErrResized):
		l.logger.DebugContext(ctx, "discarded frame", slog.Any("err", err))
		l.rebound()

	case err != nil:
		return false, fmt.Errorf("%w: %w", term.ErrDetached, err)
	}

	return false, nil
}

// State returns the current actor state.
func (l *Loop) State() motion.State {
	return l.state
}

// Frame returns the text of the last rendered frame.
func (l *Loop) Frame() string {
	return l.renderer.Frame()
}

func (l *Loop) resize(ctx context.Context, size geom.Size) {
	l.renderer.Resize(size)
	l.rebound()

	l.logger.InfoContext(ctx, "terminal resized", slog.String("size", size.String()))
}

// rebound moves the actor and the keyboard target inside the renderer's
// current bounds.
func (l *Loop) rebound() {
	bounds := l.renderer.Bounds()

	l.model, l.state = l.model.Resize(l.state, bounds)
	l.sampler.SetBounds(bounds)
}

// statusLine formats the actor state and the newest log message.
func (l *Loop) statusLine() string {
	if l.status != nil {
		if entry, ok := l.status.Latest(); ok {
			l.message = logMessage(entry)
		}
	}

	s := fmt.Sprintf("%s -> %s %s", l.state.Pos, l.state.Dest, l.state.Phase)
	if l.message != "" {
		s += " | " + l.message
	}

	return s
}

// logMessage reduces a log entry to one plain line. JSON entries show their
// level and message.
func logMessage(entry []byte) string {
	var rec struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}

	if json.Unmarshal(entry, &rec) == nil && rec.Msg != "" {
		return strings.TrimSpace(rec.Level + " " + rec.Msg)
	}

	line := ansi.Strip(string(entry))
	line = strings.Join(strings.Fields(line), " ")

	return line
}
