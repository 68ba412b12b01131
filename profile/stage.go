package profile

import (
	"context"
	"runtime/pprof"
	"runtime/trace"
)

// Tick stages.
const (
	StageSample  = "sample"
	StageAdvance = "advance"
	StageRender  = "render"
	StageFlush   = "flush"
)

// Stages returns every tick stage in the order the loop runs them.
func Stages() []string {
	return []string{StageSample, StageAdvance, StageRender, StageFlush}
}

// Do runs fn as one tick stage. While a CPU profile or trace is recording
// and stage is selected, fn runs under a "stage" pprof label and inside a
// trace region of the same name. Otherwise, and on a nil Profiler, fn is
// called directly.
func (c *Profiler) Do(ctx context.Context, stage string, fn func(context.Context)) {
	if c == nil || !c.recording() || !c.stages[stage] {
		fn(ctx)

		return
	}

	pprof.Do(ctx, pprof.Labels("stage", stage), func(ctx context.Context) {
		defer trace.StartRegion(ctx, stage).End()

		fn(ctx)
	})
}
