// Package profile records runtime profiles of the follow loop.
//
// A run can write a CPU profile and an execution trace, and heap, allocs,
// and goroutine snapshots on exit. Each tick stage ([StageSample],
// [StageAdvance], [StageRender], [StageFlush]) runs through [Profiler.Do],
// which labels it in the CPU profile and wraps it in a trace region while
// recording, so flamegraphs and traces split by stage:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//	// Parse flags.
//
//	p, err := cfg.NewProfiler()
//	err = p.Start()
//	defer p.Stop()
//
//	p.Do(ctx, profile.StageRender, func(context.Context) {
//	    diff = r.Render(state)
//	})
//
// Outside a recording [Profiler.Do] calls its function directly, so the loop
// pays no labelling cost in normal runs.
package profile
