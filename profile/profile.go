package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiler controls the lifecycle of runtime profiling sessions.
//
// Call [Profiler.Start] to begin profiling and [Profiler.Stop] to write all
// enabled profiles.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile   *os.File
	traceFile *os.File
	stages    map[string]bool
	Config
}

// Start sets the heap sampling rate and starts CPU profiling and execution
// tracing if enabled. Call [Profiler.Stop] when done to write snapshot
// profiles.
func (c *Profiler) Start() error {
	if c.MemProfileRate > 0 {
		runtime.MemProfileRate = c.MemProfileRate
	}

	if c.CPUProfile != "" {
		f, err := os.Create(c.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("creating CPU profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return errors.Join(fmt.Errorf("starting CPU profile: %w", err), f.Close())
		}

		c.cpuFile = f
	}

	if c.Trace != "" {
		f, err := os.Create(c.Trace) //nolint:gosec // Trace path from CLI flag is expected.
		if err != nil {
			return errors.Join(fmt.Errorf("creating trace: %w", err), c.stopCPU())
		}

		err = trace.Start(f)
		if err != nil {
			return errors.Join(fmt.Errorf("starting trace: %w", err), f.Close(), c.stopCPU())
		}

		c.traceFile = f
	}

	return nil
}

// Stop stops CPU profiling and tracing, then writes all enabled snapshot
// profiles.
func (c *Profiler) Stop() error {
	return errors.Join(c.stopCPU(), c.stopTrace(), c.writeSnapshots())
}

// recording reports whether a CPU profile or trace is being written.
func (c *Profiler) recording() bool {
	return c.cpuFile != nil || c.traceFile != nil
}

func (c *Profiler) stopCPU() error {
	if c.cpuFile == nil {
		return nil
	}

	pprof.StopCPUProfile()

	err := c.cpuFile.Close()
	c.cpuFile = nil

	if err != nil {
		return fmt.Errorf("closing CPU profile: %w", err)
	}

	return nil
}

func (c *Profiler) stopTrace() error {
	if c.traceFile == nil {
		return nil
	}

	trace.Stop()

	err := c.traceFile.Close()
	c.traceFile = nil

	if err != nil {
		return fmt.Errorf("closing trace: %w", err)
	}

	return nil
}

// writeSnapshots writes all enabled snapshot profiles.
func (c *Profiler) writeSnapshots() error {
	profiles := []struct {
		name string
		path string
	}{
		{"heap", c.HeapProfile},
		{"allocs", c.AllocsProfile},
		{"goroutine", c.GoroutineProfile},
	}

	var errs []error

	for _, p := range profiles {
		if p.path == "" {
			continue
		}

		err := writeProfile(p.name, p.path)
		if err != nil {
			errs = append(errs, fmt.Errorf("write %s profile: %w", p.name, err))
		}
	}

	return errors.Join(errs...)
}

// writeProfile writes a named pprof profile to the given file path.
func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	if name == "heap" {
		// Heap profiles report live objects as of the last GC.
		runtime.GC()
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(err, f.Close())
	}

	return f.Close()
}
