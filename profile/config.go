package profile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrUnknownStage indicates a stage name that the tick loop does not run.
var ErrUnknownStage = errors.New("unknown tick stage")

// Flags holds CLI flag names for profiling, allowing callers to rename flags
// while keeping defaults via [NewConfig].
type Flags struct {
	CPUProfile       string
	Trace            string
	HeapProfile      string
	AllocsProfile    string
	GoroutineProfile string
	MemProfileRate   string
	Stages           string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config selects which profiles a run records and which tick stages are
// labelled in them. A zero Config records nothing.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewProfiler] to create the [Profiler].
type Config struct {
	// CPUProfile and Trace are recorded for the whole run; tick stages are
	// labelled in both.
	CPUProfile string
	Trace      string

	// Snapshots written when the run ends.
	HeapProfile      string
	AllocsProfile    string
	GoroutineProfile string

	// Stages lists the tick stages to label. Empty labels none.
	Stages []string

	Flags Flags

	// MemProfileRate is bytes allocated per heap sample. Zero keeps the
	// runtime default.
	MemProfileRate int
}

// NewConfig creates a new [Config] with default flag names and profiling
// disabled.
func NewConfig() *Config {
	f := Flags{
		CPUProfile:       "cpu-profile",
		Trace:            "trace",
		HeapProfile:      "heap-profile",
		AllocsProfile:    "allocs-profile",
		GoroutineProfile: "goroutine-profile",
		MemProfileRate:   "mem-profile-rate",
		Stages:           "profile-stages",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write a stage-labelled CPU profile to file")
	flags.StringVar(&c.Trace, c.Flags.Trace, "", "write an execution trace with a region per tick stage to file")
	flags.StringVar(&c.HeapProfile, c.Flags.HeapProfile, "", "write a heap profile to file on exit")
	flags.StringVar(&c.AllocsProfile, c.Flags.AllocsProfile, "", "write an allocs profile to file on exit")
	flags.StringVar(&c.GoroutineProfile, c.Flags.GoroutineProfile, "", "write a goroutine profile to file on exit")
	flags.IntVar(&c.MemProfileRate, c.Flags.MemProfileRate, 0,
		"bytes allocated per heap sample (0 keeps the runtime default)")
	flags.StringSliceVar(&c.Stages, c.Flags.Stages, Stages(),
		fmt.Sprintf("tick stages to label, any of: %s", Stages()))
}

// RegisterCompletions registers shell completions for profile flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Stages,
		cobra.FixedCompletions(Stages(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Stages, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.MemProfileRate,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.MemProfileRate, err)
	}

	for flag, exts := range map[string][]string{
		c.Flags.CPUProfile:       {"prof", "pprof"},
		c.Flags.HeapProfile:      {"prof", "pprof"},
		c.Flags.AllocsProfile:    {"prof", "pprof"},
		c.Flags.GoroutineProfile: {"prof", "pprof"},
		c.Flags.Trace:            {"trace", "out"},
	} {
		err = cmd.MarkFlagFilename(flag, exts...)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// Validate checks that every selected stage exists.
func (c *Config) Validate() error {
	for _, s := range c.Stages {
		if !slices.Contains(Stages(), s) {
			return fmt.Errorf("%s: %w: %q", c.Flags.Stages, ErrUnknownStage, s)
		}
	}

	return nil
}

// NewProfiler validates c and creates a [Profiler] from it.
func (c *Config) NewProfiler() (*Profiler, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}

	stages := make(map[string]bool, len(c.Stages))
	for _, s := range c.Stages {
		stages[s] = true
	}

	return &Profiler{
		Config: *c,
		stages: stages,
	}, nil
}
