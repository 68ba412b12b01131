package loop

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/ferrisfollow/motion"
	"go.jacobcolvin.com/ferrisfollow/render"
	"go.jacobcolvin.com/ferrisfollow/sample"
	"go.jacobcolvin.com/ferrisfollow/term"
)

var (
	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrConfigFile indicates the config file could not be read or decoded.
	ErrConfigFile = errors.New("config file")
)

// Defaults.
const (
	DefaultFPS   = 60
	DefaultTrail = 6
	maxFPS       = 1000
)

// Flags holds CLI flag names for loop configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	FPS        string
	MaxSpeed   string
	Frequency  string
	Trail      string
	Backend    string
	GlyphIdle  string
	GlyphLeft  string
	GlyphRight string
	GlyphUp    string
	GlyphDown  string
	GlyphTrail string
	Stride     string
	HUD        string
	File       string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds the follow loop settings.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Call [Config.Load] to merge the YAML file named by
// File, then [Config.NewLoop].
type Config struct {
	flags      *pflag.FlagSet
	Backend    string
	GlyphIdle  string
	GlyphLeft  string
	GlyphRight string
	GlyphUp    string
	GlyphDown  string
	GlyphTrail string
	File       string
	Flags      Flags
	MaxSpeed   float64
	Frequency  float64
	FPS        int
	Trail      int
	Stride     int
	HUD        bool
}

// NewConfig returns a new [Config] with default flag names and zero values.
// Use [Config.RegisterFlags] to add CLI flags and defaults.
func NewConfig() *Config {
	f := Flags{
		FPS:        "fps",
		MaxSpeed:   "max-speed",
		Frequency:  "frequency",
		Trail:      "trail",
		Backend:    "backend",
		GlyphIdle:  "glyph-idle",
		GlyphLeft:  "glyph-left",
		GlyphRight: "glyph-right",
		GlyphUp:    "glyph-up",
		GlyphDown:  "glyph-down",
		GlyphTrail: "glyph-trail",
		Stride:     "stride",
		HUD:        "hud",
		File:       "config",
	}

	return f.NewConfig()
}

// RegisterFlags adds loop flags to the given [*pflag.FlagSet]. Flags set on
// the command line take precedence over the config file.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	c.flags = flags

	def := render.DefaultGlyphs()

	flags.IntVar(&c.FPS, c.Flags.FPS, DefaultFPS, "frames per second")
	flags.Float64Var(&c.MaxSpeed, c.Flags.MaxSpeed, motion.DefaultMaxSpeed,
		"maximum speed in cells per second")
	flags.Float64Var(&c.Frequency, c.Flags.Frequency, motion.DefaultFrequency,
		"spring angular frequency in radians per second")
	flags.IntVar(&c.Trail, c.Flags.Trail, DefaultTrail, "number of trail positions drawn")
	flags.StringVar(&c.Backend, c.Flags.Backend, string(term.BackendTcell),
		fmt.Sprintf("terminal backend, one of: %s", term.Backends()))
	flags.StringVar(&c.GlyphIdle, c.Flags.GlyphIdle, string(def.Idle), "glyph while idle")
	flags.StringVar(&c.GlyphLeft, c.Flags.GlyphLeft, string(def.Left), "glyph while moving left")
	flags.StringVar(&c.GlyphRight, c.Flags.GlyphRight, string(def.Right), "glyph while moving right")
	flags.StringVar(&c.GlyphUp, c.Flags.GlyphUp, string(def.Up), "glyph while moving up")
	flags.StringVar(&c.GlyphDown, c.Flags.GlyphDown, string(def.Down), "glyph while moving down")
	flags.StringVar(&c.GlyphTrail, c.Flags.GlyphTrail, string(def.Trail), "trail glyph")
	flags.IntVar(&c.Stride, c.Flags.Stride, sample.DefaultStride,
		"cells moved by H, J, K, and L")
	flags.BoolVar(&c.HUD, c.Flags.HUD, false, "show a status line on the bottom row")
	flags.StringVarP(&c.File, c.Flags.File, "c", "", "YAML config file")
}

// RegisterCompletions registers shell completions for loop flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Backend,
		cobra.FixedCompletions(term.Backends(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Backend, err)
	}

	err = cmd.MarkFlagFilename(c.Flags.File, "yaml", "yml")
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.File, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.FPS, c.Flags.MaxSpeed, c.Flags.Frequency, c.Flags.Trail, c.Flags.Stride,
		c.Flags.GlyphIdle, c.Flags.GlyphLeft, c.Flags.GlyphRight, c.Flags.GlyphUp,
		c.Flags.GlyphDown, c.Flags.GlyphTrail,
	} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// Load reads the config file named by File, if any, and applies every value
// it sets whose flag was not given on the command line.
func (c *Config) Load() error {
	if c.File == "" {
		return nil
	}

	f, err := LoadFile(c.File)
	if err != nil {
		return err
	}

	c.Apply(f)

	return nil
}

// Apply copies the values set in f into c, skipping flags that were set on
// the command line.
func (c *Config) Apply(f *File) {
	set(&c.FPS, f.FPS, c.changed(c.Flags.FPS))
	set(&c.MaxSpeed, f.MaxSpeed, c.changed(c.Flags.MaxSpeed))
	set(&c.Frequency, f.Frequency, c.changed(c.Flags.Frequency))
	set(&c.Trail, f.Trail, c.changed(c.Flags.Trail))
	set(&c.Backend, f.Backend, c.changed(c.Flags.Backend))
	set(&c.Stride, f.Stride, c.changed(c.Flags.Stride))

	set(&c.HUD, f.HUD, c.changed(c.Flags.HUD))

	if g := f.Glyphs; g != nil {
		set(&c.GlyphIdle, g.Idle, c.changed(c.Flags.GlyphIdle))
		set(&c.GlyphLeft, g.Left, c.changed(c.Flags.GlyphLeft))
		set(&c.GlyphRight, g.Right, c.changed(c.Flags.GlyphRight))
		set(&c.GlyphUp, g.Up, c.changed(c.Flags.GlyphUp))
		set(&c.GlyphDown, g.Down, c.changed(c.Flags.GlyphDown))
		set(&c.GlyphTrail, g.Trail, c.changed(c.Flags.GlyphTrail))
	}
}

// Validate checks every value is in range.
func (c *Config) Validate() error {
	var errs []error

	if c.FPS < 1 || c.FPS > maxFPS {
		errs = append(errs, fmt.Errorf("%s must be between 1 and %d, got %d", c.Flags.FPS, maxFPS, c.FPS))
	}

	if c.MaxSpeed < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %g", c.Flags.MaxSpeed, c.MaxSpeed))
	}

	if c.Frequency < motion.MinFrequency {
		errs = append(errs, fmt.Errorf("%s must be at least %g, got %g",
			c.Flags.Frequency, motion.MinFrequency, c.Frequency))
	}

	if c.Trail < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", c.Flags.Trail, c.Trail))
	}

	if c.Stride < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", c.Flags.Stride, c.Stride))
	}

	_, err := term.ParseBackend(c.Backend)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", c.Flags.Backend, err))
	}

	_, err = c.Glyphs()
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// Tick returns the duration of one frame.
func (c *Config) Tick() time.Duration {
	return time.Second / time.Duration(max(c.FPS, 1))
}

// Glyphs returns the configured glyphs. Empty values fall back to the
// defaults; other values must be a single rune.
func (c *Config) Glyphs() (render.Glyphs, error) {
	g := render.DefaultGlyphs()

	for _, field := range []struct {
		dst  *rune
		flag string
		val  string
	}{
		{&g.Idle, c.Flags.GlyphIdle, c.GlyphIdle},
		{&g.Left, c.Flags.GlyphLeft, c.GlyphLeft},
		{&g.Right, c.Flags.GlyphRight, c.GlyphRight},
		{&g.Up, c.Flags.GlyphUp, c.GlyphUp},
		{&g.Down, c.Flags.GlyphDown, c.GlyphDown},
		{&g.Trail, c.Flags.GlyphTrail, c.GlyphTrail},
	} {
		if field.val == "" {
			continue
		}

		if utf8.RuneCountInString(field.val) != 1 {
			return render.Glyphs{}, fmt.Errorf("%s must be a single character, got %q", field.flag, field.val)
		}

		*field.dst, _ = utf8.DecodeRuneInString(field.val)
	}

	return g, nil
}

func (c *Config) changed(name string) bool {
	return c.flags != nil && c.flags.Changed(name)
}

// File is the layout of the YAML config file. Unset fields keep their
// command-line values.
type File struct {
	FPS       *int        `json:"fps,omitempty"       jsonschema:"frames per second (1-1000)"                 yaml:"fps,omitempty"`
	MaxSpeed  *float64    `json:"max-speed,omitempty" jsonschema:"maximum speed in cells per second"          yaml:"max-speed,omitempty"`
	Frequency *float64    `json:"frequency,omitempty" jsonschema:"spring angular frequency in radians per second (at least 40)" yaml:"frequency,omitempty"`
	Trail     *int        `json:"trail,omitempty"     jsonschema:"number of trail positions drawn"            yaml:"trail,omitempty"`
	Backend   *string     `json:"backend,omitempty"   jsonschema:"terminal backend: tcell or ansi"            yaml:"backend,omitempty"`
	Glyphs    *FileGlyphs `json:"glyphs,omitempty"    jsonschema:"glyphs drawn for each phase"                yaml:"glyphs,omitempty"`
	Stride    *int        `json:"stride,omitempty"    jsonschema:"cells moved by H, J, K, and L"              yaml:"stride,omitempty"`
	HUD       *bool       `json:"hud,omitempty"       jsonschema:"show a status line on the bottom row"       yaml:"hud,omitempty"`
}

// FileGlyphs holds single-character glyphs in a [File].
type FileGlyphs struct {
	Idle  *string `json:"idle,omitempty"  jsonschema:"glyph while idle"          yaml:"idle,omitempty"`
	Left  *string `json:"left,omitempty"  jsonschema:"glyph while moving left"   yaml:"left,omitempty"`
	Right *string `json:"right,omitempty" jsonschema:"glyph while moving right"  yaml:"right,omitempty"`
	Up    *string `json:"up,omitempty"    jsonschema:"glyph while moving up"     yaml:"up,omitempty"`
	Down  *string `json:"down,omitempty"  jsonschema:"glyph while moving down"   yaml:"down,omitempty"`
	Trail *string `json:"trail,omitempty" jsonschema:"trail glyph"               yaml:"trail,omitempty"`
}

// LoadFile reads and strictly decodes the YAML config file at path. Unknown
// keys are errors.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	return ParseFile(data)
}

// ParseFile strictly decodes YAML config file contents.
func ParseFile(data []byte) (*File, error) {
	var f File

	err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	return &f, nil
}

func set[T any](dst, src *T, changed bool) {
	if src != nil && !changed {
		*dst = *src
	}
}
