// Package log provides structured logging handler construction for use with
// [log/slog].
//
// It supports multiple output formats ([FormatJSON], [FormatLogfmt], and
// [FormatText], rendered by charm.land/log) and severity levels
// ([LevelError], [LevelWarn], [LevelInfo], and [LevelDebug]). Use
// [NewHandler] to create a handler directly, or use [Config] with CLI flag
// integration via [github.com/spf13/pflag] and shell completion support via
// [github.com/spf13/cobra].
//
// Typical usage creates a [Config], registers flags, then builds a handler
// at startup:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	w, err := cfg.OpenFile()
//	handler, err := cfg.NewHandler(w)
//	slog.SetDefault(slog.New(handler))
//
// While the renderer owns the terminal, logs cannot go to stderr. A
// [Publisher] keeps the newest entry for subscribers such as the status line,
// which polls it once per tick:
//
//	pub := log.NewPublisher()
//	handler := log.NewHandler(io.MultiWriter(logFile, pub), log.LevelInfo, log.FormatJSON)
//	logger := slog.New(handler)
//
//	sub := pub.Subscribe()
//	if entry, ok := sub.Latest(); ok {
//	    // Show entry.
//	}
package log
