// Package loop drives ferrisfollow's fixed-rate tick.
//
// Each tick samples the newest target from the terminal, advances the actor
// toward it, renders the frame, and flushes the changed cells:
//
//	cfg := loop.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//	// Parse flags.
//	err := cfg.Load()
//
//	l, err := cfg.NewLoop(host, loop.WithLogger(logger))
//	err = l.Run(ctx)
//
// [Loop.Run] returns nil when ctx is cancelled or a quit key is read, and a
// non-nil error only for fatal input or output failures. A resize during a
// flush is absorbed and redrawn in full on the next tick.
package loop
