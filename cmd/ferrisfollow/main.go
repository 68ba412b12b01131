// Command ferrisfollow draws a crab that follows the pointer around the
// terminal.
//
// Pointer motion is read from the terminal's mouse reporting. Where that is
// unavailable, arrow keys and h, j, k, l nudge the target one cell and
// H, J, K, L nudge it by --stride cells. Press q, Esc, or Ctrl+C to quit.
//
// # Usage
//
//	ferrisfollow [flags]
//	ferrisfollow schema
//	ferrisfollow version
//
// Settings may also come from a YAML file given with --config. Flags set on
// the command line override the file. Run "ferrisfollow schema" for the file
// layout.
//
// While running, the terminal belongs to the crab, so logs go to --log-file
// and, with --hud, to the bottom status line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/ferrisfollow/log"
	"go.jacobcolvin.com/ferrisfollow/loop"
	"go.jacobcolvin.com/ferrisfollow/profile"
	fterm "go.jacobcolvin.com/ferrisfollow/term"
	"go.jacobcolvin.com/ferrisfollow/version"
)

// openHost opens the controlling terminal. Tests replace it.
var openHost = func(b fterm.Backend) (fterm.Host, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, fmt.Errorf("%w: stdin and stdout must be a terminal", fterm.ErrInit)
	}

	return fterm.Open(b)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command with args and returns the exit code. The terminal
// is restored before any error is printed.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

type configs struct {
	loop    *loop.Config
	log     *log.Config
	profile *profile.Config
}

func newRootCmd() *cobra.Command {
	cfgs := configs{
		loop:    loop.NewConfig(),
		log:     log.NewConfig(),
		profile: profile.NewConfig(),
	}

	rootCmd := &cobra.Command{
		Use:   "ferrisfollow [flags]",
		Short: "A crab that follows the pointer around the terminal",
		Long: `ferrisfollow draws a crab that follows the pointer around the terminal
with eased, speed-limited motion. Arrow keys and h, j, k, l move the target
when mouse motion is not reported. Press q, Esc, or Ctrl+C to quit.`,
		Args:          cobra.NoArgs,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return follow(cmd.Context(), cfgs)
		},
	}

	cfgs.loop.RegisterFlags(rootCmd.Flags())
	cfgs.log.RegisterFlags(rootCmd.Flags())
	cfgs.profile.RegisterFlags(rootCmd.Flags())

	for _, register := range []func(*cobra.Command) error{
		cfgs.loop.RegisterCompletions,
		cfgs.log.RegisterCompletions,
		cfgs.profile.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(newSchemaCmd(), newVersionCmd())

	return rootCmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := loop.Schema()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// follow runs the follow loop until it is cancelled by a signal or quit.
func follow(ctx context.Context, cfgs configs) (err error) {
	err = cfgs.loop.Load()
	if err != nil {
		return err
	}

	err = cfgs.loop.Validate()
	if err != nil {
		return err
	}

	backend, err := fterm.ParseBackend(cfgs.loop.Backend)
	if err != nil {
		return err
	}

	prof, err := cfgs.profile.NewProfiler()
	if err != nil {
		return err
	}

	err = prof.Start()
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, prof.Stop())
	}()

	logFile, err := cfgs.log.OpenFile()
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, logFile.Close())
	}()

	pub := log.NewPublisher()
	defer pub.Close() //nolint:errcheck // Close always returns nil.

	sub := pub.Subscribe()

	handler, err := cfgs.log.NewHandler(io.MultiWriter(logFile, pub))
	if err != nil {
		return err
	}

	logger := slog.New(handler).With(
		slog.String("run", uuid.NewString()),
		version.Attr(),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	host, err := openHost(backend)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, host.Close())
	}()

	l, err := cfgs.loop.NewLoop(host,
		loop.WithLogger(logger),
		loop.WithStatus(sub),
		loop.WithProfiler(prof),
	)
	if err != nil {
		return err
	}

	return l.Run(ctx)
}
