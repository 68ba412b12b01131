//go:build unix

package term

import (
	"os"
	"os/signal"
	"syscall"
)

// notifyResize delivers SIGWINCH on the returned channel until stop is
// called.
func notifyResize() (sig <-chan os.Signal, stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)

	return ch, func() { signal.Stop(ch) }
}
