//go:build !unix

package term

import "os"

// notifyResize returns a channel that never fires; these platforms have no
// SIGWINCH.
func notifyResize() (sig <-chan os.Signal, stop func()) {
	return nil, func() {}
}
