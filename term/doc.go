// Package term provides the terminal hosts ferrisfollow draws on and reads
// input from.
//
// A [Host] is a [render.Surface] that also yields input [Event] values
// without blocking. Two backends exist:
//
//   - [TcellHost] drives a [tcell.Screen] with mouse motion reporting.
//   - [ANSIHost] writes ANSI sequences directly, reads raw stdin, decodes SGR
//     mouse reports, and watches SIGWINCH for resizes.
//
// Both read input on their own goroutine into a buffered channel, so
// [Host.Poll] never blocks the caller.
//
//	host, err := term.Open(term.BackendTcell)
//	if err != nil {
//	    return err
//	}
//	defer host.Close()
//
//	for {
//	    ev, ok, err := host.Poll()
//	    if err != nil || !ok {
//	        break
//	    }
//	    // Handle ev.
//	}
package term
