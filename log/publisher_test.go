package log_test

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/ferrisfollow/log"
)

func TestSubscriptionLatest(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want   string
		writes []string
		ok     bool
	}{
		"nothing written": {},
		"single entry": {
			writes: []string{"tick overrun"},
			want:   "tick overrun",
			ok:     true,
		},
		"newest wins": {
			writes: []string{"resized 80x24", "resized 100x30", "quit requested"},
			want:   "quit requested",
			ok:     true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pub := log.NewPublisher()
			sub := pub.Subscribe()

			for _, w := range tc.writes {
				n, err := pub.Write([]byte(w))
				require.NoError(t, err)
				assert.Equal(t, len(w), n)
			}

			got, ok := sub.Latest()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, string(got))

			_, ok = sub.Latest()
			assert.False(t, ok, "an entry is returned once")
		})
	}
}

func TestPublisherSubscribers(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()

	// Writes with no subscribers are dropped.
	_, err := pub.Write([]byte("follow loop started"))
	require.NoError(t, err)

	first := pub.Subscribe()
	second := pub.Subscribe()

	_, ok := first.Latest()
	assert.False(t, ok)

	_, err = pub.Write([]byte("terminal resized"))
	require.NoError(t, err)

	for _, sub := range []*log.Subscription{first, second} {
		got, ok := sub.Latest()
		require.True(t, ok)
		assert.Equal(t, "terminal resized", string(got))
	}
}

func TestPublisherCopiesEntry(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	sub := pub.Subscribe()

	buf := []byte("frame 1")
	_, err := pub.Write(buf)
	require.NoError(t, err)

	copy(buf, "FRAME 9")

	got, ok := sub.Latest()
	require.True(t, ok)
	assert.Equal(t, "frame 1", string(got))
}

func TestPublisherClose(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	sub := pub.Subscribe()

	_, err := pub.Write([]byte("last words"))
	require.NoError(t, err)
	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())

	n, err := pub.Write([]byte("after close"))
	require.NoError(t, err)
	assert.Equal(t, len("after close"), n)

	got, ok := sub.Latest()
	require.True(t, ok, "unread entries survive close")
	assert.Equal(t, "last words", string(got))

	late := pub.Subscribe()
	_, err = pub.Write([]byte("ignored"))
	require.NoError(t, err)

	_, ok = late.Latest()
	assert.False(t, ok)
}

func TestPublisherConcurrency(t *testing.T) {
	t.Parallel()

	const (
		writers = 8
		entries = 200
	)

	pub := log.NewPublisher()
	sub := pub.Subscribe()

	var wg sync.WaitGroup

	for w := range writers {
		wg.Go(func() {
			for i := range entries {
				_, err := fmt.Fprintf(pub, "writer %d entry %d", w, i)
				assert.NoError(t, err)
			}
		})
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		for range entries {
			if got, ok := sub.Latest(); ok {
				assert.True(t, strings.HasPrefix(string(got), "writer "), "got %q", got)
			}
		}
	}()

	wg.Wait()
	<-done

	_, err := pub.Write([]byte("quit requested"))
	require.NoError(t, err)

	got, ok := sub.Latest()
	require.True(t, ok)
	assert.Equal(t, "quit requested", string(got))
}

func TestPublisherWithHandler(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	t.Cleanup(func() { require.NoError(t, pub.Close()) })

	sub := pub.Subscribe()

	logger := slog.New(log.NewHandler(pub, log.LevelInfo, log.FormatJSON))
	logger.Info("terminal resized", slog.String("size", "100x30"))
	logger.Debug("tick overrun")

	got, ok := sub.Latest()
	require.True(t, ok)
	assert.Contains(t, string(got), "terminal resized")
	assert.Contains(t, string(got), `"size":"100x30"`)
}
