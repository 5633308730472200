package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNetwork marks a remote backend that could not be reached.
var ErrNetwork = errors.New("cache backend unreachable")

// backoff bounds the attempts made for one Redis command.
type backoff struct {
	attempts int
	first    time.Duration
	max      time.Duration
}

var defaultBackoff = backoff{attempts: 3, first: 200 * time.Millisecond, max: 2 * time.Second}

// do runs fn until it succeeds, fails permanently or runs out of
// attempts. Only transient failures are retried; a reply from the server,
// redis.Nil included, is returned as is.
func (b backoff) do(ctx context.Context, op string, fn func() error) error {
	delay := b.first
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); !transient(err) {
			return err
		}
		if attempt >= b.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, b.max)
	}
	return fmt.Errorf("%w: redis %s failed after %d attempts: %w", ErrNetwork, op, b.attempts, err)
}

// transient reports whether err came from the connection rather than the
// server: dial and I/O errors, timeouts and dropped connections.
func transient(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, redis.Nil),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
