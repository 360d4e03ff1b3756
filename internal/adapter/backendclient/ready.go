package backendclient

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// WaitReady polls the backend health endpoint with exponential backoff until
// it answers or maxWait elapses. This only gates startup; regular operations
// are never retried.
func (c *Client) WaitReady(ctx context.Context, maxWait time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = maxWait

	attempt := 0

	return backoff.Retry(func() error {
		err := c.Health(ctx)
		if err == nil {
			return nil
		}

		attempt++
		c.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("backend not ready, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}
