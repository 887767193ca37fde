package datasources

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/korpsdata/streamlink/core"
)

const (
	cMaxRetries = 2 // three attempts in total
	cRetryDelay = time.Second
)

// NewRetryingClient wraps a streaming client with bounded retry/backoff so
// the matching engine stays free of networking detail. Transient failures
// (429, 5xx, network errors) are retried with a short fixed delay, honouring
// a server-specified Retry-After when present; exhausting retries surfaces
// the last error, which the collector degrades to "no data from this call".
func NewRetryingClient(inner core.StreamingClient) core.StreamingClient {
	return &retryingClientImpl{inner: inner}
}

type retryingClientImpl struct {
	inner core.StreamingClient
}

var _ core.StreamingClient = (*retryingClientImpl)(nil)

func (c *retryingClientImpl) Platform() core.Platform {
	return c.inner.Platform()
}

func (c *retryingClientImpl) SearchAlbums(ctx context.Context, term string) ([]core.Album, error) {
	var albums []core.Album
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		albums, err = c.inner.SearchAlbums(ctx, term)
		return err
	})
	return albums, err
}

func (c *retryingClientImpl) ListAlbumTracks(ctx context.Context, albumID string) ([]core.ProviderTrack, error) {
	var tracks []core.ProviderTrack
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		tracks, err = c.inner.ListAlbumTracks(ctx, albumID)
		return err
	})
	return tracks, err
}

func (c *retryingClientImpl) do(ctx context.Context, op func(context.Context) error) error {
	backoff := retry.WithMaxRetries(cMaxRetries, retry.NewConstant(cRetryDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.RetryAfter > cRetryDelay {
			// The server asked for a longer pause than our fixed delay;
			// wait out the difference before the backoff sleeps again.
			select {
			case <-time.After(statusErr.RetryAfter - cRetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return retry.RetryableError(err)
	})
}
