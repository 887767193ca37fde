package datasources

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/korpsdata/streamlink/core"
)

// StatusError reports a non-success HTTP status from a provider call.
// RetryAfter carries the server-specified delay when the provider sent a
// Retry-After header with a 429 response.
type StatusError struct {
	Platform   core.Platform
	Code       int
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned status %d", e.Platform, e.Code)
}

// isTransient reports whether an error is worth retrying: rate limiting,
// server errors, or network-level failures.
func isTransient(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	// Network-level errors have no status; retry them too.
	return true
}

// isPermanentlyEmpty reports whether a status means "forbidden/not found",
// which the pipeline treats as an empty result rather than an error.
func isPermanentlyEmpty(status int) bool {
	return status == http.StatusNotFound || status == http.StatusForbidden
}
