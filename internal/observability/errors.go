package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/baxromumarov/geode/internal/httpx"
)

const (
	ErrorNetwork   = "network"
	ErrorHTTP      = "http_status"
	ErrorTimeout   = "timeout"
	ErrorRateLimit = "rate_limit"
	ErrorAI        = "ai"
	ErrorInput     = "input"
	ErrorUnknown   = "unknown"
)

// ClassifyFetchError buckets a page fetch failure for the error counters.
func ClassifyFetchError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorTimeout
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		switch {
		case fe.Status == http.StatusTooManyRequests:
			return ErrorRateLimit
		case fe.Status >= 300:
			return ErrorHTTP
		default:
			return ErrorNetwork
		}
	}
	return ErrorUnknown
}
