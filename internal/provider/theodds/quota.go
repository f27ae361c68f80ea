// internal/provider/theodds/quota.go
package theodds

import (
	"net/http"
	"strconv"
	"sync"
)

// QuotaSnapshot is a point-in-time view of the API key's request
// allowance. Fields are nil until the first response has been seen.
type QuotaSnapshot struct {
	Remaining *int `json:"remaining"`
	Used      *int `json:"used"`
}

// quota tracks request allowance from response headers. Safe for
// concurrent use.
type quota struct {
	mu        sync.Mutex
	remaining *int
	used      *int
}

func (q *quota) updateFromHeaders(h http.Header) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if v := h.Get("x-requests-remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.remaining = &n
		}
	}
	if v := h.Get("x-requests-used"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.used = &n
		}
	}
}

func (q *quota) snapshot() QuotaSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QuotaSnapshot{Remaining: q.remaining, Used: q.used}
}
