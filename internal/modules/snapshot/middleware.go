package snapshot

import (
	"context"
	"net/http"
)

type refreshMarkKey struct{}

// markRefreshed records on a request context that the cache was reloaded while serving it.
func markRefreshed(ctx context.Context) {
	if m, ok := ctx.Value(refreshMarkKey{}).(*bool); ok {
		*m = true
	}
}

// InvalidateOnWrite marks the cache stale after every request that may have mutated a
// store, so the next read refreshes it. Handlers that already refreshed the cache with the
// request context are left alone.
func InvalidateOnWrite(c *Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			refreshed := false
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), refreshMarkKey{}, &refreshed)))
			if !refreshed {
				c.Invalidate()
			}
		})
	}
}
