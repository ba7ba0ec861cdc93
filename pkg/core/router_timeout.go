package core

import (
	"context"
	"net/http"
	"time"
)

// withDeadline bounds the context the dispatcher and event publishing see.
// A non-positive d leaves requests unbounded.
func withDeadline(next http.Handler, d time.Duration) http.Handler {
	if d <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
