package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/internal/service"
)

// VisitTracker records a visit for every request passing through it. The
// tracker swallows its own failures, so the wrapped handler always runs.
func VisitTracker(tracker service.TrackerService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracker.Track(r.Context(), VisitorKey(r))
			next.ServeHTTP(w, r)
		})
	}
}

// VisitorKey derives the visitor identifier for deduplication: the first
// entry of X-Forwarded-For, else the host part of the connection address,
// else a sentinel.
func VisitorKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first := firstForwarded(forwarded); first != "" {
			return first
		}
	}

	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}

	return domain.UnknownVisitor
}

// firstForwarded extracts the first address from a comma-separated list
func firstForwarded(forwarded string) string {
	if i := strings.IndexByte(forwarded, ','); i >= 0 {
		forwarded = forwarded[:i]
	}
	return strings.TrimSpace(forwarded)
}
