package mockhook

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// throttle is a per-client GCRA limiter: each client may run at most
// burst requests ahead of its steady rate.
type throttle struct {
	every     time.Duration // steady spacing between requests
	tolerance time.Duration // how far ahead of schedule a client may get
	idle      time.Duration

	mu     sync.Mutex
	due    map[string]time.Time // theoretical arrival time per client
	pruned time.Time
}

func newThrottle(perMinute, burst int) *throttle {
	every := time.Minute / time.Duration(perMinute)
	return &throttle{
		every:     every,
		tolerance: every * time.Duration(burst-1),
		idle:      10 * time.Minute,
		due:       make(map[string]time.Time),
	}
}

// admit returns zero when the request may pass, otherwise how long the
// client should wait.
func (t *throttle) admit(client string, now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if now.Sub(t.pruned) > t.idle {
		for c, due := range t.due {
			if now.Sub(due) > t.idle {
				delete(t.due, c)
			}
		}
		t.pruned = now
	}

	due := t.due[client]
	if due.Before(now) {
		due = now
	}
	if ahead := due.Sub(now); ahead > t.tolerance {
		return ahead - t.tolerance
	}
	t.due[client] = due.Add(t.every)
	return 0
}

// RateLimit answers 429 once a client exceeds perMinute with the given
// burst, as the hosted hook does when a scenario is flooded. perMinute <= 0
// disables it.
func RateLimit(perMinute, burst int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	t := newThrottle(perMinute, max(burst, 1))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wait := t.admit(clientIP(r), time.Now()); wait > 0 {
				secs := int((wait + time.Second - 1) / time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte("Too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
