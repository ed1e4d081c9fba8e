package handler

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps how often one client may hit a guarded route within a
// sliding one-minute window. Windows are kept per route and client IP, so a
// visitor who sends several contact messages can still book a meeting.
type RateLimiter struct {
	limit          int
	window         time.Duration
	trustedProxies int
	now            func() time.Time

	mu   sync.Mutex
	hits map[limiterKey][]time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type limiterKey struct {
	route string
	ip    string
}

// NewRateLimiter returns a limiter allowing perMinute requests per route and
// client. trustedProxies is how many reverse proxies append to
// X-Forwarded-For in front of the server; 0 uses the socket address. A
// non-positive perMinute disables limiting. Call Stop to end the background
// sweep.
func NewRateLimiter(perMinute, trustedProxies int) *RateLimiter {
	rl := &RateLimiter{
		limit:          perMinute,
		window:         time.Minute,
		trustedProxies: trustedProxies,
		now:            time.Now,
		hits:           make(map[limiterKey][]time.Time),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
	if perMinute <= 0 {
		close(rl.done)
		return rl
	}
	go rl.sweepLoop(5 * rl.window)
	return rl
}

// Limit guards next under the given route name.
func (rl *RateLimiter) Limit(route string, next http.HandlerFunc) http.Handler {
	if rl.limit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := rl.allow(limiterKey{route: route, ip: rl.clientIP(r)})
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds(wait)))
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}
		next(w, r)
	})
}

// Stop ends the sweep goroutine and waits for it. It is safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}

// allow records a hit for k, or reports how long until the oldest hit in the
// window expires.
func (rl *RateLimiter) allow(k limiterKey) (bool, time.Duration) {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := withinWindow(rl.hits[k], now.Add(-rl.window))
	if len(recent) >= rl.limit {
		rl.hits[k] = recent
		return false, recent[0].Add(rl.window).Sub(now)
	}
	rl.hits[k] = append(recent, now)
	return true, 0
}

func (rl *RateLimiter) sweepLoop(every time.Duration) {
	defer close(rl.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops clients with no hits inside the window.
func (rl *RateLimiter) sweep() {
	cutoff := rl.now().Add(-rl.window)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for k, ts := range rl.hits {
		if recent := withinWindow(ts, cutoff); len(recent) > 0 {
			rl.hits[k] = recent
		} else {
			delete(rl.hits, k)
		}
	}
}

// withinWindow filters ts in place, keeping entries after cutoff. ts is
// append-ordered, so the kept entries stay sorted.
func withinWindow(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func retrySeconds(d time.Duration) int {
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	return secs
}

// clientIP takes the address our own proxies saw: the entry trustedProxies
// positions from the right of X-Forwarded-For. Entries further left are client
// supplied and ignored. Unparseable values fall back to the socket address.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if rl.trustedProxies > 0 {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if i := len(parts) - rl.trustedProxies; i >= 0 {
				if ip := net.ParseIP(strings.TrimSpace(parts[i])); ip != nil {
					return ip.String()
				}
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
