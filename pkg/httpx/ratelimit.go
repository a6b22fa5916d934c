package httpx

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/conduit/pkg/slogx"
	"golang.org/x/time/rate"
)

// Limit allows Requests per Window for one key, refilled continuously, with
// up to Burst requests at once.
type Limit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

func (l Limit) rate() rate.Limit {
	if l.Requests <= 0 || l.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(l.Requests) / l.Window.Seconds())
}

func (l Limit) burst() int {
	if l.Burst > 0 {
		return l.Burst
	}
	return max(l.Requests, 1)
}

// LimitProfiles groups the limits applied to each class of route.
type LimitProfiles struct {
	// Credentials guards register and login, the brute force targets.
	Credentials Limit
	// Write guards authenticated updates, which may run a password KDF.
	Write Limit
	// Read guards authenticated reads.
	Read Limit
	// Public guards anonymous reads.
	Public Limit
}

func DefaultLimits() LimitProfiles {
	return LimitProfiles{
		Credentials: Limit{Requests: 5, Window: time.Minute, Burst: 5},
		Write:       Limit{Requests: 20, Window: time.Minute, Burst: 20},
		Read:        Limit{Requests: 100, Window: time.Minute, Burst: 100},
		Public:      Limit{Requests: 1000, Window: time.Minute, Burst: 1000},
	}
}

// KeyFunc groups requests into rate limit buckets. An empty key exempts the
// request.
type KeyFunc func(*http.Request) string

// TrustedProxies lists the peers whose forwarding headers are believed.
// The zero value trusts nobody.
type TrustedProxies []netip.Prefix

// ParseTrustedProxies accepts CIDR prefixes and bare addresses.
func ParseTrustedProxies(list []string) (TrustedProxies, error) {
	var t TrustedProxies
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, "/") {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", s, err)
			}
			t = append(t, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", s, err)
		}
		a = a.Unmap()
		t = append(t, netip.PrefixFrom(a, a.BitLen()))
	}
	return t, nil
}

func (t TrustedProxies) trusts(a netip.Addr) bool {
	for _, p := range t {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

func parseAddr(s string) (netip.Addr, bool) {
	a, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}

// ClientIP returns the peer address. Only when the peer is trusted are the
// X-Forwarded-For hops walked from the right, skipping trusted proxies, and
// failing that X-Real-IP consulted.
func (t TrustedProxies) ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer, ok := parseAddr(host)
	if !ok || !t.trusts(peer) {
		return host
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		client := peer
		for i := len(hops) - 1; i >= 0; i-- {
			a, ok := parseAddr(hops[i])
			if !ok {
				break
			}
			client = a
			if !t.trusts(a) {
				break
			}
		}
		return client.String()
	}
	if a, ok := parseAddr(r.Header.Get("X-Real-IP")); ok {
		return a.String()
	}
	return peer.String()
}

// UserOrClientIP keys authenticated requests by user ID and anonymous ones
// by client address, so one user behind a shared address gets its own bucket.
func (t TrustedProxies) UserOrClientIP(r *http.Request) string {
	if id, ok := UserIDFromContext(r.Context()); ok {
		return "user:" + id
	}
	if ip := t.ClientIP(r); ip != "" {
		return "ip:" + ip
	}
	return ""
}

// RateLimiter is a keyed token bucket. Buckets idle for longer than the
// window are dropped on the next sweep.
type RateLimiter struct {
	limit Limit
	key   KeyFunc

	// OnLimited is called for every rejected request.
	OnLimited func(*http.Request)
	// Clock defaults to time.Now.
	Clock func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
	sweptAt time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewRateLimiter(limit Limit, key KeyFunc) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		key:     key,
		buckets: make(map[string]*bucket),
	}
}

func (rl *RateLimiter) now() time.Time {
	if rl.Clock != nil {
		return rl.Clock()
	}
	return time.Now()
}

// reserve takes one token for key. When none is available it returns the
// wait until the next one.
func (rl *RateLimiter) reserve(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.limit.rate(), rl.limit.burst())}
		rl.buckets[key] = b
	}
	b.seen = now

	if b.lim.AllowN(now, 1) {
		return true, 0
	}

	r := b.lim.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, wait
}

func (rl *RateLimiter) sweep(now time.Time) {
	idle := max(rl.limit.Window, time.Minute)
	if now.Sub(rl.sweptAt) < idle {
		return
	}
	rl.sweptAt = now
	for k, b := range rl.buckets {
		if now.Sub(b.seen) > idle {
			delete(rl.buckets, k)
		}
	}
}

// Len reports the number of tracked keys.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.key(r)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		ok, wait := rl.reserve(key)
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		retryAfter := max(int(wait.Round(time.Second)/time.Second), 1)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit.Requests))
		w.Header().Set("X-RateLimit-Window", rl.limit.Window.String())

		slogx.FromContext(r.Context()).Warn("rate limit exceeded",
			"key", key,
			"path", r.URL.Path,
			"retry_after", retryAfter,
		)
		if rl.OnLimited != nil {
			rl.OnLimited(r)
		}

		WriteJSON(w, http.StatusTooManyRequests, ErrorBody{
			Errors: map[string]string{"message": "too many requests, try again later"},
		})
	})
}
