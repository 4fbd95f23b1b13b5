package ratelimit

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
)

// KeyFunc derives the bucket key for a request.
type KeyFunc func(r *http.Request) string

// ClientIP keys requests by the direct peer address. Forwarding headers are
// ignored; use ProxyAware behind a reverse proxy.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ParseTrustedProxies parses IP addresses and CIDR prefixes.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// ProxyAware returns a KeyFunc that consults X-Forwarded-For only when the
// direct peer is a trusted proxy. The key is then the right-most hop that is
// not itself trusted, so hops prepended by the client never count. With no
// trusted proxies it behaves like ClientIP.
func ProxyAware(trusted []netip.Prefix) KeyFunc {
	if len(trusted) == 0 {
		return ClientIP
	}
	isTrusted := func(s string) bool {
		addr, err := netip.ParseAddr(strings.TrimSpace(s))
		if err != nil {
			return false
		}
		addr = addr.Unmap()
		for _, p := range trusted {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}

	return func(r *http.Request) string {
		peer := ClientIP(r)
		if !isTrusted(peer) {
			return peer
		}
		hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if _, err := netip.ParseAddr(hop); err != nil {
				// Unparseable hop: stop trusting the chain here.
				return peer
			}
			if !isTrusted(hop) {
				return hop
			}
			peer = hop
		}
		return peer
	}
}

// Middleware enforces limiter per key. Rate-limit headers are set on every
// response:
//
//	X-RateLimit-Limit     maximum requests allowed in the window
//	X-RateLimit-Remaining tokens remaining
//	X-RateLimit-Reset     Unix timestamp when the bucket is full again
//
// Rejected requests get 429 with the standard JSON error body.
func Middleware(limiter *Limiter, key KeyFunc, onReject ...func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !limiter.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			allowed := limiter.Allow(k)

			limit, remaining, resetAt := limiter.Status(k)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !allowed {
				for _, fn := range onReject {
					fn()
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "rate_limited",
					"message": "too many login attempts, try again later",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
