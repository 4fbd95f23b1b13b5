package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeClock is a controllable time source for deterministic tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(capacity int, window time.Duration, clock *fakeClock) *Limiter {
	l := New(capacity, window)
	l.now = clock.Now
	return l
}

func TestAllowBasic(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := newTestLimiter(3, time.Minute, clock)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("4th request should be denied")
	}
}

func TestAllowDifferentKeys(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := newTestLimiter(1, time.Minute, clock)

	if !l.Allow("a") {
		t.Fatal("first request for key 'a' should be allowed")
	}
	if l.Allow("a") {
		t.Fatal("second request for key 'a' should be denied")
	}
	if !l.Allow("b") {
		t.Fatal("first request for key 'b' should be allowed")
	}
}

func TestTokenRefill(t *testing.T) {
	clock := newFakeClock(time.Now())
	// 60 per minute is one token per second.
	l := newTestLimiter(60, time.Minute, clock)

	for i := 0; i < 60; i++ {
		l.Allow("k")
	}
	if l.Allow("k") {
		t.Fatal("should be denied after exhausting tokens")
	}

	clock.Advance(time.Second)
	if !l.Allow("k") {
		t.Fatal("should be allowed after 1 second refill")
	}
	if l.Allow("k") {
		t.Fatal("should be denied again after consuming refilled token")
	}

	clock.Advance(5 * time.Second)
	for i := 0; i < 5; i++ {
		if !l.Allow("k") {
			t.Fatalf("request %d should be allowed after 5s refill", i+1)
		}
	}
	if l.Allow("k") {
		t.Fatal("should be denied after consuming 5 refilled tokens")
	}
}

func TestTokenRefillCap(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := newTestLimiter(5, time.Minute, clock)

	l.Allow("k")
	l.Allow("k")
	clock.Advance(10 * time.Minute)

	_, remaining, _ := l.Status("k")
	if remaining != 5 {
		t.Fatalf("remaining should cap at 5, got %d", remaining)
	}
}

func TestDisabled(t *testing.T) {
	l := New(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !l.Allow("k") {
			t.Fatal("a zero-capacity limiter should never reject")
		}
	}

	var nilLimiter *Limiter
	if nilLimiter.Enabled() || !nilLimiter.Allow("k") {
		t.Fatal("nil limiter should be disabled and allow everything")
	}
}

func TestConcurrentAccess(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := newTestLimiter(100, time.Minute, clock)

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Allow("concurrent")
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != 100 {
		t.Fatalf("expected exactly 100 allowed, got %d", count)
	}
}

func TestStatus(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := newTestLimiter(10, time.Minute, clock)

	limit, remaining, resetAt := l.Status("s")
	if limit != 10 || remaining != 10 {
		t.Fatalf("fresh bucket: got limit %d remaining %d", limit, remaining)
	}
	if !resetAt.Equal(clock.Now()) {
		t.Fatalf("full bucket resetAt should equal now, got diff %v", resetAt.Sub(clock.Now()))
	}

	l.Allow("s")
	l.Allow("s")
	l.Allow("s")

	_, remaining, resetAt = l.Status("s")
	if remaining != 7 {
		t.Fatalf("expected remaining 7, got %d", remaining)
	}
	// 3 tokens at 10/min is 18 seconds.
	if got := resetAt.Sub(clock.Now()); got != 18*time.Second {
		t.Fatalf("expected reset in 18s, got %v", got)
	}
}

func TestSweep(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := newTestLimiter(5, time.Minute, clock)

	l.Allow("idle")
	clock.Advance(2 * time.Minute)
	l.Allow("active")

	if removed := l.Sweep(); removed != 1 {
		t.Fatalf("expected 1 bucket swept, got %d", removed)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 bucket left, got %d", l.Len())
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr", "192.0.2.1:5555", "", "192.0.2.1"},
		{"forwarded header ignored", "10.0.0.1:80", "203.0.113.9, 10.0.0.1", "10.0.0.1"},
		{"no port", "192.0.2.7", "", "192.0.2.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := ClientIP(r); got != tt.want {
				t.Fatalf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.5 ", "", "::1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"10.0.0.0/8", "192.0.2.5/32", "::1/128"}
	if len(got) != len(want) {
		t.Fatalf("got %d prefixes, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.String() != want[i] {
			t.Errorf("prefix %d = %s, want %s", i, p, want[i])
		}
	}

	for _, bad := range []string{"not-an-ip", "10.0.0.0/33"} {
		if _, err := ParseTrustedProxies([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestProxyAware(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	if err != nil {
		t.Fatal(err)
	}
	key := ProxyAware(trusted)

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"untrusted peer ignores header", "192.0.2.10:4000", "203.0.113.9", "192.0.2.10"},
		{"trusted peer uses client hop", "10.0.0.2:80", "203.0.113.9", "203.0.113.9"},
		{"spoofed left hops ignored", "10.0.0.2:80", "1.1.1.1, 203.0.113.9", "203.0.113.9"},
		{"skips trusted hops", "10.0.0.2:80", "203.0.113.9, 10.0.0.3", "203.0.113.9"},
		{"garbage hop stops chain", "10.0.0.2:80", "203.0.113.9, junk", "10.0.0.2"},
		{"trusted peer without header", "10.0.0.2:80", "", "10.0.0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := key(r); got != tt.want {
				t.Fatalf("key = %q, want %q", got, tt.want)
			}
		})
	}

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "10.0.0.2:80"
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	if got := ProxyAware(nil)(r); got != "10.0.0.2" {
		t.Fatalf("no trusted proxies: key = %q, want peer", got)
	}
}

func TestMiddleware(t *testing.T) {
	clock := newFakeClock(time.Now())
	l := newTestLimiter(2, time.Minute, clock)

	rejected := 0
	h := Middleware(l, ClientIP, func() { rejected++ })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := do("192.0.2.1:1000"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := do("192.0.2.1:1001")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") != "2" {
		t.Errorf("X-RateLimit-Limit = %q", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("X-RateLimit-Remaining = %q", w.Header().Get("X-RateLimit-Remaining"))
	}
	if rejected != 1 {
		t.Errorf("onReject called %d times, want 1", rejected)
	}

	if w := do("192.0.2.2:1000"); w.Code != http.StatusOK {
		t.Fatalf("other client should be allowed, got %d", w.Code)
	}
}
