package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikalang/ika-backend/pkg/ctxutil"
)

// fakeClock is a settable time source for bucket refill tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T) (*RateLimiter, *fakeClock) {
	t.Helper()
	rl := NewRateLimiter(time.Hour)
	t.Cleanup(rl.Stop)
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl.now = clock.Now
	return rl, clock
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/translate", nil)
	req.RemoteAddr = remoteAddr
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(10, 0)(okHandler())

	for i := range 10 {
		rec := doRequest(handler, "1.2.3.4:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(5, 0)(okHandler())

	for range 5 {
		require.Equal(t, http.StatusOK, doRequest(handler, "1.2.3.4:1234").Code)
	}

	rec := doRequest(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "13", rec.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimiter_Burst(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(60, 2)(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, "5.5.5.5:1").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "5.5.5.5:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "5.5.5.5:1").Code)
}

func TestRateLimiter_DifferentClientsIndependent(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(2, 0)(okHandler())

	for range 2 {
		doRequest(handler, "1.1.1.1:1234")
	}

	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "1.1.1.1:1234").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_KeysByClientIP(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := ClientIP(false)(rl.Limit(1, 0)(okHandler()))

	// Same host, different source ports share one bucket.
	assert.Equal(t, http.StatusOK, doRequest(handler, "9.9.9.9:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "9.9.9.9:2000").Code)
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl, clock := newTestLimiter(t)
	// 60 per minute = 1 per second
	handler := rl.Limit(60, 0)(okHandler())

	for range 60 {
		doRequest(handler, "3.3.3.3:1234")
	}
	require.Equal(t, http.StatusTooManyRequests, doRequest(handler, "3.3.3.3:1234").Code)

	clock.Advance(1100 * time.Millisecond)

	assert.Equal(t, http.StatusOK, doRequest(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_DisabledWhenNonPositive(t *testing.T) {
	rl, _ := newTestLimiter(t)

	assert.Nil(t, rl.Limit(0, 10))

	// Chain skips the nil stage.
	handler := Chain(rl.Limit(0, 10))(okHandler())
	for range 5 {
		assert.Equal(t, http.StatusOK, doRequest(handler, "4.4.4.4:1").Code)
	}
}

func TestRateLimiter_SweepDropsIdleBuckets(t *testing.T) {
	rl, clock := newTestLimiter(t)
	handler := rl.Limit(10, 0)(okHandler())
	doRequest(handler, "7.7.7.7:1")

	rl.sweep(clock.Now().Add(idleBucketTTL / 2))
	_, ok := rl.buckets.Load("7.7.7.7:1")
	assert.True(t, ok)

	rl.sweep(clock.Now().Add(idleBucketTTL + time.Second))
	_, ok = rl.buckets.Load("7.7.7.7:1")
	assert.False(t, ok)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	rl.Stop()
	rl.Stop()
}

func TestRateLimiter_UsesContextClientIP(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(1, 0)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(ctxutil.WithClientIP(req.Context(), "8.8.8.8"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	_, ok := rl.buckets.Load("8.8.8.8")
	assert.True(t, ok)
}
