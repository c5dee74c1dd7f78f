package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid", "42", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not a number", "abc", http.StatusUnauthorized},
		{"negative", "-5", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, int64(42), gotUserID)
			}
		})
	}
}

func TestGetUserID_Missing(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
	}))

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-1", fromCtx)
	})

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, fromCtx)
	})
}

type observation struct {
	method string
	route  string
	status int
}

type fakeHTTPMetrics struct {
	observed []observation
}

func (f *fakeHTTPMetrics) ObserveHTTP(_, method, route string, status int, _ time.Duration) {
	f.observed = append(f.observed, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "salonservice"))
	r.HandleFunc("/api/v1/salons/{salonId}/services", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/salons/7/services", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, observation{
		method: http.MethodPost,
		route:  "/api/v1/salons/{salonId}/services",
		status: http.StatusCreated,
	}, m.observed[0])
}

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func TestRateLimiter(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{}}
	h := NewRateLimiter(counter, 2, time.Minute, true, nil, logger.NewNop()).Middleware(http.HandlerFunc(okHandler))

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000"))
	assert.Equal(t, int64(3), counter.counts["salonservice:rl:ip:10.0.0.1"])
}

func TestRateLimiter_CounterUnavailable(t *testing.T) {
	counter := &fakeCounter{err: errors.New("dial tcp: connection refused")}

	t.Run("fail open", func(t *testing.T) {
		h := NewRateLimiter(counter, 1, time.Minute, true, nil, logger.NewNop()).Middleware(http.HandlerFunc(okHandler))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("fail closed", func(t *testing.T) {
		h := NewRateLimiter(counter, 1, time.Minute, false, nil, logger.NewNop()).Middleware(http.HandlerFunc(okHandler))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestRateLimiter_SpoofedHeadersShareLimit(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{}}
	h := NewRateLimiter(counter, 2, time.Minute, true, nil, logger.NewNop()).Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set(UserIDHeader, strconv.Itoa(1000+i))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, map[string]int64{"salonservice:rl:ip:198.51.100.7": 3}, counter.counts)
}

func TestClientKey(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	rl := NewRateLimiter(&fakeCounter{}, 1, time.Minute, true, trusted, logger.NewNop())

	tests := []struct {
		name       string
		remoteAddr string
		userID     string
		forwarded  string
		want       string
	}{
		{"direct client", "198.51.100.7:4000", "", "", "ip:198.51.100.7"},
		{"user header ignored", "198.51.100.7:4000", "500", "", "ip:198.51.100.7"},
		{"forwarded from untrusted peer ignored", "198.51.100.7:4000", "", "203.0.113.5", "ip:198.51.100.7"},
		{"forwarded through trusted proxy", "10.0.0.1:4000", "", "203.0.113.5", "ip:203.0.113.5"},
		{"spoofed leftmost hop ignored", "10.0.0.1:4000", "", "1.1.1.1, 203.0.113.5, 10.0.0.2", "ip:203.0.113.5"},
		{"trusted proxy without header", "10.0.0.1:4000", "", "", "ip:10.0.0.1"},
		{"garbage hop", "10.0.0.1:4000", "", "not-an-ip", "ip:10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.userID != "" {
				req.Header.Set(UserIDHeader, tt.userID)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, rl.clientKey(req))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	nets, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 172.16.0.0/12 "})
	require.NoError(t, err)
	assert.Len(t, nets, 2)

	_, err = ParseTrustedProxies([]string{"10.0.0.1"})
	assert.Error(t, err)
}
