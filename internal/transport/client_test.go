package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/punitarani/flights-tracker-sub001/pkg/logger"
)

func fastConfig() Config {
	return Config{
		RequestsPerSecond: 1000,
		Burst:             1000,
		MaxInFlight:       4,
		MaxAttempts:       3,
		BackoffBase:       time.Millisecond,
		Timeout:           5 * time.Second,
	}
}

func TestPostRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(fastConfig(), logger.NewNop(), nil)

	data, err := c.Post(context.Background(), srv.URL, "f.req=x", nil)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("body = %q, want ok", data)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestPostExhaustsAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(fastConfig(), logger.NewNop(), nil)

	_, err := c.Post(context.Background(), srv.URL, "f.req=x", nil)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("got %v, want RequestError", err)
	}
	if reqErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", reqErr.StatusCode)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want exactly MaxAttempts (3)", got)
	}
}

func TestPostNoResponse(t *testing.T) {
	c := NewClient(fastConfig(), logger.NewNop(), nil)

	// Closed server: every attempt is a network error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := c.Post(context.Background(), srv.URL, "f.req=x", nil)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("got %v, want RequestError", err)
	}
	if reqErr.StatusCode != 0 {
		t.Errorf("status = %d, want 0 for no response", reqErr.StatusCode)
	}
}

func TestPostAbortIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(fastConfig(), logger.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Post(ctx, srv.URL, "f.req=x", nil)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("aborted request did not return promptly")
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d calls, want 1 (no retry after abort)", got)
	}
}

func TestRateLimiterSpacing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	const rps = 50.0
	const n = 4
	cfg := fastConfig()
	cfg.RequestsPerSecond = rps
	cfg.Burst = 1
	c := NewClient(cfg, logger.NewNop(), nil)

	start := time.Now()
	for i := 0; i < n; i++ {
		if _, err := c.Post(context.Background(), srv.URL, "f.req=x", nil); err != nil {
			t.Fatalf("Post %d: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	// Nth request completes no earlier than (N-1)/R after the first,
	// minus a small timer-resolution tolerance.
	min := time.Duration(float64(n-1)/rps*float64(time.Second)) - 5*time.Millisecond
	if elapsed < min {
		t.Errorf("%d requests finished in %v, want at least %v", n, elapsed, min)
	}
}

func TestHeaderMerge(t *testing.T) {
	var gotUA, gotContentType, gotCustom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotContentType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Custom")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(fastConfig(), logger.NewNop(), nil)

	_, err := c.Post(context.Background(), srv.URL, "f.req=x", map[string]string{
		"Content-Type": "text/plain",
		"X-Custom":     "yes",
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotUA == "" {
		t.Error("default User-Agent missing")
	}
	if gotContentType != "text/plain" {
		t.Errorf("caller Content-Type did not win: got %q", gotContentType)
	}
	if gotCustom != "yes" {
		t.Errorf("custom header missing: got %q", gotCustom)
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Write([]byte("pong"))
	}))
	defer srv.Close()

	c := NewClient(fastConfig(), logger.NewNop(), nil)
	data, err := c.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pong" {
		t.Errorf("body = %q, want pong", data)
	}
}
