package httputil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func fastConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestRetryClientStatusHandling(t *testing.T) {
	tests := []struct {
		name         string
		failStatus   int
		failCount    int32
		wantStatus   int
		wantAttempts int32
	}{
		{name: "retriesOn503", failStatus: http.StatusServiceUnavailable, failCount: 2, wantStatus: http.StatusOK, wantAttempts: 3},
		{name: "retriesOn429", failStatus: http.StatusTooManyRequests, failCount: 1, wantStatus: http.StatusOK, wantAttempts: 2},
		{name: "retriesOn500", failStatus: http.StatusInternalServerError, failCount: 1, wantStatus: http.StatusOK, wantAttempts: 2},
		{name: "noRetryOn400", failStatus: http.StatusBadRequest, failCount: 10, wantStatus: http.StatusBadRequest, wantAttempts: 1},
		{name: "noRetryOn404", failStatus: http.StatusNotFound, failCount: 10, wantStatus: http.StatusNotFound, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if atomic.AddInt32(&attempts, 1) <= tt.failCount {
					w.WriteHeader(tt.failStatus)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := NewRetryClient(server.Client(), fastConfig())

			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if got := atomic.LoadInt32(&attempts); got != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", got, tt.wantAttempts)
			}
		})
	}
}

func TestRetryClientRespectsMaxRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewRetryClient(server.Client(), RetryConfig{
		MaxRetries:   2,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	})

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	// 1 initial attempt + MaxRetries
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestRetryClientReplaysRequestBody(t *testing.T) {
	var attempts int32
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		if atomic.AddInt32(&attempts, 1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewRetryClient(server.Client(), fastConfig())

	const payload = `{"query":"roman history"}`
	req, _ := http.NewRequest(http.MethodPost, server.URL, strings.NewReader(payload))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(payload)), nil
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if len(bodies) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(bodies))
	}
	for i, body := range bodies {
		if body != payload {
			t.Errorf("attempt %d body = %q, want %q", i+1, body, payload)
		}
	}
}

func TestNewRetryClientAppliesDefaults(t *testing.T) {
	client := NewRetryClient(nil, RetryConfig{})

	if client.client != http.DefaultClient {
		t.Error("expected http.DefaultClient when nil is passed")
	}
	if client.config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", client.config.MaxRetries)
	}
	if client.config.InitialDelay != 500*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 500ms", client.config.InitialDelay)
	}
	if client.config.MaxDelay != 5*time.Second {
		t.Errorf("MaxDelay = %v, want 5s", client.config.MaxDelay)
	}
	if client.config.Multiplier != 2.0 {
		t.Errorf("Multiplier = %f, want 2.0", client.config.Multiplier)
	}
}
