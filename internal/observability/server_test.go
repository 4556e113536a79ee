package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func startServer(t *testing.T, ready ReadinessChecker) *Server {
	t.Helper()
	server := NewServer("127.0.0.1:0", ready)
	if _, err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	})
	if server.Addr() == "" {
		t.Fatal("server address is empty")
	}
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("failed to GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_Metrics(t *testing.T) {
	server := startServer(t, func() bool { return true })

	status, body := get(t, "http://"+server.Addr()+"/metrics")
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}

	if !strings.Contains(body, "# HELP") || !strings.Contains(body, "# TYPE") {
		t.Error("expected Prometheus exposition format")
	}
	if !strings.Contains(body, "go_") {
		t.Error("expected go_* metrics")
	}
	if !strings.Contains(body, "process_") {
		t.Error("expected process_* metrics")
	}

	// Counters only appear after being used.
	RecordLoginAttempt("pin", OutcomeDenied)
	RecordUnmappedDenial("view")

	_, body = get(t, "http://"+server.Addr()+"/metrics")
	if !strings.Contains(body, "tillhouse_login_attempts_total") {
		t.Error("expected tillhouse_login_attempts_total metric")
	}
	if !strings.Contains(body, "tillhouse_unmapped_access_denials_total") {
		t.Error("expected tillhouse_unmapped_access_denials_total metric")
	}
}

func TestServer_LivenessReturns200(t *testing.T) {
	server := startServer(t, nil)

	status, body := get(t, "http://"+server.Addr()+"/healthz/liveness")
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
	if strings.TrimSpace(body) != "ok" {
		t.Errorf("expected body 'ok', got %q", body)
	}
}

func TestServer_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		checker    ReadinessChecker
		wantStatus int
		wantBody   string
	}{
		{"ready", func() bool { return true }, http.StatusOK, "ok"},
		{"not ready", func() bool { return false }, http.StatusServiceUnavailable, "not ready"},
		{"nil checker defaults to ready", nil, http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := startServer(t, tt.checker)

			status, body := get(t, "http://"+server.Addr()+"/healthz/readiness")
			if status != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, status)
			}
			if strings.TrimSpace(body) != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, body)
			}
		})
	}
}

func TestServer_DoubleStartFails(t *testing.T) {
	server := startServer(t, nil)

	if _, err := server.Start(); err == nil {
		t.Error("expected error on double start, got nil")
	}
}

func TestServer_StopWithoutStartIsNoop(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Errorf("stop without start should not error: %v", err)
	}
}

func TestServer_LifecycleLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)
	// Idle keep-alive connections from earlier tests would read as leaks.
	defer http.DefaultClient.CloseIdleConnections()

	server := NewServer("127.0.0.1:0", nil)
	errCh, err := server.Start()
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Fatalf("failed to stop server: %v", err)
	}

	// The serve goroutine closes the channel on graceful shutdown.
	select {
	case serveErr, ok := <-errCh:
		if ok && serveErr != nil {
			t.Errorf("unexpected error on normal shutdown: %v", serveErr)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for error channel to close")
	}
}

func TestServer_ErrorChannelReportsServeErrors(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	errCh, err := server.Start()
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	// Closing the listener out from under Serve simulates a runtime
	// failure after Start has returned.
	_ = server.listener.Close()

	select {
	case serveErr := <-errCh:
		if serveErr == nil {
			t.Error("expected an error after closing listener")
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for error on error channel")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Stop(ctx)
}
