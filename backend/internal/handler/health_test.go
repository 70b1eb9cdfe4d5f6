package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itchan-dev/mediameta/shared/config"
	"github.com/stretchr/testify/assert"
)

// --- Mock for HealthChecker ---

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil // Default: healthy
}

func TestHealth(t *testing.T) {
	handler := &Handler{cfg: &config.Config{}, health: &MockHealthChecker{}}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestReady(t *testing.T) {
	tests := []struct {
		name         string
		pingErr      error
		expectedCode int
		expectedBody string
	}{
		{name: "database available", pingErr: nil, expectedCode: http.StatusOK, expectedBody: "ok"},
		{name: "database down", pingErr: errors.New("connection refused"), expectedCode: http.StatusServiceUnavailable, expectedBody: "database unavailable"},
		{name: "ping timeout", pingErr: context.DeadlineExceeded, expectedCode: http.StatusServiceUnavailable, expectedBody: "database unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthChecker := &MockHealthChecker{
				PingFunc: func(ctx context.Context) error {
					_, hasDeadline := ctx.Deadline()
					assert.True(t, hasDeadline, "Context should have a deadline")
					return tt.pingErr
				},
			}
			handler := &Handler{cfg: &config.Config{}, health: healthChecker}

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			rr := httptest.NewRecorder()

			handler.Ready(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedBody, rr.Body.String())
		})
	}
}
