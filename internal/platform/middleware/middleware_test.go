package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teleconsult/teleconsult/internal/platform/auth"
)

func serveWith(mw echo.MiddlewareFunc, path string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	e.Use(RequestID())
	e.Use(mw)
	e.GET(path, handler)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoggerEmitsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	serveWith(Logger(logger), "/api/v1/consultations", func(c echo.Context) error {
		ctx := context.WithValue(c.Request().Context(), auth.UserIDKey, "doctor-7")
		c.SetRequest(c.Request().WithContext(ctx))
		return c.String(http.StatusOK, "ok")
	})

	line := buf.String()
	for _, want := range []string{
		`"method":"GET"`,
		`"path":"/api/v1/consultations"`,
		`"status":200`,
		`"user_id":"doctor-7"`,
		`"request_id":"`,
		`"remote_ip":"`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}

func TestLoggerSkipsHealthEndpoints(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	serveWith(Logger(logger), "/health/db", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if buf.Len() != 0 {
		t.Errorf("health request was logged: %s", buf.String())
	}
}

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	rec := serveWith(Recovery(logger), "/api/v1/patients", func(c echo.Context) error {
		panic("boom")
	})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	line := buf.String()
	for _, want := range []string{
		`"panic":"boom"`,
		`"path":"/api/v1/patients"`,
		"panic recovered",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("panic log missing %s: %s", want, line)
		}
	}
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2}))
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes[i] = rec.Code

		if i == 2 {
			if rec.Header().Get("Retry-After") == "" {
				t.Error("blocked response missing Retry-After")
			}
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests blocked: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("request over burst = %d", codes[2])
	}
}

func TestRateLimitZeroConfigUsesDefaults(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(RateLimitConfig{}))
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	want := DefaultRateLimitConfig()
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "100" {
		t.Errorf("X-RateLimit-Limit = %q, want %.0f", got, want.RequestsPerSecond)
	}
}
