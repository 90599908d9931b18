package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// Check pings one optional dependency of the consultation service (AI
// provider, cache). Check errors are reported but never gate the overall
// status: the service degrades to fallback document generation without them.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type poolStats struct {
	TotalConns    int32  `json:"total_conns"`
	IdleConns     int32  `json:"idle_conns"`
	AcquiredConns int32  `json:"acquired_conns"`
	MaxConns      int32  `json:"max_conns"`
	AcquireWait   string `json:"acquire_wait"`
}

func snapshotPool(pool *pgxpool.Pool) poolStats {
	stat := pool.Stat()
	return poolStats{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
		AcquireWait:   stat.AcquireDuration().String(),
	}
}

func componentStatuses(ctx context.Context, checks []Check) map[string]string {
	if len(checks) == 0 {
		return nil
	}
	components := make(map[string]string, len(checks))
	for _, check := range checks {
		if err := check.Ping(ctx); err != nil {
			components[check.Name] = "unavailable: " + err.Error()
		} else {
			components[check.Name] = "ok"
		}
	}
	return components
}

// HealthHandler reports database health plus the availability of the optional
// components. Only the database gates the status code: without it no
// consultation can be read or written.
func HealthHandler(pool *pgxpool.Pool, checks ...Check) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		payload := map[string]interface{}{
			"service":    "teleconsult-server",
			"components": componentStatuses(ctx, checks),
		}

		if err := pool.Ping(ctx); err != nil {
			payload["status"] = "unhealthy"
			payload["error"] = err.Error()
			payload["database"] = snapshotPool(pool)
			return c.JSON(http.StatusServiceUnavailable, payload)
		}

		payload["status"] = "healthy"
		payload["database"] = snapshotPool(pool)
		return c.JSON(http.StatusOK, payload)
	}
}
