package health

import (
	"context"
	"time"

	"pharma-backend/internal/cache"
)

// pingTimeout bounds the readiness probe so a stuck database cannot hang
// the probe endpoint.
const pingTimeout = 2 * time.Second

// Pinger is the slice of the pgx pool the checker needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Checker struct {
	db Pinger
}

func NewChecker(db Pinger) *Checker {
	return &Checker{db: db}
}

// Status is the readiness payload. Overall status follows the database
// only; the cache degrades gracefully and is reported for visibility.
type Status struct {
	Status   string         `json:"status"`
	Database DatabaseStatus `json:"database"`
	Cache    CacheStatus    `json:"cache"`
}

type DatabaseStatus struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type CacheStatus struct {
	Status string `json:"status"`
}

func (c *Checker) Check(ctx context.Context) Status {
	db := c.checkDatabase(ctx)

	overall := "healthy"
	if db.Status != "healthy" {
		overall = "unhealthy"
	}

	return Status{
		Status:   overall,
		Database: db,
		Cache:    checkCache(ctx),
	}
}

func (c *Checker) checkDatabase(ctx context.Context) DatabaseStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := c.db.Ping(ctx)
	elapsed := time.Since(start).Milliseconds()

	status := "healthy"
	if err != nil {
		status = "unhealthy"
	}
	return DatabaseStatus{Status: status, ResponseTime: elapsed}
}

func checkCache(ctx context.Context) CacheStatus {
	if !cache.Available(ctx) {
		return CacheStatus{Status: "degraded"}
	}
	return CacheStatus{Status: "connected"}
}
