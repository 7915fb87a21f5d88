package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestCheckHealthyDatabase(t *testing.T) {
	status := NewChecker(fakePinger{}).Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "healthy", status.Database.Status)
}

func TestCheckUnhealthyDatabase(t *testing.T) {
	status := NewChecker(fakePinger{err: errors.New("connection refused")}).Check(context.Background())

	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "unhealthy", status.Database.Status)
}

func TestCheckCacheDegradedWithoutRedis(t *testing.T) {
	status := NewChecker(fakePinger{}).Check(context.Background())

	// no Redis connection in tests
	assert.Equal(t, "degraded", status.Cache.Status)
	// a degraded cache must not fail readiness
	assert.Equal(t, "healthy", status.Status)
}
