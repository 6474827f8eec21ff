package test_utils

import (
	"context"
	"testing"

	"github.com/busanbiff/tripbudget/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

// TestWithRedis starts a Redis container and returns the connection settings for it.
// The test is skipped in short mode.
func TestWithRedis(t *testing.T) config.Redis {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()

	container, err := redis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Warnf("failed to terminate redis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}
	log.Infof("Redis container started at %s:%d", host, port.Int())

	return config.Redis{Host: host, Port: port.Int()}
}
