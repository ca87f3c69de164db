package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTLSeconds = 120
	startupTimeout      = 120 * time.Second
)

const (
	settingsStorePort  = "6379/tcp"
	settingsStoreImage = "redis"
	settingsStoreTag   = "7-alpine"

	settingsKeyPattern = "settings:*"
)

// Suite - a throwaway redis container that backs the settings store in tests.
type Suite struct {
	*testing.T

	Storage *redis.Client
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis container tests are skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	t.Cleanup(cancel)

	client := startSettingsStore(ctx, t)

	return ctx, &Suite{
		T:       t,
		Storage: client,
	}
}

// SettingsKeys - every settings key currently stored.
func (that *Suite) SettingsKeys(ctx context.Context) []string {
	that.Helper()

	keys, err := that.Storage.Keys(ctx, settingsKeyPattern).Result()
	if err != nil {
		that.Fatalf("could not list settings keys: %v", err)
	}

	return keys
}

// startSettingsStore - runs redis in docker and returns a client on an empty database.
func startSettingsStore(ctx context.Context, t *testing.T) *redis.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}
	pool.MaxWait = startupTimeout

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: settingsStoreImage,
		Tag:        settingsStoreTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start settings store: %v", err)
	}

	// hard kill in case the cleanup below never runs
	_ = resource.Expire(containerTTLSeconds)

	client := redis.NewClient(&redis.Options{
		Addr: resource.GetHostPort(settingsStorePort),
	})

	// redis inside the container may still be starting
	if err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("could not connect to settings store: %v", err)
	}

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush settings store: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := client.Close(); closeErr != nil {
			t.Logf("could not close redis client: %v", closeErr)
		}

		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Errorf("could not purge settings store: %v", purgeErr)
		}
	})

	return client
}
