package backend_test

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ory/dockertest"
	"gorm.io/gorm/logger"
	"gotest.tools/assert"

	"github.com/ghaniswara/workmatch/internal/api"
	"github.com/ghaniswara/workmatch/internal/backend"
	"github.com/ghaniswara/workmatch/internal/config"
	"github.com/ghaniswara/workmatch/internal/datastore/postgres"
	"github.com/ghaniswara/workmatch/internal/entity"
)

// startPostgres runs a throwaway postgres container and points cfg at it.
// The test is skipped when no Docker daemon is reachable.
func startPostgres(t *testing.T, cfg *config.Config) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %s", err)
	}

	resource, err := pool.Run("postgres", "14", []string{
		fmt.Sprintf("POSTGRES_USER=%s", cfg.Get("POSTGRES_USER")),
		fmt.Sprintf("POSTGRES_PASSWORD=%s", cfg.Get("POSTGRES_PASSWORD")),
		fmt.Sprintf("POSTGRES_DB=%s", cfg.Get("POSTGRES_DB_NAME")),
	})
	assert.NilError(t, err)
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge postgres: %s", err)
		}
	})

	cfg.Set("POSTGRES_HOST", "localhost")
	cfg.Set("POSTGRES_PORT", resource.GetPort("5432/tcp"))

	dsn := postgres.DSN(
		cfg.Get("POSTGRES_USER"),
		cfg.Get("POSTGRES_PASSWORD"),
		cfg.Get("POSTGRES_DB_NAME"),
		cfg.Get("POSTGRES_HOST"),
		cfg.Get("POSTGRES_PORT"),
	)

	pool.MaxWait = 60 * time.Second
	assert.NilError(t, pool.Retry(func() error {
		db, err := postgres.InitializeDB(dsn, logger.Silent)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		return sqlDB.Ping()
	}))
}

func TestServerOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a postgres container")
	}

	cfg, err := config.NewConfig("")
	assert.NilError(t, err)
	cfg.Set("DB_DRIVER", "postgres")
	cfg.Set("SEED_USERS", "2")
	cfg.Set("JWT_SECRET", "test-secret")
	cfg.Set("LOG_LEVEL", "error")
	startPostgres(t, cfg)

	ctx := context.Background()
	srv, err := backend.NewServer(ctx, io.Discard, cfg)
	assert.NilError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	url := ts.URL + "/api"

	var count int64
	assert.NilError(t, srv.DB().Model(&entity.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	alice := join(t, url, "alice", entity.GenderFemale, entity.GenderMale)
	bob := join(t, url, "bob", entity.GenderMale, entity.GenderFemale)

	resp, err := bob.client.Matches.Like(ctx, alice.user.ID)
	assert.NilError(t, err)
	assert.Assert(t, !resp.Match)

	resp, err = alice.client.Matches.Like(ctx, bob.user.ID)
	assert.NilError(t, err)
	assert.Assert(t, resp.Match)

	_, err = alice.client.Messages.Send(ctx, bob.user.ID, "hi from postgres")
	assert.NilError(t, err)

	thread, err := bob.client.Messages.Conversation(ctx, alice.user.ID)
	assert.NilError(t, err)
	assert.Equal(t, 1, len(thread))
	assert.Equal(t, "hi from postgres", thread[0].Content)

	_, err = bob.client.Matches.Like(ctx, alice.user.ID)
	assert.Equal(t, "Already liked this user", api.ErrorMessage(err, ""))
}
