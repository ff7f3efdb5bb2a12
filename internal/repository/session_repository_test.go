package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
)

func fullSession() models.Session {
	return models.Session{
		AuthToken: "secret-token",
		CohortID:  "fall2025",
		Identity:  &models.Identity{Email: "ada@example.com", DisplayName: "Ada Lovelace"},
	}
}

func TestSessionValuesRoundTrip(t *testing.T) {
	restored := sessionFromValues(sessionValues(fullSession()))
	require.NotNil(t, restored)
	assert.Equal(t, "secret-token", restored.AuthToken)
	assert.Equal(t, "fall2025", restored.CohortID)
	assert.Equal(t, "ada@example.com", restored.Identity.Email)
	assert.Equal(t, "Ada Lovelace", restored.Identity.DisplayName)

	assert.Nil(t, sessionFromValues(nil))
	assert.Nil(t, sessionFromValues(sessionValues(models.Session{})))
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, repo.Save(ctx, fullSession()))
	assert.True(t, repo.Has(KeySecret))

	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "secret-token", loaded.AuthToken)

	require.NoError(t, repo.Clear(ctx))
	assert.False(t, repo.Has(KeySecret))
}

func TestBoltSessionRepositorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	repo, err := NewBoltSessionRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, fullSession()))
	require.NoError(t, repo.Close())

	reopened, err := NewBoltSessionRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "secret-token", loaded.AuthToken)
	assert.Equal(t, "Ada Lovelace", loaded.Identity.DisplayName)
}

func TestBoltSessionRepositorySaveDropsEmptyKeys(t *testing.T) {
	ctx := context.Background()
	repo, err := NewBoltSessionRepository(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Save(ctx, fullSession()))
	require.NoError(t, repo.Save(ctx, models.Session{CohortID: "spring2026"}))

	has, err := repo.Has(KeySecret)
	require.NoError(t, err)
	assert.False(t, has)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "spring2026", loaded.CohortID)
	assert.Nil(t, loaded.Identity)

	require.NoError(t, repo.Clear(ctx))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func newSessionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestPostgresSessionRepositoryLoad(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewPostgresSessionRepository(db, "tsma")
	rows := sqlmock.NewRows([]string{"namespace", "key", "value", "updated_at"}).
		AddRow("tsma", KeySecret, "secret-token", time.Now()).
		AddRow("tsma", KeyCohort, "fall2025", time.Now())
	mock.ExpectQuery("SELECT namespace, key, value, updated_at FROM client_sessions").
		WithArgs("tsma").
		WillReturnRows(rows)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "secret-token", loaded.AuthToken)
	assert.Equal(t, "fall2025", loaded.CohortID)
	assert.Nil(t, loaded.Identity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepositorySave(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewPostgresSessionRepository(db, "tsma")
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM client_sessions").
		WithArgs("tsma").
		WillReturnResult(sqlmock.NewResult(0, 4))
	for _, kv := range [][2]string{
		{KeySecret, "secret-token"},
		{KeyCohort, "fall2025"},
		{KeyEmail, "ada@example.com"},
		{KeyDisplayName, "Ada Lovelace"},
	} {
		mock.ExpectExec("INSERT INTO client_sessions").
			WithArgs("tsma", kv[0], kv[1], sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), fullSession()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepositoryClear(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()

	repo := NewPostgresSessionRepository(db, "")
	mock.ExpectExec("DELETE FROM client_sessions").
		WithArgs("tsma").
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, repo.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionRepositoryWithoutClient(t *testing.T) {
	repo := NewRedisSessionRepository(nil, "", nil)
	assert.Equal(t, "tsma:session.secret", repo.key(KeySecret))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.NoError(t, repo.Save(context.Background(), fullSession()))
	assert.NoError(t, repo.Clear(context.Background()))
	assert.NoError(t, repo.Close())
}

func TestRedisSessionRepositoryLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	repo := NewRedisSessionRepository(client, "tsma", zap.New(core))
	t.Cleanup(func() { _ = repo.Close() })
	ctx := context.Background()

	_, err := repo.Load(ctx)
	require.Error(t, err)
	require.Error(t, repo.Save(ctx, fullSession()))
	require.Error(t, repo.Clear(ctx))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "redis session load failed", entries[0].Message)
	assert.Equal(t, "redis session save failed", entries[1].Message)
	assert.Equal(t, "redis session clear failed", entries[2].Message)
	assert.Equal(t, "tsma", entries[0].ContextMap()["namespace"])
}

