package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tsma-calendar-client/internal/fixture"
	"github.com/noah-isme/tsma-calendar-client/internal/models"
	"github.com/noah-isme/tsma-calendar-client/internal/repository"
	"github.com/noah-isme/tsma-calendar-client/internal/service"
	"github.com/noah-isme/tsma-calendar-client/internal/transport"
	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
)

func newFixtureClient(t *testing.T, repo service.SessionRepository) (*service.APIService, *service.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := fixture.NewStore(fixture.DefaultSeed(), fixture.StoreOptions{HashCost: bcrypt.MinCost})
	require.NoError(t, err)
	router, err := fixture.New(fixture.Options{Store: store, TokenSecret: "test-secret", TokenTTL: time.Hour})
	require.NoError(t, err)

	exec := service.NewExecutor("http://fixture.local", transport.NewHandler(router), nil, service.NewMetricsService(), nil)
	session := service.NewSessionService(repo, exec, nil, nil, nil, "fall2025")
	return service.NewAPIService(exec, session, nil, nil), session
}

func TestFixtureEndToEnd(t *testing.T) {
	repo, err := repository.NewBoltSessionRepository(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	api, session := newFixtureClient(t, repo)
	ctx := context.Background()

	_, err = api.FetchToday(ctx)
	require.True(t, appErrors.Is(err, appErrors.ErrNotAuthenticated))

	identity, err := api.Login(ctx, "student@tsma.test", "mountainland")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", identity.DisplayName)

	today, err := api.FetchToday(ctx)
	require.NoError(t, err)
	require.Len(t, today.NewAssignments, 1)
	assert.Nil(t, today.NewAssignments[0].DueDate)
	assert.Equal(t, models.AssignmentLab, today.NewAssignments[0].Type.Kind)

	entries, err := api.FetchAllCalendarEntries(ctx)
	require.NoError(t, err)
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i-1].Date.Before(entries[i].Date))
	}

	all, err := api.FetchAllAssignments(ctx, true, true)
	require.NoError(t, err)
	var peerReview *models.Assignment
	for i := range all {
		assert.NotNil(t, all[i].FAQs)
		if all[i].ID == "asg-peer-review" {
			peerReview = &all[i]
		}
	}
	require.NotNil(t, peerReview)
	assert.True(t, peerReview.Type.IsUnknown())

	updated, err := api.SubmitAssignmentProgress(ctx, "asg-fizzbuzz", models.ProgressComplete)
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted())

	fetched, err := api.FetchAssignment(ctx, "asg-fizzbuzz", true, true)
	require.NoError(t, err)
	assert.True(t, fetched.IsCompleted())
	assert.Len(t, fetched.FAQs, 1)

	for _, state := range []models.ProgressState{models.ProgressInProgress, models.ProgressNotStarted, models.ProgressComplete, models.ProgressInProgress} {
		updated, err = api.SubmitAssignmentProgress(ctx, "asg-fizzbuzz", state)
		require.NoError(t, err, state)
		assert.Equal(t, state, updated.Progress)
		assert.Equal(t, state == models.ProgressComplete, updated.IsCompleted(), state)

		fetched, err = api.FetchAssignment(ctx, "asg-fizzbuzz", true, false)
		require.NoError(t, err, state)
		assert.Equal(t, state == models.ProgressComplete, fetched.IsCompleted(), state)
	}

	require.NoError(t, api.SubmitFAQ(ctx, "asg-fizzbuzz", "Can I use a switch?", ""))
	require.NoError(t, api.SubmitLessonFeedback(ctx, "lesson-control-flow", "Loved it"))

	outline, err := api.FetchLessonOutline(ctx, "lesson-control-flow")
	require.NoError(t, err)
	assert.Equal(t, "Control Flow", outline.LessonName)

	_, err = api.FetchAssignment(ctx, "does-not-exist", false, false)
	assert.Equal(t, 404, appErrors.StatusCode(err))

	// A fresh client on the same storage starts signed in.
	restoredAPI, restored := newFixtureClient(t, repo)
	restored.Restore(ctx)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, session.Token(), restored.Token())
	_, err = restoredAPI.FetchToday(ctx)
	require.NoError(t, err)

	require.NoError(t, restored.Logout(ctx))
	has, err := repo.Has(repository.KeySecret)
	require.NoError(t, err)
	assert.False(t, has)
}
