package fixture

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tsma-calendar-client/internal/dto"
	"github.com/noah-isme/tsma-calendar-client/internal/service"
)

const (
	studentEmail    = "student@tsma.test"
	studentPassword = "mountainland"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := NewStore(DefaultSeed(), StoreOptions{HashCost: bcrypt.MinCost})
	require.NoError(t, err)
	r, err := New(Options{Store: store, TokenSecret: "test-secret", TokenTTL: time.Hour, Metrics: service.NewMetricsService()})
	require.NoError(t, err)
	return r, store
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	form := url.Values{"email": {studentEmail}, "password": {studentPassword}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.LoginResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Secret)
	return res.Secret
}

func doJSON(r *gin.Engine, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLoginResponseShape(t *testing.T) {
	r, _ := newTestRouter(t)

	form := url.Values{"email": {studentEmail}, "password": {studentPassword}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{"firstName", "lastName", "email", "userUUID", "secret", "userName"} {
		assert.Contains(t, body, key)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	form := url.Values{"email": {studentEmail}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("email=not-an-email"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(r, http.MethodGet, "/calendar/today?cohort=fall2025", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(r, http.MethodGet, "/calendar/today?cohort=fall2025", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := NewTokenIssuer("other-secret", time.Hour)
	forged, _, err := other.Issue(&User{ID: "u-1", Email: studentEmail})
	require.NoError(t, err)
	rec = doJSON(r, http.MethodGet, "/calendar/today?cohort=fall2025", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCalendarToday(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	rec := doJSON(r, http.MethodGet, "/calendar/today?cohort=fall2025", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var entry dto.CalendarEntryResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "day-fall2025-0", entry.ID)
	require.Len(t, entry.NewAssignments, 1)
	assert.Equal(t, "Lab 3", entry.NewAssignments[0].Name)
	assert.Nil(t, entry.NewAssignments[0].DueOn)
	assert.Contains(t, rec.Body.String(), `"dueOn":null`)

	rec = doJSON(r, http.MethodGet, "/calendar/today", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(r, http.MethodGet, "/calendar/today?cohort=winter1999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendarAll(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	rec := doJSON(r, http.MethodGet, "/calendar/all?cohort=fall2025", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []dto.CalendarEntryResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 5)
	assert.True(t, entries[4].Holiday)
}

func TestAssignmentDetailAndProgress(t *testing.T) {
	r, store := newTestRouter(t)
	token := login(t, r)

	rec := doJSON(r, http.MethodGet, "/assignment/asg-fizzbuzz?includeProgress=true&includeFAQs=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail dto.AssignmentResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.NotNil(t, detail.Description)
	require.NotNil(t, detail.Progress)
	assert.Equal(t, "notStarted", *detail.Progress)
	assert.Len(t, detail.FAQs, 1)

	rec = doJSON(r, http.MethodPost, "/assignment/progress", token, dto.ProgressRequestDTO{AssignmentID: "asg-fizzbuzz", Progress: "complete"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.NotNil(t, detail.CompletedOn)

	rec = doJSON(r, http.MethodPost, "/assignment/progress", token, map[string]string{"assignmentID": "asg-fizzbuzz", "progress": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(r, http.MethodDelete, "/assignment/progress", token, dto.DeleteProgressRequestDTO{AssignmentID: "asg-fizzbuzz"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	list, err := store.Assignments("nobody", "fall2025", true, false)
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	rec = doJSON(r, http.MethodGet, "/assignment/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestAssignmentsListScopedToCohort(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	rec := doJSON(r, http.MethodGet, "/assignment/all?cohort=spring2026&includeProgress=false&includeFAQs=false", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []dto.AssignmentResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "asg-playground-lab", list[0].ID)
	assert.Nil(t, list[0].Progress)
}

func TestFAQAndFeedback(t *testing.T) {
	r, store := newTestRouter(t)
	token := login(t, r)

	rec := doJSON(r, http.MethodPost, "/faq", token, dto.FAQRequestDTO{AssignmentID: "asg-lab-3", Question: "When is it due?"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	detail, err := store.Assignment("", "asg-lab-3", false, true)
	require.NoError(t, err)
	require.Len(t, detail.FAQs, 1)
	assert.Equal(t, studentEmail, detail.FAQs[0].LastEditedBy)

	rec = doJSON(r, http.MethodPost, "/faq", token, dto.FAQRequestDTO{AssignmentID: "asg-lab-3"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(r, http.MethodPost, "/lesson/feedback", token, dto.LessonFeedbackRequestDTO{LessonID: "lesson-functions", Feedback: "More closures please"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, store.Feedback("lesson-functions"), 1)

	rec = doJSON(r, http.MethodPost, "/lesson/feedback", token, dto.LessonFeedbackRequestDTO{LessonID: "lesson-missing", Feedback: "?"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLessonOutline(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	rec := doJSON(r, http.MethodGet, "/lesson/lesson-control-flow", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var outline dto.LessonOutlineResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outline))
	assert.Equal(t, "Control Flow", outline.LessonName)
	assert.Len(t, outline.Assignments, 3)
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	rec = doJSON(r, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSwaggerDocs(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(r, http.MethodGet, "/docs/index.html", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(r, http.MethodGet, "/docs/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	for path, methods := range map[string][]string{
		"/auth/login":          {"post"},
		"/calendar/today":      {"get"},
		"/calendar/all":        {"get"},
		"/assignment/all":      {"get"},
		"/assignment/{id}":     {"get"},
		"/assignment/progress": {"post", "delete"},
		"/faq":                 {"post"},
		"/lesson/{lessonID}":   {"get"},
		"/lesson/feedback":     {"post"},
	} {
		require.Contains(t, doc.Paths, path)
		for _, method := range methods {
			assert.Contains(t, doc.Paths[path], method, path)
		}
	}
}

func TestStoreDatesFollowClock(t *testing.T) {
	fixed := time.Date(2025, 9, 10, 15, 0, 0, 0, time.UTC)
	store, err := NewStore(DefaultSeed(), StoreOptions{HashCost: bcrypt.MinCost, Now: func() time.Time { return fixed }})
	require.NoError(t, err)

	entry, err := store.Today("", "fall2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-10T00:00:00.000Z", entry.Date)
	require.Len(t, entry.AssignmentsDue, 1)
	require.NotNil(t, entry.AssignmentsDue[0].DueOn)
	assert.Equal(t, "2025-09-10T23:59:00.000Z", *entry.AssignmentsDue[0].DueOn)
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	token, expires, err := issuer.Issue(&User{ID: "u-1", Email: studentEmail})
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.ValidateToken(token)
	assert.Error(t, err)
}
