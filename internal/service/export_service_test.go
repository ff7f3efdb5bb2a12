package service

import (
	"context"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
	"github.com/noah-isme/tsma-calendar-client/pkg/export"
	"github.com/noah-isme/tsma-calendar-client/pkg/storage"
)

type calendarSourceStub struct {
	entries     []models.CalendarEntry
	assignments []models.Assignment
	err         error
}

func (s calendarSourceStub) FetchAllCalendarEntries(ctx context.Context) ([]models.CalendarEntry, error) {
	return s.entries, s.err
}

func (s calendarSourceStub) FetchAllAssignments(ctx context.Context, includeProgress, includeFAQs bool) ([]models.Assignment, error) {
	return s.assignments, s.err
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func newExportServiceForTest(t *testing.T, source calendarSource) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewExportService(source, store, zap.NewNop(), export.NewCSVExporter(), export.NewPDFExporter())
	svc.now = func() time.Time { return time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func sampleSource() calendarSourceStub {
	day := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	return calendarSourceStub{
		entries: []models.CalendarEntry{
			{
				ID:             "c-1",
				Date:           day,
				LessonName:     strPtr("Swift Basics"),
				WordOfTheDay:   strPtr("Idempotent"),
				AssignmentsDue: []models.AssignmentSummary{{Name: "Lab 1"}, {Name: "Quiz"}},
			},
			{ID: "c-2", Date: day.AddDate(0, 0, 1), IsHoliday: true},
		},
		assignments: []models.Assignment{
			{
				AssignmentSummary: models.AssignmentSummary{Name: "Lab 1", Type: models.ParseAssignmentType("lab"), DueDate: ptrTime(day)},
				Progress:          models.ProgressInProgress,
			},
			{
				AssignmentSummary: models.AssignmentSummary{Name: "Essay", Type: models.ParseAssignmentType("essay")},
				Progress:          models.ProgressNotStarted,
			},
			{
				AssignmentSummary: models.AssignmentSummary{Name: "Quiz", Type: models.ParseAssignmentType("vocabQuiz"), DueDate: ptrTime(day), CompletionDate: ptrTime(day)},
				Progress:          models.ProgressComplete,
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportServiceCalendarCSV(t *testing.T) {
	svc, _ := newExportServiceForTest(t, sampleSource())

	result, err := svc.Generate(context.Background(), ExportRequest{Kind: ExportCalendar, Format: export.FormatCSV, Label: "fall 2025"})
	require.NoError(t, err)
	assert.Equal(t, "calendar_fall_2025_20250910_120000.csv", result.RelativePath)
	assert.Equal(t, 2, result.Rows)

	records := readCSV(t, result.Path)
	require.Len(t, records, 3)
	assert.Equal(t, "Date", records[0][0])
	assert.Equal(t, []string{"2025-09-01", "Swift Basics", "", "Lab 1; Quiz", "", "", "Idempotent"}, records[1])
	assert.Equal(t, "Holiday", records[2][1])
}

func TestExportServiceAssignmentsCSV(t *testing.T) {
	svc, _ := newExportServiceForTest(t, sampleSource())

	result, err := svc.Generate(context.Background(), ExportRequest{Kind: ExportAssignments, Format: export.FormatCSV, Label: "fall2025"})
	require.NoError(t, err)

	records := readCSV(t, result.Path)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Lab 1", "lab", "2025-09-01", "", "overdue"}, records[1])
	assert.Equal(t, []string{"Essay", "lab", "", "", "notStarted"}, records[2])
	assert.Equal(t, []string{"Quiz", "vocabQuiz", "2025-09-01", "2025-09-01", "complete"}, records[3])
}

func TestExportServiceGeneratePDF(t *testing.T) {
	svc, store := newExportServiceForTest(t, sampleSource())

	result, err := svc.Generate(context.Background(), ExportRequest{Kind: ExportCalendar, Format: export.FormatPDF})
	require.NoError(t, err)
	info, err := os.Stat(store.Path(result.RelativePath))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	f, err := svc.Open(result.RelativePath)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, svc.Delete(result.RelativePath))
	_, err = os.Stat(store.Path(result.RelativePath))
	assert.True(t, os.IsNotExist(err))
}

func TestExportServicePropagatesFetchErrors(t *testing.T) {
	source := calendarSourceStub{err: appErrors.Clone(appErrors.ErrNotAuthenticated, "")}
	svc, _ := newExportServiceForTest(t, source)

	_, err := svc.Generate(context.Background(), ExportRequest{Kind: ExportCalendar, Format: export.FormatCSV})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotAuthenticated))
}

func TestExportServiceRejectsUnknownInput(t *testing.T) {
	svc, _ := newExportServiceForTest(t, sampleSource())

	_, err := svc.Generate(context.Background(), ExportRequest{Kind: "grades", Format: export.FormatCSV})
	assert.Error(t, err)
	_, err = svc.Generate(context.Background(), ExportRequest{Kind: ExportCalendar, Format: "xlsx"})
	assert.Error(t, err)

	_, err = svc.Cleanup(0)
	assert.Error(t, err)

	_, err = ParseExportKind("grades")
	assert.Error(t, err)
	kind, err := ParseExportKind(" Assignments ")
	require.NoError(t, err)
	assert.Equal(t, ExportAssignments, kind)
}

func TestExportServiceCleanup(t *testing.T) {
	svc, store := newExportServiceForTest(t, sampleSource())
	result, err := svc.Generate(context.Background(), ExportRequest{Kind: ExportCalendar, Format: export.FormatCSV})
	require.NoError(t, err)

	past := time.Now().Add(-72 * time.Hour)
	require.NoError(t, os.Chtimes(store.Path(result.RelativePath), past, past))

	deleted, err := svc.Cleanup(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{result.RelativePath}, deleted)
}
