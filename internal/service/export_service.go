package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
	"github.com/noah-isme/tsma-calendar-client/pkg/export"
)

// ExportKind selects which records an export contains.
type ExportKind string

const (
	ExportCalendar    ExportKind = "calendar"
	ExportAssignments ExportKind = "assignments"
)

// ParseExportKind accepts calendar or assignments.
func ParseExportKind(raw string) (ExportKind, error) {
	switch k := ExportKind(strings.ToLower(strings.TrimSpace(raw))); k {
	case ExportCalendar, ExportAssignments:
		return k, nil
	default:
		return "", fmt.Errorf("unsupported export kind %q", raw)
	}
}

type calendarSource interface {
	FetchAllCalendarEntries(ctx context.Context) ([]models.CalendarEntry, error)
	FetchAllAssignments(ctx context.Context, includeProgress, includeFAQs bool) ([]models.Assignment, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
	Path(filename string) string
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportRequest describes one export.
type ExportRequest struct {
	Kind   ExportKind
	Format export.Format
	// Label tags the file name, typically the cohort.
	Label string
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Path         string
	Format       export.Format
	Rows         int
}

// ExportService renders calendar records to files.
type ExportService struct {
	source  calendarSource
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(source calendarSource, storage fileStorage, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		source:  source,
		storage: storage,
		csv:     csv,
		pdf:     pdf,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate fetches the records, renders them and stores the file.
func (s *ExportService) Generate(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	dataset, err := s.buildDataset(ctx, req)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch req.Format {
	case export.FormatCSV:
		payload, err = s.csv.Render(dataset)
	case export.FormatPDF:
		payload, err = s.pdf.Render(dataset)
	default:
		err = fmt.Errorf("unsupported format %s", req.Format)
	}
	if err != nil {
		return nil, err
	}

	relPath, err := s.storage.Save(s.buildFilename(req), payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export written", zap.String("kind", string(req.Kind)), zap.String("path", relPath), zap.Int("rows", len(dataset.Rows)))

	return &ExportResult{
		RelativePath: relPath,
		Path:         s.storage.Path(relPath),
		Format:       req.Format,
		Rows:         len(dataset.Rows),
	}, nil
}

// Open returns a handle to a stored export.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes exports older than ttl.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cleanup ttl must be positive")
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(req ExportRequest) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", req.Kind, sanitizeFilename(req.Label), timestamp, req.Format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

func (s *ExportService) buildDataset(ctx context.Context, req ExportRequest) (export.Dataset, error) {
	switch req.Kind {
	case ExportCalendar:
		entries, err := s.source.FetchAllCalendarEntries(ctx)
		if err != nil {
			return export.Dataset{}, err
		}
		return calendarDataset(entries, req.Label), nil
	case ExportAssignments:
		assignments, err := s.source.FetchAllAssignments(ctx, true, false)
		if err != nil {
			return export.Dataset{}, err
		}
		return assignmentDataset(assignments, req.Label, s.now()), nil
	default:
		return export.Dataset{}, fmt.Errorf("unsupported export kind %s", req.Kind)
	}
}

func calendarDataset(entries []models.CalendarEntry, label string) export.Dataset {
	rows := make([]map[string]string, 0, len(entries))
	for _, entry := range entries {
		lesson := deref(entry.LessonName)
		if entry.IsHoliday {
			lesson = "Holiday"
		}
		rows = append(rows, map[string]string{
			"Date":            entry.Day(),
			"Lesson":          lesson,
			"Reading":         deref(entry.ReadingDue),
			"Due":             summaryNames(entry.AssignmentsDue),
			"Assigned":        summaryNames(entry.NewAssignments),
			"Code Challenge":  deref(entry.CodeChallengeName),
			"Word of the Day": deref(entry.WordOfTheDay),
		})
	}
	return export.Dataset{
		Title:   strings.TrimSpace("Calendar " + label),
		Headers: []string{"Date", "Lesson", "Reading", "Due", "Assigned", "Code Challenge", "Word of the Day"},
		Rows:    rows,
	}
}

func assignmentDataset(assignments []models.Assignment, label string, now time.Time) export.Dataset {
	rows := make([]map[string]string, 0, len(assignments))
	for _, a := range assignments {
		status := string(a.Progress)
		if a.IsOverdue(now) {
			status = "overdue"
		}
		rows = append(rows, map[string]string{
			"Name":      a.Name,
			"Type":      string(a.Type.Display()),
			"Due":       formatDate(a.DueDate),
			"Completed": formatDate(a.CompletionDate),
			"Status":    status,
		})
	}
	return export.Dataset{
		Title:   strings.TrimSpace("Assignments " + label),
		Headers: []string{"Name", "Type", "Due", "Completed", "Status"},
		Rows:    rows,
	}
}

func summaryNames(list []models.AssignmentSummary) string {
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	return strings.Join(names, "; ")
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
