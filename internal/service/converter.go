package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/tsma-calendar-client/internal/dto"
	"github.com/noah-isme/tsma-calendar-client/internal/models"
	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
)

// Converter maps wire DTOs into domain records. It is the only place that
// knows which optional fields each endpoint populates.
type Converter struct{}

// NewConverter constructs a Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Identity builds the signed-in identity from a login response.
func (c *Converter) Identity(res dto.LoginResponseDTO) models.Identity {
	display := strings.TrimSpace(strings.TrimSpace(res.FirstName) + " " + strings.TrimSpace(res.LastName))
	if display == "" {
		display = res.UserName
	}
	if display == "" {
		display = res.Email
	}
	return models.Identity{
		Email:       res.Email,
		DisplayName: display,
		FirstName:   res.FirstName,
		LastName:    res.LastName,
		UserName:    res.UserName,
		UserID:      res.UserUUID,
	}
}

// CalendarEntry converts one calendar day.
func (c *Converter) CalendarEntry(res dto.CalendarEntryResponseDTO) (models.CalendarEntry, error) {
	date, err := parseDate("date", res.Date)
	if err != nil {
		return models.CalendarEntry{}, err
	}
	due, err := c.summaries("assignmentsDue", res.AssignmentsDue)
	if err != nil {
		return models.CalendarEntry{}, err
	}
	created, err := c.summaries("newAssignments", res.NewAssignments)
	if err != nil {
		return models.CalendarEntry{}, err
	}
	return models.CalendarEntry{
		ID:                res.ID,
		Date:              date,
		IsHoliday:         res.Holiday,
		LessonID:          res.LessonID,
		LessonName:        res.LessonName,
		MainObjective:     res.MainObjective,
		ReadingDue:        res.ReadingDue,
		AssignmentsDue:    due,
		NewAssignments:    created,
		CodeChallengeName: res.CodeChallengeName,
		WordOfTheDay:      res.WordOfTheDay,
	}, nil
}

// CalendarEntries converts a range of days, ordered by date with one entry per day.
// The first entry the server sent for a day wins.
func (c *Converter) CalendarEntries(res []dto.CalendarEntryResponseDTO) ([]models.CalendarEntry, error) {
	entries := make([]models.CalendarEntry, 0, len(res))
	seen := make(map[string]struct{}, len(res))
	for i := range res {
		entry, err := c.CalendarEntry(res[i])
		if err != nil {
			return nil, fmt.Errorf("calendar entry %d: %w", i, err)
		}
		if _, dup := seen[entry.Day()]; dup {
			continue
		}
		seen[entry.Day()] = struct{}{}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

// AssignmentSummary converts the calendar-context shape.
func (c *Converter) AssignmentSummary(res dto.AssignmentResponseDTO) (models.AssignmentSummary, error) {
	due, err := parseOptionalDate("dueOn", res.DueOn)
	if err != nil {
		return models.AssignmentSummary{}, err
	}
	completed, err := parseOptionalDate("completedOn", res.CompletedOn)
	if err != nil {
		return models.AssignmentSummary{}, err
	}
	name := res.Name
	if name == "" {
		name = res.AssignmentID
	}
	return models.AssignmentSummary{
		ID:             res.ID,
		Name:           name,
		DueDate:        due,
		LessonID:       res.LessonID,
		Type:           models.ParseAssignmentType(res.AssignmentType),
		CompletionDate: completed,
	}, nil
}

// Assignment converts the detail shape. The description is required here;
// FAQs are an empty slice rather than nil whenever they were requested.
func (c *Converter) Assignment(res dto.AssignmentResponseDTO, includeFAQs bool) (models.Assignment, error) {
	summary, err := c.AssignmentSummary(res)
	if err != nil {
		return models.Assignment{}, err
	}
	if res.Description == nil {
		return models.Assignment{}, appErrors.DecodingError(errors.New("description: missing from assignment detail"))
	}

	progress := models.ProgressNotStarted
	if summary.IsCompleted() {
		progress = models.ProgressComplete
	}
	if res.Progress != nil && *res.Progress != "" {
		parsed := models.ProgressState(*res.Progress)
		if !parsed.Valid() {
			return models.Assignment{}, appErrors.DecodingError(fmt.Errorf("progress: unknown state %q", *res.Progress))
		}
		progress = parsed
	}

	var faqs []models.FAQ
	if res.FAQs != nil || includeFAQs {
		faqs = make([]models.FAQ, 0, len(res.FAQs))
		for i := range res.FAQs {
			faq, err := c.FAQ(res.FAQs[i])
			if err != nil {
				return models.Assignment{}, err
			}
			faqs = append(faqs, faq)
		}
	}

	return models.Assignment{
		AssignmentSummary: summary,
		Description:       *res.Description,
		Progress:          progress,
		FAQs:              faqs,
	}, nil
}

// Assignments converts a list of detail shapes.
func (c *Converter) Assignments(res []dto.AssignmentResponseDTO, includeFAQs bool) ([]models.Assignment, error) {
	out := make([]models.Assignment, 0, len(res))
	for i := range res {
		assignment, err := c.Assignment(res[i], includeFAQs)
		if err != nil {
			return nil, fmt.Errorf("assignment %d: %w", i, err)
		}
		out = append(out, assignment)
	}
	return out, nil
}

// FAQ converts a single FAQ.
func (c *Converter) FAQ(res dto.FAQResponseDTO) (models.FAQ, error) {
	edited, err := parseDate("lastEditedOn", res.LastEditedOn)
	if err != nil {
		return models.FAQ{}, err
	}
	return models.FAQ{
		ID:           res.ID,
		AssignmentID: res.AssignmentID,
		LessonID:     res.LessonID,
		Question:     res.Question,
		Answer:       res.Answer,
		LastEditedOn: edited,
		LastEditedBy: res.LastEditedBy,
	}, nil
}

// LessonOutline converts a lesson outline.
func (c *Converter) LessonOutline(res dto.LessonOutlineResponseDTO) (models.LessonOutline, error) {
	assignments, err := c.summaries("assignments", res.Assignments)
	if err != nil {
		return models.LessonOutline{}, err
	}
	objectives := res.Objectives
	if objectives == nil {
		objectives = []string{}
	}
	outline := ""
	if res.Outline != nil {
		outline = *res.Outline
	}
	return models.LessonOutline{
		LessonID:      res.LessonID,
		LessonName:    res.LessonName,
		MainObjective: res.MainObjective,
		Objectives:    objectives,
		ReadingDue:    res.ReadingDue,
		Outline:       outline,
		Assignments:   assignments,
	}, nil
}

func (c *Converter) summaries(field string, res []dto.AssignmentResponseDTO) ([]models.AssignmentSummary, error) {
	out := make([]models.AssignmentSummary, 0, len(res))
	for i := range res {
		summary, err := c.AssignmentSummary(res[i])
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, summary)
	}
	return out, nil
}

// parseDate parses an ISO-8601 timestamp; fractional seconds are optional.
func parseDate(field, raw string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, appErrors.DecodingError(fmt.Errorf("%s: %w", field, err))
	}
	return ts, nil
}

// parseOptionalDate treats a missing or blank value as absent.
func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	ts, err := parseDate(field, *raw)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
