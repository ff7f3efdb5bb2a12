package models

import (
	"fmt"
	"strings"
	"time"

	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
)

// AssignmentKind enumerates the known assignment categories.
type AssignmentKind string

const (
	AssignmentLab           AssignmentKind = "lab"
	AssignmentProject       AssignmentKind = "project"
	AssignmentCodeChallenge AssignmentKind = "codeChallenge"
	AssignmentVocabQuiz     AssignmentKind = "vocabQuiz"
	AssignmentReading       AssignmentKind = "reading"
)

var assignmentKinds = map[string]AssignmentKind{
	"lab":           AssignmentLab,
	"project":       AssignmentProject,
	"codechallenge": AssignmentCodeChallenge,
	"vocabquiz":     AssignmentVocabQuiz,
	"reading":       AssignmentReading,
}

// AssignmentType is a parsed category. Kind is empty when the server sent a
// value outside the known set; Raw always keeps the original string.
type AssignmentType struct {
	Kind AssignmentKind
	Raw  string
}

// ParseAssignmentType matches raw case-insensitively, ignoring spaces,
// underscores and hyphens. Unrecognised values are kept as unknown.
func ParseAssignmentType(raw string) AssignmentType {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(raw)))
	return AssignmentType{Kind: assignmentKinds[normalized], Raw: raw}
}

// IsUnknown reports a category outside the known set.
func (t AssignmentType) IsUnknown() bool {
	return t.Kind == ""
}

// Display returns the category to present; unknown values show as labs.
func (t AssignmentType) Display() AssignmentKind {
	if t.IsUnknown() {
		return AssignmentLab
	}
	return t.Kind
}

func (t AssignmentType) String() string {
	if t.IsUnknown() {
		return fmt.Sprintf("unknown(%s)", t.Raw)
	}
	return string(t.Kind)
}

// ProgressState is the per-user completion status of an assignment.
type ProgressState string

const (
	ProgressNotStarted ProgressState = "notStarted"
	ProgressInProgress ProgressState = "inProgress"
	ProgressComplete   ProgressState = "complete"
)

// Valid reports whether p is one of the known states.
func (p ProgressState) Valid() bool {
	switch p {
	case ProgressNotStarted, ProgressInProgress, ProgressComplete:
		return true
	}
	return false
}

// ParseProgressState accepts only the exact known values.
func ParseProgressState(raw string) (ProgressState, error) {
	state := ProgressState(raw)
	if !state.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown progress state %q", raw))
	}
	return state, nil
}

// AssignmentSummary is the assignment shape available in every context,
// including calendar days where the body is not sent.
type AssignmentSummary struct {
	ID             string         `json:"id,omitempty"`
	Name           string         `json:"name"`
	DueDate        *time.Time     `json:"due_date,omitempty"`
	LessonID       *string        `json:"lesson_id,omitempty"`
	Type           AssignmentType `json:"-"`
	CompletionDate *time.Time     `json:"completion_date,omitempty"`
}

// IsCompleted reports whether a completion date was recorded.
func (a AssignmentSummary) IsCompleted() bool {
	return a.CompletionDate != nil
}

// IsOverdue reports an incomplete assignment whose due date has passed.
// Assignments without a due date are never overdue.
func (a AssignmentSummary) IsOverdue(now time.Time) bool {
	if a.IsCompleted() || a.DueDate == nil {
		return false
	}
	return a.DueDate.Before(now)
}

// Assignment is the detail shape returned by the assignment endpoints.
// FAQs is nil when they were not requested.
type Assignment struct {
	AssignmentSummary
	Description string        `json:"description"`
	Progress    ProgressState `json:"progress,omitempty"`
	FAQs        []FAQ         `json:"faqs,omitempty"`
}

// FAQ is a question and answer attached to an assignment.
type FAQ struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	LessonID     string    `json:"lesson_id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	LastEditedOn time.Time `json:"last_edited_on"`
	LastEditedBy string    `json:"last_edited_by"`
}
