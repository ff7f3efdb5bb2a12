package models

// LessonOutline is the plan for a single lesson.
type LessonOutline struct {
	LessonID      string              `json:"lesson_id"`
	LessonName    string              `json:"lesson_name"`
	MainObjective *string             `json:"main_objective,omitempty"`
	Objectives    []string            `json:"objectives"`
	ReadingDue    *string             `json:"reading_due,omitempty"`
	Outline       string              `json:"outline"`
	Assignments   []AssignmentSummary `json:"assignments"`
}

