package models

import "time"

// CalendarEntry is one school day of the cohort calendar.
type CalendarEntry struct {
	ID                string              `json:"id"`
	Date              time.Time           `json:"date"`
	IsHoliday         bool                `json:"is_holiday"`
	LessonID          *string             `json:"lesson_id,omitempty"`
	LessonName        *string             `json:"lesson_name,omitempty"`
	MainObjective     *string             `json:"main_objective,omitempty"`
	ReadingDue        *string             `json:"reading_due,omitempty"`
	AssignmentsDue    []AssignmentSummary `json:"assignments_due"`
	NewAssignments    []AssignmentSummary `json:"new_assignments"`
	CodeChallengeName *string             `json:"code_challenge_name,omitempty"`
	WordOfTheDay      *string             `json:"word_of_the_day,omitempty"`
}

// Day returns the calendar day key used to keep one entry per date.
func (e CalendarEntry) Day() string {
	return e.Date.Format("2006-01-02")
}
