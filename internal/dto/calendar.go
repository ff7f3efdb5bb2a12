package dto

// CalendarEntryResponseDTO is one day returned by the calendar endpoints.
type CalendarEntryResponseDTO struct {
	ID                string                  `json:"id" validate:"required"`
	Date              string                  `json:"date" validate:"required"`
	Holiday           bool                    `json:"holiday"`
	LessonID          *string                 `json:"lessonID,omitempty"`
	LessonName        *string                 `json:"lessonName,omitempty"`
	MainObjective     *string                 `json:"mainObjective,omitempty"`
	ReadingDue        *string                 `json:"readingDue,omitempty"`
	AssignmentsDue    []AssignmentResponseDTO `json:"assignmentsDue" validate:"dive"`
	NewAssignments    []AssignmentResponseDTO `json:"newAssignments" validate:"dive"`
	CodeChallengeName *string                 `json:"codeChallengeName,omitempty"`
	WordOfTheDay      *string                 `json:"wordOfTheDay,omitempty"`
}
