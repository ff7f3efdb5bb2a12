package dto

// LessonOutlineResponseDTO is returned by GET /lesson/{lessonID}.
type LessonOutlineResponseDTO struct {
	LessonID      string                  `json:"lessonID" validate:"required"`
	LessonName    string                  `json:"lessonName" validate:"required"`
	MainObjective *string                 `json:"mainObjective,omitempty"`
	Objectives    []string                `json:"objectives"`
	ReadingDue    *string                 `json:"readingDue,omitempty"`
	Outline       *string                 `json:"outline,omitempty"`
	Assignments   []AssignmentResponseDTO `json:"assignments" validate:"dive"`
}

// LessonFeedbackRequestDTO is the body of POST /lesson/feedback.
type LessonFeedbackRequestDTO struct {
	LessonID string `json:"lessonID" validate:"required"`
	Feedback string `json:"feedback" validate:"required"`
}
