package dto

// AssignmentResponseDTO is the wire shape of an assignment. Calendar
// responses omit the description, progress and FAQs; detail responses
// include the description and whatever was requested.
type AssignmentResponseDTO struct {
	ID             string           `json:"id,omitempty"`
	AssignmentID   string           `json:"assignmentID,omitempty"`
	Name           string           `json:"name,omitempty" validate:"required_without=AssignmentID"`
	DueOn          *string          `json:"dueOn"`
	LessonID       *string          `json:"lessonID,omitempty"`
	AssignmentType string           `json:"assignmentType"`
	Description    *string          `json:"description,omitempty"`
	Progress       *string          `json:"progress,omitempty"`
	CompletedOn    *string          `json:"completedOn,omitempty"`
	FAQs           []FAQResponseDTO `json:"faqs,omitempty" validate:"omitempty,dive"`
}

// ProgressRequestDTO is the body of POST /assignment/progress.
type ProgressRequestDTO struct {
	AssignmentID string `json:"assignmentID" validate:"required"`
	Progress     string `json:"progress" validate:"required,oneof=notStarted inProgress complete"`
}

// DeleteProgressRequestDTO is the body of DELETE /assignment/progress.
type DeleteProgressRequestDTO struct {
	AssignmentID string `json:"assignmentID" validate:"required"`
}
