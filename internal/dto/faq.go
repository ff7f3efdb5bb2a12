package dto

// FAQResponseDTO is the wire shape of an assignment FAQ.
type FAQResponseDTO struct {
	ID           string `json:"id" validate:"required"`
	AssignmentID string `json:"assignmentID"`
	LessonID     string `json:"lessonID"`
	Question     string `json:"question" validate:"required"`
	Answer       string `json:"answer"`
	LastEditedOn string `json:"lastEditedOn" validate:"required"`
	LastEditedBy string `json:"lastEditedBy"`
}

// FAQRequestDTO is the body of POST /faq.
type FAQRequestDTO struct {
	AssignmentID string `json:"assignmentID" validate:"required"`
	Question     string `json:"question" validate:"required"`
	Answer       string `json:"answer"`
}
