package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tsma-calendar-client/internal/dto"
	"github.com/noah-isme/tsma-calendar-client/internal/models"
	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
)

type sessionManager interface {
	Login(ctx context.Context, email, password string) (*models.Identity, error)
	Snapshot() models.Session
}

// APIService exposes the calendar service endpoints as typed calls.
type APIService struct {
	exec      *Executor
	session   sessionManager
	converter *Converter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAPIService constructs an APIService.
func NewAPIService(exec *Executor, session sessionManager, validate *validator.Validate, logger *zap.Logger) *APIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &APIService{
		exec:      exec,
		session:   session,
		converter: NewConverter(),
		validator: validate,
		logger:    logger,
	}
}

// Login authenticates and stores the session.
func (s *APIService) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	return s.session.Login(ctx, email, password)
}

// FetchToday returns today's calendar entry for the session cohort.
func (s *APIService) FetchToday(ctx context.Context) (*models.CalendarEntry, error) {
	snap := s.session.Snapshot()
	res, err := Execute[dto.CalendarEntryResponseDTO](ctx, s.exec, s.authed(snap, Request{
		Path:  "/calendar/today",
		Query: url.Values{"cohort": {snap.CohortID}},
		Label: "calendar_today",
	}))
	if err != nil {
		return nil, err
	}
	entry, err := s.converter.CalendarEntry(res)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FetchAllCalendarEntries returns every calendar day for the session cohort.
func (s *APIService) FetchAllCalendarEntries(ctx context.Context) ([]models.CalendarEntry, error) {
	snap := s.session.Snapshot()
	res, err := Execute[[]dto.CalendarEntryResponseDTO](ctx, s.exec, s.authed(snap, Request{
		Path:  "/calendar/all",
		Query: url.Values{"cohort": {snap.CohortID}},
		Label: "calendar_all",
	}))
	if err != nil {
		return nil, err
	}
	return s.converter.CalendarEntries(res)
}

// FetchAllAssignments lists the cohort's assignments.
func (s *APIService) FetchAllAssignments(ctx context.Context, includeProgress, includeFAQs bool) ([]models.Assignment, error) {
	snap := s.session.Snapshot()
	res, err := Execute[[]dto.AssignmentResponseDTO](ctx, s.exec, s.authed(snap, Request{
		Path: "/assignment/all",
		Query: url.Values{
			"cohort":          {snap.CohortID},
			"includeProgress": {strconv.FormatBool(includeProgress)},
			"includeFAQs":     {strconv.FormatBool(includeFAQs)},
		},
		Label: "assignment_all",
	}))
	if err != nil {
		return nil, err
	}
	return s.converter.Assignments(res, includeFAQs)
}

// FetchAssignment returns one assignment in detail.
func (s *APIService) FetchAssignment(ctx context.Context, id string, includeProgress, includeFAQs bool) (*models.Assignment, error) {
	if err := s.requireID("assignment id", id); err != nil {
		return nil, err
	}
	snap := s.session.Snapshot()
	res, err := Execute[dto.AssignmentResponseDTO](ctx, s.exec, s.authed(snap, Request{
		Path: "/assignment/" + url.PathEscape(id),
		Query: url.Values{
			"includeProgress": {strconv.FormatBool(includeProgress)},
			"includeFAQs":     {strconv.FormatBool(includeFAQs)},
		},
		Label: "assignment_detail",
	}))
	if err != nil {
		return nil, err
	}
	assignment, err := s.converter.Assignment(res, includeFAQs)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// SubmitAssignmentProgress records the user's progress and returns the updated assignment.
func (s *APIService) SubmitAssignmentProgress(ctx context.Context, id string, progress models.ProgressState) (*models.Assignment, error) {
	body := dto.ProgressRequestDTO{AssignmentID: strings.TrimSpace(id), Progress: string(progress)}
	if err := s.validate(body, "invalid progress payload"); err != nil {
		return nil, err
	}
	snap := s.session.Snapshot()
	res, err := Execute[dto.AssignmentResponseDTO](ctx, s.exec, s.authed(snap, Request{
		Method:   http.MethodPost,
		Path:     "/assignment/progress",
		JSONBody: body,
		Label:    "assignment_progress_submit",
	}))
	if err != nil {
		return nil, err
	}
	assignment, err := s.converter.Assignment(res, false)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// DeleteAssignmentProgress resets the user's progress on an assignment.
func (s *APIService) DeleteAssignmentProgress(ctx context.Context, id string) error {
	body := dto.DeleteProgressRequestDTO{AssignmentID: strings.TrimSpace(id)}
	if err := s.validate(body, "invalid progress payload"); err != nil {
		return err
	}
	snap := s.session.Snapshot()
	return ExecuteVoid(ctx, s.exec, s.authed(snap, Request{
		Method:   http.MethodDelete,
		Path:     "/assignment/progress",
		JSONBody: body,
		Label:    "assignment_progress_delete",
	}))
}

// SubmitFAQ adds a question (and optionally its answer) to an assignment.
func (s *APIService) SubmitFAQ(ctx context.Context, assignmentID, question, answer string) error {
	body := dto.FAQRequestDTO{
		AssignmentID: strings.TrimSpace(assignmentID),
		Question:     strings.TrimSpace(question),
		Answer:       strings.TrimSpace(answer),
	}
	if err := s.validate(body, "invalid faq payload"); err != nil {
		return err
	}
	snap := s.session.Snapshot()
	return ExecuteVoid(ctx, s.exec, s.authed(snap, Request{
		Method:   http.MethodPost,
		Path:     "/faq",
		JSONBody: body,
		Label:    "faq_submit",
	}))
}

// FetchLessonOutline returns the outline of a lesson.
func (s *APIService) FetchLessonOutline(ctx context.Context, lessonID string) (*models.LessonOutline, error) {
	if err := s.requireID("lesson id", lessonID); err != nil {
		return nil, err
	}
	snap := s.session.Snapshot()
	res, err := Execute[dto.LessonOutlineResponseDTO](ctx, s.exec, s.authed(snap, Request{
		Path:  "/lesson/" + url.PathEscape(lessonID),
		Label: "lesson_outline",
	}))
	if err != nil {
		return nil, err
	}
	outline, err := s.converter.LessonOutline(res)
	if err != nil {
		return nil, err
	}
	return &outline, nil
}

// SubmitLessonFeedback sends free-text feedback about a lesson.
func (s *APIService) SubmitLessonFeedback(ctx context.Context, lessonID, feedback string) error {
	body := dto.LessonFeedbackRequestDTO{LessonID: strings.TrimSpace(lessonID), Feedback: strings.TrimSpace(feedback)}
	if err := s.validate(body, "invalid feedback payload"); err != nil {
		return err
	}
	snap := s.session.Snapshot()
	return ExecuteVoid(ctx, s.exec, s.authed(snap, Request{
		Method:   http.MethodPost,
		Path:     "/lesson/feedback",
		JSONBody: body,
		Label:    "lesson_feedback",
	}))
}

// authed marks req as authenticated with the token captured in snap.
func (s *APIService) authed(snap models.Session, req Request) Request {
	req.RequiresAuth = true
	req.Token = snap.AuthToken
	return req
}

func (s *APIService) validate(payload interface{}, message string) error {
	if err := s.validator.Struct(payload); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	return nil
}

func (s *APIService) requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return appErrors.Clone(appErrors.ErrValidation, field+" is required")
	}
	return nil
}
