package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tsma-calendar-client/internal/dto"
	"github.com/noah-isme/tsma-calendar-client/internal/models"
	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
)

//go:embed seed.json
var defaultSeed []byte

// dateLayout is the ISO-8601 form the calendar service emits.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultSeed returns the embedded seed data.
func DefaultSeed() []byte {
	return defaultSeed
}

type seedFile struct {
	Users       []seedUser           `json:"users"`
	Lessons     []seedLesson         `json:"lessons"`
	Assignments []seedAssignment     `json:"assignments"`
	FAQs        []seedFAQ            `json:"faqs"`
	Cohorts     map[string][]seedDay `json:"cohorts"`
}

type seedUser struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
}

type seedLesson struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	MainObjective string   `json:"mainObjective"`
	Objectives    []string `json:"objectives"`
	ReadingDue    string   `json:"readingDue"`
	Outline       string   `json:"outline"`
}

type seedAssignment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	LessonID    string `json:"lessonID"`
	Description string `json:"description"`
	// DueOffset is in days relative to today; nil means no due date.
	DueOffset *int `json:"dueOffset"`
}

type seedFAQ struct {
	ID           string `json:"id"`
	AssignmentID string `json:"assignmentID"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	EditedOffset int    `json:"editedOffset"`
	EditedBy     string `json:"editedBy"`
}

type seedDay struct {
	ID                string   `json:"id"`
	Offset            int      `json:"offset"`
	Holiday           bool     `json:"holiday"`
	LessonID          string   `json:"lessonID"`
	CodeChallengeName string   `json:"codeChallengeName"`
	WordOfTheDay      string   `json:"wordOfTheDay"`
	AssignmentsDue    []string `json:"assignmentsDue"`
	NewAssignments    []string `json:"newAssignments"`
}

// User is an account the fixture server accepts.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	UserName     string
}

// DisplayName returns the user's full name.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type progressRecord struct {
	state       models.ProgressState
	completedOn *time.Time
}

// Feedback is a stored lesson feedback entry.
type Feedback struct {
	UserID    string
	LessonID  string
	Text      string
	CreatedAt time.Time
}

// StoreOptions tunes a Store.
type StoreOptions struct {
	// Now anchors the seed's day offsets; defaults to time.Now.
	Now func() time.Time
	// HashCost is the bcrypt cost for seeded passwords.
	HashCost int
}

// Store is the in-memory data behind the fixture server. Calendar days and
// due dates are relative to the current day so the data never goes stale.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users       map[string]*User
	lessons     map[string]seedLesson
	assignments map[string]seedAssignment
	order       []string
	faqs        []dto.FAQResponseDTO
	cohorts     map[string][]seedDay
	progress    map[string]map[string]progressRecord
	feedback    []Feedback
}

// NewStore parses seed and hashes its passwords.
func NewStore(seed []byte, opts StoreOptions) (*Store, error) {
	var data seedFile
	if err := json.Unmarshal(seed, &data); err != nil {
		return nil, fmt.Errorf("parse fixture seed: %w", err)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}

	s := &Store{
		now:         opts.Now,
		users:       make(map[string]*User, len(data.Users)),
		lessons:     make(map[string]seedLesson, len(data.Lessons)),
		assignments: make(map[string]seedAssignment, len(data.Assignments)),
		cohorts:     data.Cohorts,
		progress:    make(map[string]map[string]progressRecord),
	}
	if s.cohorts == nil {
		s.cohorts = map[string][]seedDay{}
	}

	for _, u := range data.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), opts.HashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		s.users[strings.ToLower(u.Email)] = &User{
			ID:           uuid.NewString(),
			Email:        u.Email,
			PasswordHash: string(hash),
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			UserName:     u.UserName,
		}
	}
	for _, l := range data.Lessons {
		s.lessons[l.ID] = l
	}
	for _, a := range data.Assignments {
		s.assignments[a.ID] = a
		s.order = append(s.order, a.ID)
	}

	today := s.today()
	for _, f := range data.FAQs {
		a, ok := s.assignments[f.AssignmentID]
		if !ok {
			return nil, fmt.Errorf("faq %s references unknown assignment %s", f.ID, f.AssignmentID)
		}
		edited := today.AddDate(0, 0, f.EditedOffset).Add(9 * time.Hour)
		s.faqs = append(s.faqs, dto.FAQResponseDTO{
			ID:           f.ID,
			AssignmentID: f.AssignmentID,
			LessonID:     a.LessonID,
			Question:     f.Question,
			Answer:       f.Answer,
			LastEditedOn: edited.Format(dateLayout),
			LastEditedBy: f.EditedBy,
		})
	}
	return s, nil
}

// Authenticate checks the credentials against the stored bcrypt hash.
func (s *Store) Authenticate(email, password string) (*User, error) {
	s.mu.RLock()
	user, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}
	copied := *user
	return &copied, nil
}

// Today returns the cohort's calendar entry for the current day.
func (s *Store) Today(userID, cohort string) (dto.CalendarEntryResponseDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	days, err := s.cohortDays(cohort)
	if err != nil {
		return dto.CalendarEntryResponseDTO{}, err
	}
	for _, day := range days {
		if day.Offset == 0 {
			return s.entry(userID, day), nil
		}
	}
	return dto.CalendarEntryResponseDTO{}, appErrors.Clone(appErrors.ErrNotFound, "no calendar entry for today")
}

// Calendar returns every calendar entry of the cohort.
func (s *Store) Calendar(userID, cohort string) ([]dto.CalendarEntryResponseDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	days, err := s.cohortDays(cohort)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CalendarEntryResponseDTO, 0, len(days))
	for _, day := range days {
		out = append(out, s.entry(userID, day))
	}
	return out, nil
}

// Assignments lists the assignments that appear on the cohort's calendar.
func (s *Store) Assignments(userID, cohort string, includeProgress, includeFAQs bool) ([]dto.AssignmentResponseDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	days, err := s.cohortDays(cohort)
	if err != nil {
		return nil, err
	}
	inCohort := map[string]struct{}{}
	for _, day := range days {
		for _, id := range day.NewAssignments {
			inCohort[id] = struct{}{}
		}
		for _, id := range day.AssignmentsDue {
			inCohort[id] = struct{}{}
		}
	}
	out := make([]dto.AssignmentResponseDTO, 0, len(inCohort))
	for _, id := range s.order {
		if _, ok := inCohort[id]; !ok {
			continue
		}
		out = append(out, s.detail(userID, s.assignments[id], includeProgress, includeFAQs))
	}
	return out, nil
}

// Assignment returns one assignment in detail.
func (s *Store) Assignment(userID, id string, includeProgress, includeFAQs bool) (dto.AssignmentResponseDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[id]
	if !ok {
		return dto.AssignmentResponseDTO{}, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	return s.detail(userID, a, includeProgress, includeFAQs), nil
}

// SetProgress records the user's progress; complete stamps the completion date.
func (s *Store) SetProgress(userID, id string, state models.ProgressState) (dto.AssignmentResponseDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return dto.AssignmentResponseDTO{}, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	record := progressRecord{state: state}
	if state == models.ProgressComplete {
		completed := s.now().UTC()
		record.completedOn = &completed
	}
	if s.progress[userID] == nil {
		s.progress[userID] = map[string]progressRecord{}
	}
	s.progress[userID][id] = record
	return s.detail(userID, a, true, false), nil
}

// ClearProgress resets the user's progress on an assignment.
func (s *Store) ClearProgress(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignments[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	delete(s.progress[userID], id)
	return nil
}

// AddFAQ attaches a new question to an assignment.
func (s *Store) AddFAQ(editor string, req dto.FAQRequestDTO) (dto.FAQResponseDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[req.AssignmentID]
	if !ok {
		return dto.FAQResponseDTO{}, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	faq := dto.FAQResponseDTO{
		ID:           uuid.NewString(),
		AssignmentID: a.ID,
		LessonID:     a.LessonID,
		Question:     req.Question,
		Answer:       req.Answer,
		LastEditedOn: s.now().UTC().Format(dateLayout),
		LastEditedBy: editor,
	}
	s.faqs = append(s.faqs, faq)
	return faq, nil
}

// LessonOutline returns a lesson with the assignments that belong to it.
func (s *Store) LessonOutline(userID, lessonID string) (dto.LessonOutlineResponseDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lessons[lessonID]
	if !ok {
		return dto.LessonOutlineResponseDTO{}, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}
	out := dto.LessonOutlineResponseDTO{
		LessonID:      l.ID,
		LessonName:    l.Name,
		MainObjective: optional(l.MainObjective),
		Objectives:    append([]string{}, l.Objectives...),
		ReadingDue:    optional(l.ReadingDue),
		Outline:       optional(l.Outline),
		Assignments:   []dto.AssignmentResponseDTO{},
	}
	for _, id := range s.order {
		if a := s.assignments[id]; a.LessonID == lessonID {
			out.Assignments = append(out.Assignments, s.summary(userID, a))
		}
	}
	return out, nil
}

// AddFeedback stores feedback for a lesson.
func (s *Store) AddFeedback(userID string, req dto.LessonFeedbackRequestDTO) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lessons[req.LessonID]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	}
	s.feedback = append(s.feedback, Feedback{
		UserID:    userID,
		LessonID:  req.LessonID,
		Text:      req.Feedback,
		CreatedAt: s.now().UTC(),
	})
	return nil
}

// Feedback returns the feedback stored for a lesson.
func (s *Store) Feedback(lessonID string) []Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Feedback
	for _, f := range s.feedback {
		if f.LessonID == lessonID {
			out = append(out, f)
		}
	}
	return out
}

func (s *Store) cohortDays(cohort string) ([]seedDay, error) {
	if strings.TrimSpace(cohort) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cohort is required")
	}
	days, ok := s.cohorts[cohort]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
	}
	return days, nil
}

func (s *Store) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Store) entry(userID string, day seedDay) dto.CalendarEntryResponseDTO {
	out := dto.CalendarEntryResponseDTO{
		ID:                day.ID,
		Date:              s.today().AddDate(0, 0, day.Offset).Format(dateLayout),
		Holiday:           day.Holiday,
		AssignmentsDue:    s.summaries(userID, day.AssignmentsDue),
		NewAssignments:    s.summaries(userID, day.NewAssignments),
		CodeChallengeName: optional(day.CodeChallengeName),
		WordOfTheDay:      optional(day.WordOfTheDay),
	}
	if lesson, ok := s.lessons[day.LessonID]; ok {
		out.LessonID = optional(lesson.ID)
		out.LessonName = optional(lesson.Name)
		out.MainObjective = optional(lesson.MainObjective)
		out.ReadingDue = optional(lesson.ReadingDue)
	}
	return out
}

func (s *Store) summaries(userID string, ids []string) []dto.AssignmentResponseDTO {
	out := make([]dto.AssignmentResponseDTO, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.assignments[id]; ok {
			out = append(out, s.summary(userID, a))
		}
	}
	return out
}

func (s *Store) summary(userID string, a seedAssignment) dto.AssignmentResponseDTO {
	out := dto.AssignmentResponseDTO{
		ID:             a.ID,
		Name:           a.Name,
		LessonID:       optional(a.LessonID),
		AssignmentType: a.Type,
	}
	if a.DueOffset != nil {
		due := s.today().AddDate(0, 0, *a.DueOffset).Add(23*time.Hour + 59*time.Minute)
		out.DueOn = optional(due.Format(dateLayout))
	}
	if record, ok := s.progress[userID][a.ID]; ok && record.completedOn != nil {
		out.CompletedOn = optional(record.completedOn.Format(dateLayout))
	}
	return out
}

func (s *Store) detail(userID string, a seedAssignment, includeProgress, includeFAQs bool) dto.AssignmentResponseDTO {
	out := s.summary(userID, a)
	description := a.Description
	out.Description = &description
	if includeProgress {
		state := models.ProgressNotStarted
		if record, ok := s.progress[userID][a.ID]; ok {
			state = record.state
		}
		out.Progress = optional(string(state))
	}
	if includeFAQs {
		out.FAQs = []dto.FAQResponseDTO{}
		for _, f := range s.faqs {
			if f.AssignmentID == a.ID {
				out.FAQs = append(out.FAQs, f)
			}
		}
	}
	return out
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
