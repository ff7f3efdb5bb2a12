package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tsma-calendar-client/internal/dto"
	"github.com/noah-isme/tsma-calendar-client/internal/models"
	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
)

const (
	sessionEventLogin   = "login"
	sessionEventLogout  = "logout"
	sessionEventRestore = "restore"
)

// SessionRepository persists the session between process runs.
type SessionRepository interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

// SessionService is the single source of truth for who is signed in.
// Every mutation is persisted before the in-memory copy changes; Logout
// still clears memory when storage cannot be written.
type SessionService struct {
	mu      sync.RWMutex
	session models.Session

	repo          SessionRepository
	exec          *Executor
	converter     *Converter
	validator     *validator.Validate
	metrics       *MetricsService
	logger        *zap.Logger
	defaultCohort string
}

// NewSessionService constructs a logged-out session service.
func NewSessionService(repo SessionRepository, exec *Executor, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, defaultCohort string) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SessionService{
		session:       models.Session{CohortID: defaultCohort},
		repo:          repo,
		exec:          exec,
		converter:     NewConverter(),
		validator:     validate,
		metrics:       metrics,
		logger:        logger,
		defaultCohort: defaultCohort,
	}
}

// Restore loads the persisted session. Missing or unreadable state leaves the
// session logged out; it never fails.
func (s *SessionService) Restore(ctx context.Context) {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to restore session", zap.Error(err))
		return
	}
	if stored == nil {
		return
	}

	restored := *stored
	if restored.CohortID == "" {
		restored.CohortID = s.defaultCohort
	}

	s.mu.Lock()
	s.session = restored
	s.mu.Unlock()

	s.metrics.RecordSessionEvent(sessionEventRestore)
	s.logger.Debug("session restored", zap.Bool("authenticated", restored.IsAuthenticated()), zap.String("cohort", restored.CohortID))
}

// Login sends the credentials, persists the returned token and identity and
// returns the identity. A failed login leaves the current session untouched.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	req := models.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	res, err := Execute[dto.LoginResponseDTO](ctx, s.exec, Request{
		Method:   http.MethodPost,
		Path:     "/auth/login",
		FormBody: url.Values{"email": {req.Email}, "password": {req.Password}},
		Label:    "auth_login",
	})
	if err != nil {
		s.logger.Info("login failed", zap.String("email", req.Email), zap.String("code", appErrors.FromError(err).Code))
		return nil, err
	}

	identity := s.converter.Identity(res)

	// The round trip completed; persist even if the caller gives up now so
	// disk and memory never disagree.
	persistCtx := context.WithoutCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := models.Session{
		AuthToken: res.Secret,
		CohortID:  s.session.CohortID,
		Identity:  &identity,
	}
	if next.CohortID == "" {
		next.CohortID = s.defaultCohort
	}
	if err := s.repo.Save(persistCtx, next); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.session = next

	s.metrics.RecordSessionEvent(sessionEventLogin)
	s.logger.Info("logged in", zap.String("email", identity.Email))
	return &identity, nil
}

// Logout clears the session in storage, then in memory. It is idempotent.
// When the stored keys cannot be cleared a logged-out session is written over
// them instead; memory is cleared even when both writes fail, and that error
// is returned.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loggedOut := models.Session{CohortID: s.defaultCohort}
	persistCtx := context.WithoutCancel(ctx)

	var persistErr error
	if err := s.repo.Clear(persistCtx); err != nil {
		s.logger.Warn("failed to clear persisted session", zap.Error(err))
		if saveErr := s.repo.Save(persistCtx, loggedOut); saveErr != nil {
			persistErr = fmt.Errorf("clear persisted session: %w", errors.Join(err, saveErr))
		}
	}

	s.session = loggedOut
	s.metrics.RecordSessionEvent(sessionEventLogout)
	return persistErr
}

// SetCohort switches the cohort used for calendar and assignment queries.
func (s *SessionService) SetCohort(ctx context.Context, cohort string) error {
	cohort = strings.TrimSpace(cohort)
	if cohort == "" {
		return appErrors.Clone(appErrors.ErrValidation, "cohort is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.session
	next.CohortID = cohort
	if err := s.repo.Save(context.WithoutCancel(ctx), next); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.session = next
	return nil
}

// IsAuthenticated reports whether a token is held.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated()
}

// Token returns the current auth token, empty when logged out.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AuthToken
}

// Snapshot returns a copy of the current session.
func (s *SessionService) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.session
	if s.session.Identity != nil {
		identity := *s.session.Identity
		snapshot.Identity = &identity
	}
	return snapshot
}
