package repository

import (
	"github.com/noah-isme/tsma-calendar-client/internal/models"
)

// Fixed keys under which the session is persisted.
const (
	KeySecret      = "session.secret"
	KeyCohort      = "session.cohort"
	KeyEmail       = "session.email"
	KeyDisplayName = "session.display_name"
)

// SessionKeys lists every persisted key.
var SessionKeys = []string{KeySecret, KeyCohort, KeyEmail, KeyDisplayName}

// sessionValues flattens a session into its persisted key/value pairs.
// Empty values are omitted so callers can delete those keys.
func sessionValues(s models.Session) map[string]string {
	values := make(map[string]string, len(SessionKeys))
	if s.AuthToken != "" {
		values[KeySecret] = s.AuthToken
	}
	if s.CohortID != "" {
		values[KeyCohort] = s.CohortID
	}
	if s.Identity != nil {
		if s.Identity.Email != "" {
			values[KeyEmail] = s.Identity.Email
		}
		if s.Identity.DisplayName != "" {
			values[KeyDisplayName] = s.Identity.DisplayName
		}
	}
	return values
}

// sessionFromValues rebuilds a session; it returns nil when nothing was stored.
func sessionFromValues(values map[string]string) *models.Session {
	if len(values) == 0 {
		return nil
	}
	s := &models.Session{
		AuthToken: values[KeySecret],
		CohortID:  values[KeyCohort],
	}
	email, name := values[KeyEmail], values[KeyDisplayName]
	if email != "" || name != "" {
		s.Identity = &models.Identity{Email: email, DisplayName: name}
	}
	if s.IsEmpty() {
		return nil
	}
	return s
}
