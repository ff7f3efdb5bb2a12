package models

// Session is the authenticated identity and token held for the client's lifetime.
// An empty AuthToken means no user is signed in.
type Session struct {
	AuthToken string    `json:"-"`
	CohortID  string    `json:"cohort_id"`
	Identity  *Identity `json:"identity,omitempty"`
}

// IsAuthenticated reports whether a token is present.
func (s Session) IsAuthenticated() bool {
	return s.AuthToken != ""
}

// IsEmpty reports a session with nothing worth persisting.
func (s Session) IsEmpty() bool {
	return s.AuthToken == "" && s.CohortID == "" && s.Identity == nil
}
