package auth

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	SESSION_NAME  = "carddemo-session"
	KEY_USER_ID   = "userId"
	KEY_USER_TYPE = "userType"
)

// SessionStore keeps the two session flags in a signed browser cookie. The
// cookie carries no expiry and its signature never ages out, so a session
// ends only at sign-out or when the browser drops it.
type SessionStore struct {
	store sessions.Store
}

func NewSessionStore(secret []byte, secure bool) *SessionStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(0)
	return &SessionStore{store: store}
}

// Load returns nil when the request carries no valid session.
func (s *SessionStore) Load(r *http.Request) *Session {
	session, err := s.store.Get(r, SESSION_NAME)
	if err != nil || session.IsNew {
		return nil
	}
	userID, ok := session.Values[KEY_USER_ID].(string)
	if !ok || userID == "" {
		return nil
	}
	userType, _ := session.Values[KEY_USER_TYPE].(string)
	role, err := ParseRole(userType)
	if err != nil {
		return nil
	}
	return &Session{UserID: userID, Role: role}
}

func (s *SessionStore) Save(w http.ResponseWriter, r *http.Request, current Session) error {
	// A tampered or stale cookie still yields a usable new session.
	session, _ := s.store.Get(r, SESSION_NAME)
	session.Values[KEY_USER_ID] = current.UserID
	session.Values[KEY_USER_TYPE] = string(current.Role)
	session.Options.MaxAge = 0
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, SESSION_NAME)
	delete(session.Values, KEY_USER_ID)
	delete(session.Values, KEY_USER_TYPE)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
