package security

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// Identity is the authenticated principal carried by a session cookie.
type Identity struct {
	UserID   int
	Username string
}

type SessionStore struct {
	store *sessions.CookieStore
	name  string
}

func NewSessionStore(secret, cookieName string, ttl time.Duration) *SessionStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store, name: cookieName}
}

func (s *SessionStore) SignIn(w http.ResponseWriter, r *http.Request, userID int, username string) error {
	session, _ := s.store.Get(r, s.name)
	session.Values["loggedIn"] = true
	session.Values["userID"] = userID
	session.Values["username"] = username
	return session.Save(r, w)
}

func (s *SessionStore) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, s.name)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// Current returns the identity for the request, or nil when no valid
// session cookie is present.
func (s *SessionStore) Current(r *http.Request) *Identity {
	session, err := s.store.Get(r, s.name)
	if err != nil {
		return nil
	}

	loggedIn, _ := session.Values["loggedIn"].(bool)
	if !loggedIn {
		return nil
	}

	userID, ok := session.Values["userID"].(int)
	if !ok {
		return nil
	}
	username, _ := session.Values["username"].(string)

	return &Identity{UserID: userID, Username: username}
}
