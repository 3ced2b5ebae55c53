package handlers

import (
	"log"
	"net/http"

	"mediumhub/internal/db"
	"mediumhub/internal/security"
)

// HandlerWithIdentity is a handler that runs with a resolved session identity.
type HandlerWithIdentity func(http.ResponseWriter, *http.Request, *security.Identity)

type Middleware struct {
	db       *db.DB
	sessions *security.SessionStore
}

func NewMiddleware(db *db.DB, sessions *security.SessionStore) *Middleware {
	return &Middleware{db: db, sessions: sessions}
}

// RequireLogin resolves the session for the request. Absence of a valid
// session redirects to the login page rather than erroring.
func (m *Middleware) RequireLogin(next HandlerWithIdentity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident := m.sessions.Current(r)
		if ident == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, ident)
	}
}

// RequireAdmin additionally re-queries the requester's admin flag on every
// request, so revoking admin rights takes effect mid-session.
func (m *Middleware) RequireAdmin(next HandlerWithIdentity) http.HandlerFunc {
	return m.RequireLogin(func(w http.ResponseWriter, r *http.Request, ident *security.Identity) {
		isAdmin, err := m.db.IsAdmin(ident.UserID)
		if err != nil {
			log.Printf("Error checking admin status: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if !isAdmin {
			http.Error(w, "Forbidden - You are not an admin.", http.StatusForbidden)
			return
		}
		next(w, r, ident)
	})
}

// canActOn reports whether the requester may mutate state belonging to the
// target user: the requester is the target, or holds a re-queried admin flag.
func canActOn(db *db.DB, ident *security.Identity, targetID int) (bool, error) {
	if ident.UserID == targetID {
		return true, nil
	}
	return db.IsAdmin(ident.UserID)
}
