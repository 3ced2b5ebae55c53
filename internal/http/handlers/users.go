package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mediumhub/internal/db"
	"mediumhub/internal/security"
	"mediumhub/internal/web"
)

type UserHandler struct {
	db       *db.DB
	renderer *web.Renderer
}

func NewUserHandler(db *db.DB, renderer *web.Renderer) *UserHandler {
	return &UserHandler{db: db, renderer: renderer}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, ident *security.Identity) {
	requester, err := h.db.GetUserByID(ident.UserID)
	if err != nil {
		log.Printf("Error getting user by ID: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	users, err := h.db.GetAllUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, "users", map[string]any{
		"User":           requester,
		"Users":          users,
		"Errors":         nil,
		"SuccessMessage": "",
	})
}

// TogglePremium flips the target user's premium flag. The requester must
// be the target, or an admin.
func (h *UserHandler) TogglePremium(w http.ResponseWriter, r *http.Request, ident *security.Identity) {
	targetID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	allowed, err := canActOn(h.db, ident, targetID)
	if err != nil {
		log.Printf("Error checking admin status: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !allowed {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	user, err := h.db.GetUserByID(targetID)
	if err != nil {
		log.Printf("Error toggling premium status: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if err := h.db.SetUserPremium(targetID, !user.IsPremium); err != nil {
		log.Printf("Error toggling premium status: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
