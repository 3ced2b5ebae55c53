package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"mediumhub/internal/db"
	"mediumhub/internal/models"
	"mediumhub/internal/security"
	"mediumhub/internal/web"
)

type MediumHandler struct {
	db       *db.DB
	renderer *web.Renderer

	// premiumFilter gates the home listing on the requester's premium
	// flag; with the filter off everyone sees everything.
	premiumFilter bool
}

func NewMediumHandler(db *db.DB, renderer *web.Renderer, premiumFilter bool) *MediumHandler {
	return &MediumHandler{
		db:            db,
		renderer:      renderer,
		premiumFilter: premiumFilter,
	}
}

func (h *MediumHandler) Home(w http.ResponseWriter, r *http.Request, ident *security.Identity) {
	user, ok := h.currentUser(w, r, ident)
	if !ok {
		return
	}

	mediums, err := h.db.ListMediums(h.includePremium(user))
	if err != nil {
		log.Printf("Error fetching mediums from the database: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var success string
	if r.URL.Query().Get("success") == "1" {
		success = "You have successfully posted your medium."
	}

	h.renderHome(w, user, mediums, success, nil, false)
}

// Create inserts a new medium. Validation failures re-render the listing
// with the messages instead of erroring.
func (h *MediumHandler) Create(w http.ResponseWriter, r *http.Request, ident *security.Identity) {
	user, ok := h.currentUser(w, r, ident)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))

	var errs []string
	if title == "" {
		errs = append(errs, "Title is required")
	}
	if content == "" {
		errs = append(errs, "Content is required")
	}
	if len(errs) > 0 {
		mediums, err := h.db.ListMediums(h.includePremium(user))
		if err != nil {
			log.Printf("Error fetching mediums from the database: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		h.renderHome(w, user, mediums, "", errs, false)
		return
	}

	isPremium := r.FormValue("is_premium") != ""
	if _, err := h.db.CreateMedium(user.ID, title, content, isPremium, time.Now().UTC()); err != nil {
		log.Printf("Error saving medium into the database: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/?success=1", http.StatusSeeOther)
}

// ToggleBookmark saves the medium for the user, or removes the bookmark
// if it is already saved. Only the user themselves or an admin may do so.
func (h *MediumHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request, ident *security.Identity) {
	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["userId"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	mediumID, err := strconv.Atoi(vars["mediumId"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	allowed, err := canActOn(h.db, ident, userID)
	if err != nil {
		log.Printf("Error checking admin status: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !allowed {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := h.db.ToggleSavedMedium(userID, mediumID); err != nil {
		log.Printf("Error handling medium relation: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *MediumHandler) Saved(w http.ResponseWriter, r *http.Request, ident *security.Identity) {
	targetID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	target, err := h.db.GetUserByID(targetID)
	if err != nil {
		log.Printf("Error fetching saved mediums: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if target == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	user, ok := h.currentUser(w, r, ident)
	if !ok {
		return
	}

	mediums, err := h.db.ListSavedMediums(targetID)
	if err != nil {
		log.Printf("Error fetching saved mediums: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderHome(w, user, mediums, "", nil, true)
}

func (h *MediumHandler) includePremium(user *models.User) bool {
	return user.IsPremium || !h.premiumFilter
}

// currentUser loads the requester's row. A session referencing a vanished
// user is treated as logged out.
func (h *MediumHandler) currentUser(w http.ResponseWriter, r *http.Request, ident *security.Identity) (*models.User, bool) {
	user, err := h.db.GetUserByID(ident.UserID)
	if err != nil {
		log.Printf("Error getting user by ID: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}
	return user, true
}

func (h *MediumHandler) renderHome(w http.ResponseWriter, user *models.User, mediums []models.MediumView, success string, errs []string, saved bool) {
	h.renderer.Render(w, "home", map[string]any{
		"User":           user,
		"Mediums":        mediums,
		"SuccessMessage": success,
		"Errors":         errs,
		"Saved":          saved,
	})
}
