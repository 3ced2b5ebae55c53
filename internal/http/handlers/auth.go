package handlers

import (
	"log"
	"net/http"

	"mediumhub/internal/db"
	"mediumhub/internal/security"
	"mediumhub/internal/validate"
	"mediumhub/internal/web"
)

const invalidCredentials = "Invalid username or password"

type AuthHandler struct {
	db       *db.DB
	sessions *security.SessionStore
	renderer *web.Renderer
}

func NewAuthHandler(db *db.DB, sessions *security.SessionStore, renderer *web.Renderer) *AuthHandler {
	return &AuthHandler{
		db:       db,
		sessions: sessions,
		renderer: renderer,
	}
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.Current(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderRegister(w, "", "", nil)
}

// Register validates all fields at once, then checks for duplicates on
// username and email independently, and only then hashes and inserts.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := validate.NewRegistrationForm(
		r.FormValue("username"),
		r.FormValue("email"),
		r.FormValue("password"),
		r.FormValue("passwordconf"),
	)

	if errs := form.Validate(); len(errs) > 0 {
		h.renderRegister(w, form.Username, form.Email, errs)
		return
	}

	usernameTaken, emailTaken, err := h.db.FindDuplicates(form.Username, form.Email)
	if err != nil {
		log.Printf("Error checking for duplicate user: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if usernameTaken || emailTaken {
		var errs []string
		if usernameTaken {
			errs = append(errs, "Username already exists")
		}
		if emailTaken {
			errs = append(errs, "Email already exists")
		}
		h.renderRegister(w, form.Username, form.Email, errs)
		return
	}

	hash, err := security.HashPassword(form.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.db.CreateUser(form.Username, form.Email, hash); err != nil {
		log.Printf("Error saving user to database: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/login?success=1", http.StatusSeeOther)
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.Current(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var success string
	if r.URL.Query().Get("success") == "1" {
		success = "You have successfully registered. You can log in now."
	}
	h.renderLogin(w, "", success, nil)
}

// Login answers unknown usernames and wrong passwords with the same
// message so the two cases cannot be told apart.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := validate.NewLoginForm(r.FormValue("username"), r.FormValue("password"))
	if errs := form.Validate(); len(errs) > 0 {
		h.renderLogin(w, form.Username, "", errs)
		return
	}

	user, err := h.db.GetUserByUsername(form.Username)
	if err != nil {
		log.Printf("Error retrieving user from database: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user == nil || !security.CheckPassword(user.PasswordHash, form.Password) {
		h.renderLogin(w, form.Username, "", []string{invalidCredentials})
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID, user.Username); err != nil {
		log.Printf("Error creating session: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		log.Printf("Error destroying session: %v", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, username, email string, errs []string) {
	h.renderer.Render(w, "register", map[string]any{
		"User":           nil,
		"Username":       username,
		"Email":          email,
		"Errors":         errs,
		"SuccessMessage": "",
	})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, username, success string, errs []string) {
	h.renderer.Render(w, "login", map[string]any{
		"User":           nil,
		"Username":       username,
		"Errors":         errs,
		"SuccessMessage": success,
	})
}
