package router

import (
	"github.com/gorilla/mux"

	"mediumhub/internal/config"
	"mediumhub/internal/db"
	"mediumhub/internal/http/handlers"
	"mediumhub/internal/security"
	"mediumhub/internal/web"
)

func Setup(database *db.DB, sessionStore *security.SessionStore, renderer *web.Renderer, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	// Initialize handlers
	mw := handlers.NewMiddleware(database, sessionStore)
	authHandler := handlers.NewAuthHandler(database, sessionStore, renderer)
	mediumHandler := handlers.NewMediumHandler(database, renderer, cfg.PremiumFilter)
	userHandler := handlers.NewUserHandler(database, renderer)

	r.HandleFunc("/register", authHandler.RegisterForm).Methods("GET")
	r.HandleFunc("/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/login", authHandler.LoginForm).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	usersGate := mw.RequireAdmin
	if !cfg.AdminUserList {
		usersGate = mw.RequireLogin
	}
	r.HandleFunc("/users", usersGate(userHandler.List)).Methods("GET")

	r.HandleFunc("/", mw.RequireLogin(mediumHandler.Home)).Methods("GET")
	r.HandleFunc("/", mw.RequireLogin(mediumHandler.Create)).Methods("POST")
	r.HandleFunc("/toggle-premium/{userId:[0-9]+}", mw.RequireLogin(userHandler.TogglePremium)).Methods("POST")
	r.HandleFunc("/add-medium/{userId:[0-9]+}/{mediumId:[0-9]+}", mw.RequireLogin(mediumHandler.ToggleBookmark)).Methods("POST")
	r.HandleFunc("/saved-mediums/{userId:[0-9]+}", mw.RequireLogin(mediumHandler.Saved)).Methods("GET")

	return r
}
