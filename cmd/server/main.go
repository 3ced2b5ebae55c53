package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"mediumhub/internal/config"
	"mediumhub/internal/db"
	"mediumhub/internal/http/router"
	"mediumhub/internal/security"
	"mediumhub/internal/web"
)

func main() {
	godotenv.Load()

	// Load configuration
	cfg, err := config.Load("config/app.yaml")
	if err != nil {
		log.Printf("Failed to load config: %v, using defaults", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Seed the bootstrap admin account
	adminHash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	if err := database.SeedAdmin(cfg.AdminUsername, cfg.AdminEmail, adminHash); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Initialize session store
	sessionStore := security.NewSessionStore(cfg.SessionSecret, cfg.SessionCookieName, cfg.SessionTTL())

	// Load templates
	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// Setup router
	r := router.Setup(database, sessionStore, renderer, cfg)

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
