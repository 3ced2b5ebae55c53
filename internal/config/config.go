package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Port     string `yaml:"port"`
	DBDriver string `yaml:"db_driver"`
	DBDSN    string `yaml:"db_dsn"`

	SessionSecret     string `yaml:"session_secret"`
	SessionCookieName string `yaml:"session_cookie_name"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`

	// Variant switches: the admin gate on /users and the premium
	// visibility filter on the home listing.
	AdminUserList bool `yaml:"admin_user_list"`
	PremiumFilter bool `yaml:"premium_filter"`

	AdminUsername string `yaml:"admin_username"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

func Default() *Config {
	return &Config{
		Port:              "8080",
		DBDriver:          "sqlite3",
		DBDSN:             "mediumhub.db?_foreign_keys=on",
		SessionSecret:     "keep-it-secret-change-in-production",
		SessionCookieName: "uniqueSessionID",
		SessionTTLMinutes: 60,
		AdminUserList:     true,
		PremiumFilter:     true,
		AdminUsername:     "admin",
		AdminEmail:        "admin@gmail.com",
		AdminPassword:     "admin",
	}
}

func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnv overrides file values with environment variables. Config is
// resolved once at startup and immutable afterwards.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.DBDriver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.DBDSN = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.SessionSecret = v
	}
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}
