package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"mediumhub/internal/models"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

type DB struct {
	*sql.DB
}

func Init(driver, dsn string) (*DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT 0,
			is_premium BOOLEAN NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS mediums (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT,
			is_premium BOOLEAN NOT NULL DEFAULT 0,
			posted_datetime TIMESTAMP NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS medium_relations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			medium_id INTEGER NOT NULL,
			UNIQUE (user_id, medium_id),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (medium_id) REFERENCES mediums(id) ON DELETE CASCADE
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}

// SeedAdmin inserts the bootstrap admin account if no user with that
// username exists yet. Safe to run on every startup.
func (db *DB) SeedAdmin(username, email, passwordHash string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO users (username, email, password_hash, is_admin, is_premium)
		VALUES (?, ?, ?, 1, 1)`, username, email, passwordHash)
	return err
}

func (db *DB) CreateUser(username, email, passwordHash string) error {
	_, err := db.Exec(`
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)`, username, email, passwordHash)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "users.username") {
			return ErrDuplicateUsername
		}
		if strings.Contains(msg, "users.email") {
			return ErrDuplicateEmail
		}
	}
	return err
}

// FindDuplicates reports whether the username or email is already taken,
// independently, so registration can surface both errors at once.
func (db *DB) FindDuplicates(username, email string) (usernameTaken, emailTaken bool, err error) {
	rows, err := db.Query(`
		SELECT username, email FROM users
		WHERE username = ? OR email = ?`, username, email)
	if err != nil {
		return false, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var u, e string
		if err := rows.Scan(&u, &e); err != nil {
			return false, false, err
		}
		if u == username {
			usernameTaken = true
		}
		if e == email {
			emailTaken = true
		}
	}
	return usernameTaken, emailTaken, rows.Err()
}

func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	row := db.QueryRow(`
		SELECT id, username, email, password_hash, is_admin, is_premium, created_at
		FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (db *DB) GetUserByID(id int) (*models.User, error) {
	row := db.QueryRow(`
		SELECT id, username, email, password_hash, is_admin, is_premium, created_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsAdmin, &user.IsPremium, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IsAdmin re-queries the admin flag for every call so that mid-session
// revocation takes effect on the next request.
func (db *DB) IsAdmin(userID int) (bool, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM users WHERE id = ? AND is_admin = 1`, userID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (db *DB) GetAllUsers() ([]models.User, error) {
	rows, err := db.Query(`
		SELECT id, username, email, is_admin, is_premium, created_at
		FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email,
			&user.IsAdmin, &user.IsPremium, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (db *DB) SetUserPremium(id int, premium bool) error {
	_, err := db.Exec("UPDATE users SET is_premium = ? WHERE id = ?", premium, id)
	return err
}

func (db *DB) DeleteUser(id int) error {
	_, err := db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

func (db *DB) CreateMedium(userID int, title, content string, isPremium bool, postedAt time.Time) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO mediums (user_id, title, content, is_premium, posted_datetime)
		VALUES (?, ?, ?, ?, ?)`, userID, title, content, isPremium, postedAt)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListMediums returns every medium joined with its owner's username, newest
// id first. With includePremium false, premium mediums are excluded before
// any row reaches the caller; there is no second filtering layer.
func (db *DB) ListMediums(includePremium bool) ([]models.MediumView, error) {
	query := `
		SELECT m.id, m.user_id, m.title, m.content, m.is_premium, m.posted_datetime, u.username
		FROM mediums m JOIN users u ON m.user_id = u.id
		ORDER BY m.id DESC`
	if !includePremium {
		query = `
		SELECT m.id, m.user_id, m.title, m.content, m.is_premium, m.posted_datetime, u.username
		FROM mediums m JOIN users u ON m.user_id = u.id
		WHERE m.is_premium = 0
		ORDER BY m.id DESC`
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMediumViews(rows)
}

func (db *DB) ListSavedMediums(userID int) ([]models.MediumView, error) {
	rows, err := db.Query(`
		SELECT m.id, m.user_id, m.title, m.content, m.is_premium, m.posted_datetime, u.username
		FROM mediums m
		JOIN medium_relations r ON m.id = r.medium_id
		JOIN users u ON m.user_id = u.id
		WHERE r.user_id = ?
		ORDER BY m.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMediumViews(rows)
}

func scanMediumViews(rows *sql.Rows) ([]models.MediumView, error) {
	var mediums []models.MediumView
	for rows.Next() {
		var m models.MediumView
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Content,
			&m.IsPremium, &m.PostedDatetime, &m.Username); err != nil {
			return nil, err
		}
		mediums = append(mediums, m)
	}
	return mediums, rows.Err()
}

func (db *DB) HasSavedMedium(userID, mediumID int) (bool, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM medium_relations
		WHERE user_id = ? AND medium_id = ?`, userID, mediumID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleSavedMedium bookmarks the medium if no relation row exists and
// removes the bookmark otherwise. The delete-then-insert runs in one
// transaction and the (user_id, medium_id) uniqueness constraint absorbs
// concurrent duplicate toggles, so repeated requests converge instead of
// accumulating rows. Returns whether the medium is saved afterwards.
func (db *DB) ToggleSavedMedium(userID, mediumID int) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, err
	}

	result, err := tx.Exec(`
		DELETE FROM medium_relations
		WHERE user_id = ? AND medium_id = ?`, userID, mediumID)
	if err != nil {
		tx.Rollback()
		return false, err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, err
	}

	if deleted > 0 {
		return false, tx.Commit()
	}

	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO medium_relations (user_id, medium_id)
		VALUES (?, ?)`, userID, mediumID); err != nil {
		tx.Rollback()
		return false, err
	}
	return true, tx.Commit()
}
