package db

import (
	"path/filepath"
	"testing"
	"time"

	"mediumhub/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	database, err := Init("sqlite3", dsn)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func mustCreateUser(t *testing.T, db *DB, username, email string) *models.User {
	t.Helper()
	if err := db.CreateUser(username, email, "hash"); err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	user, err := db.GetUserByUsername(username)
	if err != nil {
		t.Fatalf("fetching user %s: %v", username, err)
	}
	if user == nil {
		t.Fatalf("user %s not found after insert", username)
	}
	return user
}

func mustCreateMedium(t *testing.T, db *DB, userID int, title string, premium bool) int64 {
	t.Helper()
	id, err := db.CreateMedium(userID, title, "content", premium, time.Now().UTC())
	if err != nil {
		t.Fatalf("creating medium %q: %v", title, err)
	}
	return id
}

func TestCreateUserDuplicates(t *testing.T) {
	db := setupTestDB(t)
	mustCreateUser(t, db, "alice", "alice@x.com")

	if err := db.CreateUser("alice", "other@x.com", "hash"); err != ErrDuplicateUsername {
		t.Errorf("duplicate username error = %v, want ErrDuplicateUsername", err)
	}
	if err := db.CreateUser("bob", "alice@x.com", "hash"); err != ErrDuplicateEmail {
		t.Errorf("duplicate email error = %v, want ErrDuplicateEmail", err)
	}
}

func TestFindDuplicates(t *testing.T) {
	db := setupTestDB(t)
	mustCreateUser(t, db, "alice", "alice@x.com")
	mustCreateUser(t, db, "bob", "bob@x.com")

	tests := []struct {
		name                string
		username, email     string
		wantUser, wantEmail bool
	}{
		{"fresh pair", "carol", "carol@x.com", false, false},
		{"username taken", "alice", "carol@x.com", true, false},
		{"email taken", "carol", "alice@x.com", false, true},
		{"both taken same row", "alice", "alice@x.com", true, true},
		{"both taken different rows", "alice", "bob@x.com", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser, gotEmail, err := db.FindDuplicates(tt.username, tt.email)
			if err != nil {
				t.Fatalf("FindDuplicates() error: %v", err)
			}
			if gotUser != tt.wantUser || gotEmail != tt.wantEmail {
				t.Errorf("FindDuplicates() = (%v, %v), want (%v, %v)",
					gotUser, gotEmail, tt.wantUser, tt.wantEmail)
			}
		})
	}
}

func TestGetUserMissing(t *testing.T) {
	db := setupTestDB(t)

	user, err := db.GetUserByUsername("ghost")
	if err != nil {
		t.Fatalf("GetUserByUsername() error: %v", err)
	}
	if user != nil {
		t.Errorf("GetUserByUsername() = %+v, want nil", user)
	}

	user, err = db.GetUserByID(999)
	if err != nil {
		t.Fatalf("GetUserByID() error: %v", err)
	}
	if user != nil {
		t.Errorf("GetUserByID() = %+v, want nil", user)
	}
}

func TestListMediumsPremiumFilter(t *testing.T) {
	db := setupTestDB(t)
	alice := mustCreateUser(t, db, "alice", "alice@x.com")
	mustCreateMedium(t, db, alice.ID, "free one", false)
	mustCreateMedium(t, db, alice.ID, "premium one", true)
	mustCreateMedium(t, db, alice.ID, "free two", false)

	free, err := db.ListMediums(false)
	if err != nil {
		t.Fatalf("ListMediums(false) error: %v", err)
	}
	for _, m := range free {
		if m.IsPremium {
			t.Errorf("non-premium listing contains premium medium %q", m.Title)
		}
	}
	if len(free) != 2 {
		t.Fatalf("non-premium listing has %d mediums, want 2", len(free))
	}

	all, err := db.ListMediums(true)
	if err != nil {
		t.Fatalf("ListMediums(true) error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("premium listing has %d mediums, want 3", len(all))
	}

	// Newest id first, joined with the owner's username.
	for i := 1; i < len(all); i++ {
		if all[i-1].ID < all[i].ID {
			t.Errorf("listing not ordered newest first: %d before %d", all[i-1].ID, all[i].ID)
		}
	}
	if all[0].Username != "alice" {
		t.Errorf("listing username = %q, want alice", all[0].Username)
	}
}

func TestToggleSavedMedium(t *testing.T) {
	db := setupTestDB(t)
	alice := mustCreateUser(t, db, "alice", "alice@x.com")
	mediumID := int(mustCreateMedium(t, db, alice.ID, "a medium", false))

	saved, err := db.ToggleSavedMedium(alice.ID, mediumID)
	if err != nil {
		t.Fatalf("first toggle error: %v", err)
	}
	if !saved {
		t.Error("first toggle should save the medium")
	}

	has, err := db.HasSavedMedium(alice.ID, mediumID)
	if err != nil {
		t.Fatalf("HasSavedMedium() error: %v", err)
	}
	if !has {
		t.Error("relation row missing after save")
	}

	saved, err = db.ToggleSavedMedium(alice.ID, mediumID)
	if err != nil {
		t.Fatalf("second toggle error: %v", err)
	}
	if saved {
		t.Error("second toggle should remove the bookmark")
	}

	has, err = db.HasSavedMedium(alice.ID, mediumID)
	if err != nil {
		t.Fatalf("HasSavedMedium() error: %v", err)
	}
	if has {
		t.Error("double toggle did not return to the original state")
	}
}

func TestListSavedMediums(t *testing.T) {
	db := setupTestDB(t)
	alice := mustCreateUser(t, db, "alice", "alice@x.com")
	bob := mustCreateUser(t, db, "bob", "bob@x.com")
	first := int(mustCreateMedium(t, db, bob.ID, "first", false))
	second := int(mustCreateMedium(t, db, bob.ID, "second", true))

	for _, id := range []int{first, second} {
		if _, err := db.ToggleSavedMedium(alice.ID, id); err != nil {
			t.Fatalf("toggling medium %d: %v", id, err)
		}
	}

	saved, err := db.ListSavedMediums(alice.ID)
	if err != nil {
		t.Fatalf("ListSavedMediums() error: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("saved listing has %d mediums, want 2", len(saved))
	}
	if saved[0].ID != second || saved[1].ID != first {
		t.Errorf("saved listing order = [%d %d], want [%d %d]",
			saved[0].ID, saved[1].ID, second, first)
	}
	if saved[0].Username != "bob" {
		t.Errorf("saved listing username = %q, want bob", saved[0].Username)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	owner := mustCreateUser(t, db, "owner", "owner@x.com")
	reader := mustCreateUser(t, db, "reader", "reader@x.com")
	mediumID := int(mustCreateMedium(t, db, owner.ID, "doomed", false))

	if _, err := db.ToggleSavedMedium(reader.ID, mediumID); err != nil {
		t.Fatalf("bookmarking: %v", err)
	}

	if err := db.DeleteUser(owner.ID); err != nil {
		t.Fatalf("DeleteUser() error: %v", err)
	}

	mediums, err := db.ListMediums(true)
	if err != nil {
		t.Fatalf("ListMediums() after delete error: %v", err)
	}
	if len(mediums) != 0 {
		t.Errorf("listing has %d mediums after owner delete, want 0", len(mediums))
	}

	saved, err := db.ListSavedMediums(reader.ID)
	if err != nil {
		t.Fatalf("ListSavedMediums() after delete error: %v", err)
	}
	if len(saved) != 0 {
		t.Errorf("saved listing has %d mediums after owner delete, want 0", len(saved))
	}
}

func TestSeedAdminIdempotent(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		if err := db.SeedAdmin("admin", "admin@gmail.com", "hash"); err != nil {
			t.Fatalf("SeedAdmin() run %d error: %v", i, err)
		}
	}

	users, err := db.GetAllUsers()
	if err != nil {
		t.Fatalf("GetAllUsers() error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("seeded %d admin rows, want 1", len(users))
	}
	if !users[0].IsAdmin || !users[0].IsPremium {
		t.Errorf("seeded admin flags = admin:%v premium:%v, want both true",
			users[0].IsAdmin, users[0].IsPremium)
	}
}

func TestIsAdminRequery(t *testing.T) {
	db := setupTestDB(t)
	if err := db.SeedAdmin("admin", "admin@gmail.com", "hash"); err != nil {
		t.Fatalf("SeedAdmin() error: %v", err)
	}
	admin, err := db.GetUserByUsername("admin")
	if err != nil || admin == nil {
		t.Fatalf("fetching admin: %v", err)
	}

	isAdmin, err := db.IsAdmin(admin.ID)
	if err != nil {
		t.Fatalf("IsAdmin() error: %v", err)
	}
	if !isAdmin {
		t.Error("IsAdmin() = false for the seeded admin")
	}

	if _, err := db.Exec("UPDATE users SET is_admin = 0 WHERE id = ?", admin.ID); err != nil {
		t.Fatalf("revoking admin: %v", err)
	}

	isAdmin, err = db.IsAdmin(admin.ID)
	if err != nil {
		t.Fatalf("IsAdmin() after revocation error: %v", err)
	}
	if isAdmin {
		t.Error("IsAdmin() = true after revocation")
	}
}

func TestSetUserPremium(t *testing.T) {
	db := setupTestDB(t)
	alice := mustCreateUser(t, db, "alice", "alice@x.com")
	if alice.IsPremium {
		t.Fatal("new users should not be premium")
	}

	if err := db.SetUserPremium(alice.ID, true); err != nil {
		t.Fatalf("SetUserPremium() error: %v", err)
	}

	updated, err := db.GetUserByID(alice.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error: %v", err)
	}
	if !updated.IsPremium {
		t.Error("premium flag not persisted")
	}
}
