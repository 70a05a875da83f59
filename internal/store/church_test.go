package store

import (
	"testing"

	"github.com/rnvv/igreja/internal/database"
)

func setupTestDB(t *testing.T) *ChurchStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewChurchStore(db)
}

func TestChurchCreate(t *testing.T) {
	cs := setupTestDB(t)

	c, err := cs.Create("Igreja Renovo", "contato@renovo.org", "hash")
	if err != nil {
		t.Fatalf("create church: %v", err)
	}
	if c.Name != "Igreja Renovo" {
		t.Errorf("name = %q, want %q", c.Name, "Igreja Renovo")
	}
	if c.Email != "contato@renovo.org" {
		t.Errorf("email = %q, want %q", c.Email, "contato@renovo.org")
	}
	if c.PasswordHash != "hash" {
		t.Errorf("password hash = %q, want %q", c.PasswordHash, "hash")
	}
}

func TestChurchCreateNormalizesEmail(t *testing.T) {
	cs := setupTestDB(t)

	c, err := cs.Create("Igreja Renovo", "  Contato@Renovo.ORG  ", "hash")
	if err != nil {
		t.Fatalf("create church: %v", err)
	}
	if c.Email != "contato@renovo.org" {
		t.Errorf("email = %q, want lowercase trimmed", c.Email)
	}
}

func TestChurchCreateRequiresFields(t *testing.T) {
	cs := setupTestDB(t)

	if _, err := cs.Create("", "a@b.com", "hash"); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := cs.Create("Igreja", "", "hash"); err == nil {
		t.Error("expected error for empty email")
	}
}

func TestChurchCreateDuplicateEmail(t *testing.T) {
	cs := setupTestDB(t)

	if _, err := cs.Create("Primeira", "contato@renovo.org", "hash"); err != nil {
		t.Fatalf("create church: %v", err)
	}
	if _, err := cs.Create("Segunda", "contato@renovo.org", "hash"); err == nil {
		t.Error("expected error for duplicate email")
	}
}

func TestChurchGetByEmail(t *testing.T) {
	cs := setupTestDB(t)

	created, _ := cs.Create("Igreja Renovo", "contato@renovo.org", "hash")

	c, err := cs.GetByEmail("CONTATO@renovo.org")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if c == nil {
		t.Fatal("expected church, got nil")
	}
	if c.ID != created.ID {
		t.Errorf("id = %d, want %d", c.ID, created.ID)
	}
}

func TestChurchGetByEmailNotFound(t *testing.T) {
	cs := setupTestDB(t)

	c, err := cs.GetByEmail("nao@existe.org")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if c != nil {
		t.Error("expected nil for unknown email")
	}
}

func TestChurchGetByIDNotFound(t *testing.T) {
	cs := setupTestDB(t)

	c, err := cs.GetByID(999)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if c != nil {
		t.Error("expected nil for unknown id")
	}
}
