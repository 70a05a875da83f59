package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rnvv/igreja/internal/auth"
	"github.com/rnvv/igreja/internal/database"
	"github.com/rnvv/igreja/internal/store"
)

func setupAuthMiddlewareDB(t *testing.T) (*store.SessionStore, *store.ChurchStore, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return store.NewSessionStore(db), store.NewChurchStore(db), db
}

func TestRequireAuthNoCookie(t *testing.T) {
	ss, cs, _ := setupAuthMiddlewareDB(t)

	handler := RequireAuth(ss, cs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	for _, path := range []string{"/", "/membros", "/financeiro"} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: Location = %q, want %q", path, loc, "/login")
		}
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	ss, cs, _ := setupAuthMiddlewareDB(t)

	handler := RequireAuth(ss, cs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "invalid-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestRequireAuthValidSession(t *testing.T) {
	ss, cs, _ := setupAuthMiddlewareDB(t)

	church, err := cs.Create("Igreja Renovo", "contato@renovo.org", "hash")
	if err != nil {
		t.Fatalf("create church: %v", err)
	}
	sess, err := ss.Create(church.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	var gotAC auth.AuthContext
	handler := RequireAuth(ss, cs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := auth.FromContext(r.Context())
		if !ok {
			t.Fatal("expected AuthContext in request context")
		}
		gotAC = ac
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.Token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotAC.ChurchID != church.ID {
		t.Errorf("ChurchID = %d, want %d", gotAC.ChurchID, church.ID)
	}
	if gotAC.SessionID != sess.ID {
		t.Errorf("SessionID = %d, want %d", gotAC.SessionID, sess.ID)
	}
}

func TestRequireAuthHTMXRedirect(t *testing.T) {
	ss, cs, _ := setupAuthMiddlewareDB(t)

	handler := RequireAuth(ss, cs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if hxRedirect := rec.Header().Get("HX-Redirect"); hxRedirect != "/login" {
		t.Errorf("HX-Redirect = %q, want %q", hxRedirect, "/login")
	}
}

func TestRequireAuthDeletedChurch(t *testing.T) {
	ss, cs, db := setupAuthMiddlewareDB(t)

	church, _ := cs.Create("Igreja Renovo", "contato@renovo.org", "hash")
	sess, _ := ss.Create(church.ID)

	// Removing the church invalidates its sessions
	if _, err := db.Exec("DELETE FROM churches WHERE id = ?", church.ID); err != nil {
		t.Fatalf("delete church: %v", err)
	}

	handler := RequireAuth(ss, cs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.Token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}
