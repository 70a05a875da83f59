package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rnvv/igreja/internal/auth"
	"github.com/rnvv/igreja/internal/database"
	"github.com/rnvv/igreja/internal/model"
	"github.com/rnvv/igreja/internal/store"
	"github.com/rnvv/igreja/internal/websocket"
)

// setupMemberHandler moves to the repo root so templates resolve, then builds
// a handler over an in-memory database.
func setupMemberHandler(t *testing.T) (*MemberHandler, *store.MemberStore, int64) {
	t.Helper()
	t.Chdir("../..")

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cs := store.NewChurchStore(db)
	church, err := cs.Create("Igreja Teste", "a@igreja.org", "hash")
	if err != nil {
		t.Fatalf("create church: %v", err)
	}

	ms := store.NewMemberStore(db)
	hub := websocket.NewHub(slog.Default())
	return NewMemberHandler(ms, hub, slog.Default()), ms, church.ID
}

func postForm(t *testing.T, path string, form url.Values, churchID int64) *http.Request {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(auth.WithAuth(req.Context(), auth.AuthContext{ChurchID: churchID}))
}

func TestMemberCreateSuccess(t *testing.T) {
	h, ms, churchID := setupMemberHandler(t)

	form := url.Values{
		"name":    {"João Silva"},
		"phone":   {"11 99999-0000"},
		"married": {"on"},
	}
	rec := httptest.NewRecorder()
	h.Create(rec, postForm(t, "/partials/membros", form, churchID))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("HX-Retarget"); got != "" {
		t.Errorf("HX-Retarget = %q, want none on success", got)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `id="member-list"`) {
		t.Error("expected refreshed list in response")
	}
	if !strings.Contains(body, "João Silva") {
		t.Error("expected new member in refreshed list")
	}
	if !strings.Contains(body, "Membro adicionado com sucesso") {
		t.Error("expected success toast")
	}
	if !strings.Contains(body, `id="member-modal-body" hx-swap-oob="true"`) {
		t.Error("expected out-of-band form reset")
	}

	members, err := ms.ListByChurch(churchID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("persisted members = %d, want 1", len(members))
	}
	if members[0].ChurchID != churchID {
		t.Errorf("church_id = %d, want %d", members[0].ChurchID, churchID)
	}
}

func TestMemberCreateMissingName(t *testing.T) {
	h, ms, churchID := setupMemberHandler(t)

	form := url.Values{"name": {"   "}, "phone": {"11 99999-0000"}}
	rec := httptest.NewRecorder()
	h.Create(rec, postForm(t, "/partials/membros", form, churchID))

	if got := rec.Header().Get("HX-Retarget"); got != "#member-form-error" {
		t.Errorf("HX-Retarget = %q, want %q", got, "#member-form-error")
	}
	if got := rec.Header().Get("HX-Reswap"); got != "innerHTML" {
		t.Errorf("HX-Reswap = %q, want %q", got, "innerHTML")
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Nome é obrigatório") {
		t.Error("expected inline error message")
	}
	if strings.Contains(body, `id="member-list"`) {
		t.Error("failed insert must not re-render the list")
	}
	if strings.Contains(body, "hx-swap-oob") {
		t.Error("failed insert must not reset the form")
	}

	members, err := ms.ListByChurch(churchID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("persisted members = %d, want 0", len(members))
	}
}

func TestMemberListPartial(t *testing.T) {
	h, ms, churchID := setupMemberHandler(t)

	if _, err := ms.Create(model.Member{ChurchID: churchID, Name: "Ana"}); err != nil {
		t.Fatalf("create member: %v", err)
	}

	req := httptest.NewRequest("GET", "/partials/membros", nil)
	req = req.WithContext(auth.WithAuth(req.Context(), auth.AuthContext{ChurchID: churchID}))
	rec := httptest.NewRecorder()
	h.ListPartial(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `id="member-list"`) {
		t.Error("expected list wrapper")
	}
	if !strings.Contains(body, "Ana") {
		t.Error("expected member row")
	}
}
