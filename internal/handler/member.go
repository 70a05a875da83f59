package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rnvv/igreja/internal/auth"
	"github.com/rnvv/igreja/internal/model"
	"github.com/rnvv/igreja/internal/store"
	"github.com/rnvv/igreja/internal/websocket"
)

type MemberHandler struct {
	store     *store.MemberStore
	hub       *websocket.Hub
	templates *template.Template
	logger    *slog.Logger
}

func NewMemberHandler(ms *store.MemberStore, hub *websocket.Hub, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		store:     ms,
		hub:       hub,
		templates: newTemplates(),
		logger:    logger,
	}
}

// Page renders the members screen: full table plus the modal create form.
func (h *MemberHandler) Page(w http.ResponseWriter, r *http.Request) {
	churchID := auth.ChurchID(r.Context())

	members, err := h.store.ListByChurch(churchID)
	if err != nil {
		h.logger.Error("list members", "error", err)
		http.Error(w, "Erro ao carregar membros", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":   "Membros",
		"Active":  "membros",
		"Members": members,
	}
	render(w, h.templates, h.logger, "membros.html", data)
}

// ListPartial re-renders just the members table, used by the live-refresh hub.
func (h *MemberHandler) ListPartial(w http.ResponseWriter, r *http.Request) {
	churchID := auth.ChurchID(r.Context())

	members, err := h.store.ListByChurch(churchID)
	if err != nil {
		h.logger.Error("list members", "error", err)
		http.Error(w, "Erro ao carregar membros", http.StatusInternalServerError)
		return
	}

	renderPartial(w, h.templates, h.logger, "member-list", map[string]any{"Members": members})
}

// Create handles the modal form submission. On success it returns the
// refreshed list with an out-of-band success toast and a reset form; on
// failure it returns only an inline error, leaving the form and list as
// they were.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	churchID := auth.ChurchID(r.Context())

	if err := r.ParseForm(); err != nil {
		renderFormError(w, h.templates, h.logger, "#member-form-error", "Dados do formulário inválidos")
		return
	}

	m := model.Member{
		ChurchID:      churchID,
		Name:          strings.TrimSpace(r.FormValue("name")),
		Address:       strings.TrimSpace(r.FormValue("address")),
		Phone:         strings.TrimSpace(r.FormValue("phone")),
		Email:         strings.TrimSpace(r.FormValue("email")),
		Instagram:     strings.TrimSpace(r.FormValue("instagram")),
		Married:       r.FormValue("married") == "on",
		HasChildren:   r.FormValue("has_children") == "on",
		Baptized:      r.FormValue("baptized") == "on",
		SpouseName:    strings.TrimSpace(r.FormValue("spouse_name")),
		ChildrenNames: strings.TrimSpace(r.FormValue("children_names")),
		BaptismAge:    strings.TrimSpace(r.FormValue("baptism_age")),
		BirthDate:     r.FormValue("birth_date"),
	}

	if m.Name == "" {
		renderFormError(w, h.templates, h.logger, "#member-form-error", "Nome é obrigatório")
		return
	}

	created, err := h.store.Create(m)
	if err != nil {
		h.logger.Error("create member", "error", err)
		renderFormError(w, h.templates, h.logger, "#member-form-error", "Erro ao adicionar membro")
		return
	}

	h.hub.Broadcast(churchID, websocket.NewMessage("member", "created", created.ID))

	members, err := h.store.ListByChurch(churchID)
	if err != nil {
		h.logger.Error("list members", "error", err)
		http.Error(w, "Erro ao carregar membros", http.StatusInternalServerError)
		return
	}

	renderPartial(w, h.templates, h.logger, "member-create-success", map[string]any{
		"Members": members,
		"Toast":   "Membro adicionado com sucesso",
	})
}
