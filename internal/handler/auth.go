package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rnvv/igreja/internal/store"
)

const sessionCookieName = "igreja_session"

type AuthHandler struct {
	churchStore  *store.ChurchStore
	sessionStore *store.SessionStore
	templates    *template.Template
	logger       *slog.Logger
}

func NewAuthHandler(cs *store.ChurchStore, ss *store.SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		churchStore:  cs,
		sessionStore: ss,
		templates:    newTemplates(),
		logger:       logger,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.templates, h.logger, "login.html", map[string]any{"Email": ""})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	// One generic message for every failure mode, to avoid account enumeration.
	fail := func() {
		render(w, h.templates, h.logger, "login.html", map[string]any{
			"Email": email,
			"Error": "Email ou senha inválidos",
		})
	}

	if email == "" || password == "" {
		fail()
		return
	}

	church, err := h.churchStore.GetByEmail(email)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		fail()
		return
	}
	if church == nil {
		fail()
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(church.PasswordHash), []byte(password)); err != nil {
		fail()
		return
	}

	sess, err := h.sessionStore.Create(church.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		fail()
		return
	}

	h.setSessionCookie(w, r, sess.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.templates, h.logger, "register.html", map[string]any{"Name": "", "Email": ""})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	renderError := func(msg string) {
		render(w, h.templates, h.logger, "register.html", map[string]any{
			"Name":  name,
			"Email": email,
			"Error": msg,
		})
	}

	if name == "" || email == "" {
		renderError("Nome da igreja e email são obrigatórios")
		return
	}
	if len(password) < 8 {
		renderError("A senha deve ter pelo menos 8 caracteres")
		return
	}

	existing, err := h.churchStore.GetByEmail(email)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		renderError("Erro interno. Tente novamente.")
		return
	}
	if existing != nil {
		renderError("Já existe uma conta com este email")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		renderError("Erro interno. Tente novamente.")
		return
	}

	church, err := h.churchStore.Create(name, email, string(hash))
	if err != nil {
		h.logger.Error("create church", "error", err)
		renderError("Erro interno. Tente novamente.")
		return
	}

	sess, err := h.sessionStore.Create(church.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.setSessionCookie(w, r, sess.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if sess, err := h.sessionStore.GetByToken(cookie.Value); err == nil && sess != nil {
			h.sessionStore.Delete(sess.ID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}
