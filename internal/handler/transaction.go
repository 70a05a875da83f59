package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rnvv/igreja/internal/auth"
	"github.com/rnvv/igreja/internal/model"
	"github.com/rnvv/igreja/internal/store"
	"github.com/rnvv/igreja/internal/websocket"
)

type TransactionHandler struct {
	store     *store.TransactionStore
	hub       *websocket.Hub
	currency  string
	templates *template.Template
	logger    *slog.Logger
}

func NewTransactionHandler(ts *store.TransactionStore, hub *websocket.Hub, currency string, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		store:     ts,
		hub:       hub,
		currency:  currency,
		templates: newTemplates(),
		logger:    logger,
	}
}

// Page renders the finance screen: ledger table newest first plus the modal
// create form.
func (h *TransactionHandler) Page(w http.ResponseWriter, r *http.Request) {
	churchID := auth.ChurchID(r.Context())

	transactions, err := h.store.ListByChurch(churchID)
	if err != nil {
		h.logger.Error("list transactions", "error", err)
		http.Error(w, "Erro ao carregar transações", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":        "Financeiro",
		"Active":       "financeiro",
		"Transactions": transactions,
		"Currency":     h.currency,
	}
	render(w, h.templates, h.logger, "financeiro.html", data)
}

// ListPartial re-renders just the ledger table, used by the live-refresh hub.
func (h *TransactionHandler) ListPartial(w http.ResponseWriter, r *http.Request) {
	churchID := auth.ChurchID(r.Context())

	transactions, err := h.store.ListByChurch(churchID)
	if err != nil {
		h.logger.Error("list transactions", "error", err)
		http.Error(w, "Erro ao carregar transações", http.StatusInternalServerError)
		return
	}

	renderPartial(w, h.templates, h.logger, "transaction-list", map[string]any{
		"Transactions": transactions,
		"Currency":     h.currency,
	})
}

// Create handles the modal form submission. The amount field arrives as text
// and is validated here before it ever reaches the store; a non-numeric or
// negative value is a form error, not a persisted row.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	churchID := auth.ChurchID(r.Context())

	if err := r.ParseForm(); err != nil {
		renderFormError(w, h.templates, h.logger, "#transaction-form-error", "Dados do formulário inválidos")
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("amount")))
	if err != nil {
		renderFormError(w, h.templates, h.logger, "#transaction-form-error", "Valor inválido")
		return
	}
	if amount.IsNegative() {
		renderFormError(w, h.templates, h.logger, "#transaction-form-error", "Valor não pode ser negativo")
		return
	}

	t := model.Transaction{
		ChurchID:    churchID,
		Type:        r.FormValue("type"),
		Description: strings.TrimSpace(r.FormValue("description")),
		Amount:      amount,
		Date:        r.FormValue("date"),
	}

	if t.Date == "" {
		renderFormError(w, h.templates, h.logger, "#transaction-form-error", "Data é obrigatória")
		return
	}

	created, err := h.store.Create(t)
	if err != nil {
		h.logger.Error("create transaction", "error", err)
		renderFormError(w, h.templates, h.logger, "#transaction-form-error", "Erro ao adicionar transação")
		return
	}

	h.hub.Broadcast(churchID, websocket.NewMessage("transaction", "created", created.ID))

	transactions, err := h.store.ListByChurch(churchID)
	if err != nil {
		h.logger.Error("list transactions", "error", err)
		http.Error(w, "Erro ao carregar transações", http.StatusInternalServerError)
		return
	}

	renderPartial(w, h.templates, h.logger, "transaction-create-success", map[string]any{
		"Transactions": transactions,
		"Currency":     h.currency,
		"Toast":        "Transação adicionada com sucesso",
	})
}
