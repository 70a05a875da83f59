package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/rnvv/igreja/internal/auth"
	"github.com/rnvv/igreja/internal/model"
	"github.com/rnvv/igreja/internal/store"
)

const (
	recentMemberLimit = 5
	chartLimit        = 10
)

type DashboardHandler struct {
	memberStore      *store.MemberStore
	transactionStore *store.TransactionStore
	currency         string
	templates        *template.Template
	logger           *slog.Logger
}

func NewDashboardHandler(ms *store.MemberStore, ts *store.TransactionStore, currency string, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		memberStore:      ms,
		transactionStore: ts,
		currency:         currency,
		templates:        newTemplates(),
		logger:           logger,
	}
}

// ChartBar is one bar of the dashboard's movement chart.
type ChartBar struct {
	Date      string
	Type      string
	Amount    decimal.Decimal
	HeightPct int
}

// Page renders the dashboard. The four reads are independent: when one fails
// it is logged and its card keeps the zero value, without blocking the others.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	churchID := auth.ChurchID(r.Context())

	totalMembers, err := h.memberStore.CountByChurch(churchID)
	if err != nil {
		h.logger.Error("count members", "error", err)
	}

	balance, err := h.transactionStore.Balance(churchID)
	if err != nil {
		h.logger.Error("compute balance", "error", err)
	}

	recentMembers, err := h.memberStore.ListRecent(churchID, recentMemberLimit)
	if err != nil {
		h.logger.Error("recent members", "error", err)
	}

	recentTransactions, err := h.transactionStore.ListRecent(churchID, chartLimit)
	if err != nil {
		h.logger.Error("recent transactions", "error", err)
	}

	data := map[string]any{
		"Title":         "Dashboard",
		"Active":        "dashboard",
		"TotalMembers":  totalMembers,
		"Balance":       balance,
		"Currency":      h.currency,
		"RecentMembers": recentMembers,
		"Chart":         buildChart(recentTransactions),
	}
	render(w, h.templates, h.logger, "dashboard.html", data)
}

// buildChart reverses the newest-first slice into ascending date order and
// scales bar heights against the largest amount.
func buildChart(transactions []model.Transaction) []ChartBar {
	bars := make([]ChartBar, 0, len(transactions))
	for i := len(transactions) - 1; i >= 0; i-- {
		t := transactions[i]
		bars = append(bars, ChartBar{
			Date:   t.Date,
			Type:   t.Type,
			Amount: t.Amount,
		})
	}

	max := decimal.Zero
	for _, b := range bars {
		if b.Amount.GreaterThan(max) {
			max = b.Amount
		}
	}
	if max.IsZero() {
		return bars
	}

	hundred := decimal.NewFromInt(100)
	for i := range bars {
		pct := int(bars[i].Amount.Mul(hundred).Div(max).IntPart())
		if pct < 2 {
			pct = 2 // keep tiny amounts visible
		}
		bars[i].HeightPct = pct
	}
	return bars
}
