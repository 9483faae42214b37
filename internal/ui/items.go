package ui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/cache"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type itemsLoadedMsg struct {
	items []api.EasyBoughtItem
	err   error
}

type itemsPage struct {
	items   []api.EasyBoughtItem
	table   table.Model
	loaded  bool
	errText string
}

func newItemsPage() *itemsPage { return &itemsPage{} }

func (p *itemsPage) Init(app *App) tea.Cmd { return p.load(app) }

func (p *itemsPage) load(app *App) tea.Cmd {
	return func() tea.Msg {
		items, err := app.services.Queries.Items(context.Background())
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (p *itemsPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.loaded = true
		p.items = msg.items
		p.table = itemsTable(app.theme, msg.items)
		return p, nil

	case invalidatedMsg:
		for _, tag := range msg.tags {
			if tag == cache.TagItems {
				return p, p.load(app)
			}
		}
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "d":
			return p, navigate(RouteDashboard)
		case "r":
			return p, navigate(RouteReceipts)
		}
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *itemsPage) View(app *App) string {
	if p.errText != "" {
		return renderError(app.theme, p.errText)
	}
	if !p.loaded {
		return renderHint(app.theme, "Loading items...")
	}
	if len(p.items) == 0 {
		return renderHint(app.theme, "No purchases yet.") + "\n\n" +
			renderHint(app.theme, "d: dashboard | r: receipts")
	}
	return p.table.View() + "\n\n" + renderHint(app.theme, "d: dashboard | r: receipts")
}

func itemsTable(theme Theme, items []api.EasyBoughtItem) table.Model {
	columns := []table.Column{
		{Title: "Model", Width: 18},
		{Title: "Plan", Width: 8},
		{Title: "Duration", Width: 9},
		{Title: "Price", Width: 14},
		{Title: "Down", Width: 14},
		{Title: "Loaned", Width: 14},
	}
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		duration := item.MonthlyPlan
		if item.Plan == api.PlanWeekly {
			duration = item.WeeklyPlan
		}
		rows = append(rows, table.Row{
			item.IphoneModel,
			string(item.Plan),
			strconv.Itoa(duration),
			pricing.FormatNaira(item.PhonePrice),
			pricing.FormatNaira(item.DownPayment),
			pricing.FormatNaira(item.LoanedAmount),
		})
	}
	return newTable(theme, columns, rows, 10)
}
