package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/cache"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type dashboardLoadedMsg struct {
	dashboard *api.Dashboard
	err       error
}

type currentUserLoadedMsg struct {
	user *api.CurrentUser
	err  error
}

type dashboardPage struct {
	dashboard *api.Dashboard
	user      *api.CurrentUser
	payments  table.Model
	errText   string
}

func newDashboardPage() *dashboardPage {
	return &dashboardPage{}
}

func (p *dashboardPage) Init(app *App) tea.Cmd {
	loadUser := func() tea.Msg {
		user, err := app.services.Queries.CurrentUser(context.Background())
		return currentUserLoadedMsg{user: user, err: err}
	}
	return tea.Batch(p.load(app), loadUser)
}

func (p *dashboardPage) load(app *App) tea.Cmd {
	return func() tea.Msg {
		dashboard, err := app.services.Queries.Dashboard(context.Background())
		return dashboardLoadedMsg{dashboard: dashboard, err: err}
	}
}

func (p *dashboardPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.dashboard = msg.dashboard
		p.payments = paymentsTable(app.theme, msg.dashboard.RecentPayments)
		return p, nil

	case currentUserLoadedMsg:
		// Greeting only; a failure here is not worth an error state.
		if msg.err == nil {
			p.user = msg.user
		}
		return p, nil

	case invalidatedMsg:
		for _, tag := range msg.tags {
			if tag == cache.TagDashboard {
				return p, p.load(app)
			}
		}
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "i":
			return p, navigate(RouteItems)
		case "r":
			return p, navigate(RouteReceipts)
		case "p":
			return p, navigate(RouteProfile)
		}
		var cmd tea.Cmd
		p.payments, cmd = p.payments.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *dashboardPage) View(app *App) string {
	if p.errText != "" {
		return renderError(app.theme, p.errText)
	}
	if p.dashboard == nil {
		return renderHint(app.theme, "Loading dashboard...")
	}

	d := p.dashboard
	faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)
	strong := lipgloss.NewStyle().Foreground(app.theme.NormalText).Bold(true)

	var greeting string
	if p.user != nil {
		name := p.user.FullName
		if name == "" {
			name = p.user.FirstName
		}
		greeting = strong.Render("Welcome, "+name) + "\n\n"
	}

	summary := lipgloss.JoinVertical(lipgloss.Left,
		faint.Render("Total")+"      "+strong.Render(pricing.FormatNaira(d.TotalAmount)),
		faint.Render("Paid")+"       "+strong.Render(pricing.FormatNaira(d.TotalPaid)),
		faint.Render("Remaining")+"  "+strong.Render(pricing.FormatNaira(d.RemainingBalance)),
		faint.Render("Progress")+"   "+strong.Render(fmt.Sprintf("%.0f%%", d.Progress)),
		faint.Render("Next due")+"   "+strong.Render(fmt.Sprintf("%s (%s)", d.NextPaymentDue, pricing.FormatNaira(d.NextPaymentAmount))),
		faint.Render("Status")+"     "+strong.Render(d.PlanStatus),
	)

	body := greeting + summary
	if len(d.RecentPayments) > 0 {
		body += "\n\n" + p.payments.View()
	}
	return body + "\n\n" + renderHint(app.theme, "i: items | r: receipts | p: profile")
}

func paymentsTable(theme Theme, payments []api.DashboardPayment) table.Model {
	columns := []table.Column{
		{Title: "Amount", Width: 14},
		{Title: "Status", Width: 10},
		{Title: "Method", Width: 12},
		{Title: "Paid At", Width: 20},
	}
	rows := make([]table.Row, 0, len(payments))
	for _, payment := range payments {
		rows = append(rows, table.Row{
			pricing.FormatNaira(payment.Amount),
			payment.Status,
			payment.PaymentMethod,
			payment.PaidAt,
		})
	}
	return newTable(theme, columns, rows, 6)
}

// newTable applies the shared table styling.
func newTable(theme Theme, columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(theme.HeaderForeground).
		BorderForeground(theme.BorderColor).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground)
	t.SetStyles(styles)
	return t
}
