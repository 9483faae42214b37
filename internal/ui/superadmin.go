package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/cache"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type usersLoadedMsg struct {
	users []api.SuperAdminUser
	err   error
}

type usersWithItemsLoadedMsg struct {
	users []api.SuperAdminUserWithItems
	err   error
}

type deleteUserResultMsg struct {
	message string
	err     error
}

// usersPage is the super-admin account table with deletion. The "w" key
// toggles a view joined with each user's purchase agreements.
type usersPage struct {
	users     []api.SuperAdminUser
	withItems []api.SuperAdminUserWithItems
	showItems bool
	table     table.Model
	reason    textinput.Model
	deleting  bool
	busy      bool
	loaded    bool
	errText   string
}

func newUsersPage() *usersPage {
	reason := textinput.New()
	reason.Placeholder = "reason"
	reason.CharLimit = 200
	reason.Width = 50
	return &usersPage{reason: reason}
}

func (p *usersPage) Init(app *App) tea.Cmd { return p.load(app) }

func (p *usersPage) load(app *App) tea.Cmd {
	return func() tea.Msg {
		users, err := app.services.Queries.SuperAdminUsers(context.Background())
		return usersLoadedMsg{users: users, err: err}
	}
}

func (p *usersPage) loadWithItems(app *App) tea.Cmd {
	return func() tea.Msg {
		users, err := app.services.Queries.SuperAdminUsersWithItems(context.Background())
		return usersWithItemsLoadedMsg{users: users, err: err}
	}
}

func (p *usersPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.loaded = true
		p.users = msg.users
		if !p.showItems {
			p.table = usersTable(app.theme, msg.users)
		}
		return p, nil

	case usersWithItemsLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.withItems = msg.users
		if p.showItems {
			p.table = usersWithItemsTable(app.theme, msg.users)
		}
		return p, nil

	case invalidatedMsg:
		var cmds []tea.Cmd
		for _, tag := range msg.tags {
			switch tag {
			case cache.TagSuperAdminUsers:
				cmds = append(cmds, p.load(app))
			case cache.TagSuperAdminUsersWithItems:
				if p.showItems {
					cmds = append(cmds, p.loadWithItems(app))
				}
			}
		}
		return p, tea.Batch(cmds...)

	case deleteUserResultMsg:
		p.busy = false
		p.deleting = false
		p.reason.SetValue("")
		p.reason.Blur()
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		notify.Success(app.services.Notifier, msg.message)
		return p, nil

	case tea.KeyMsg:
		if p.deleting {
			switch msg.String() {
			case "enter":
				return p, p.deleteSelected(app)
			case "esc":
				p.deleting = false
				p.reason.SetValue("")
				p.reason.Blur()
				return p, nil
			}
			var cmd tea.Cmd
			p.reason, cmd = p.reason.Update(msg)
			return p, cmd
		}
		switch msg.String() {
		case "x":
			if len(p.users) == 0 || p.busy || p.showItems {
				return p, nil
			}
			p.deleting = true
			p.reason.Focus()
			return p, nil
		case "w":
			p.showItems = !p.showItems
			if p.showItems {
				p.table = usersWithItemsTable(app.theme, p.withItems)
				return p, p.loadWithItems(app)
			}
			p.table = usersTable(app.theme, p.users)
			return p, nil
		case "s":
			return p, navigate(RouteSuperAdminStats)
		case "g":
			return p, navigate(RouteSuperAdminPricing)
		case "q":
			return p, navigate(RoutePublicRequests)
		case "n":
			return p, navigate(RouteRegisterAdmin)
		case "m":
			return p, navigate(RouteDateMaintenance)
		}
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *usersPage) deleteSelected(app *App) tea.Cmd {
	cursor := p.table.Cursor()
	if cursor < 0 || cursor >= len(p.users) {
		return nil
	}
	user := p.users[cursor]
	reason := p.reason.Value()
	p.busy = true
	p.errText = ""
	return func() tea.Msg {
		message, err := app.services.Mutations.DeleteUser(context.Background(), user.ID, reason)
		return deleteUserResultMsg{message: message, err: err}
	}
}

func (p *usersPage) View(app *App) string {
	if !p.loaded {
		if p.errText != "" {
			return renderError(app.theme, p.errText)
		}
		return renderHint(app.theme, "Loading users...")
	}

	body := p.table.View()
	if p.deleting {
		body += "\n\nDelete with reason: " + p.reason.View() +
			"\n" + renderHint(app.theme, "enter: confirm delete | esc: cancel")
	} else {
		hint := "x: delete | w: toggle items | n: create admin | s: stats | g: pricing | q: public requests | m: dates"
		if p.busy {
			hint = "Deleting..."
		}
		body += "\n\n" + renderHint(app.theme, hint)
	}
	if p.errText != "" {
		body += "\n" + renderError(app.theme, p.errText)
	}
	return body
}

func usersTable(theme Theme, users []api.SuperAdminUser) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Email", Width: 28},
		{Title: "Role", Width: 12},
		{Title: "Created By", Width: 22},
	}
	rows := make([]table.Row, 0, len(users))
	for _, user := range users {
		creator := ""
		if user.CreatedByAdmin != nil {
			creator = user.CreatedByAdmin.FullName
		}
		rows = append(rows, table.Row{user.FullName, user.Email, user.Role, creator})
	}
	return newTable(theme, columns, rows, 12)
}

func usersWithItemsTable(theme Theme, users []api.SuperAdminUserWithItems) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Email", Width: 28},
		{Title: "Items", Width: 6},
		{Title: "Outstanding", Width: 16},
	}
	rows := make([]table.Row, 0, len(users))
	for _, user := range users {
		var outstanding float64
		for _, item := range user.EasyBoughtItems {
			outstanding += item.LoanedAmount
		}
		rows = append(rows, table.Row{
			user.FullName,
			user.Email,
			strconv.Itoa(len(user.EasyBoughtItems)),
			pricing.FormatNaira(outstanding),
		})
	}
	return newTable(theme, columns, rows, 12)
}

type statsLoadedMsg struct {
	stats *api.LoginStats
	err   error
}

// statsPage shows session counts by role.
type statsPage struct {
	stats   *api.LoginStats
	errText string
}

func newStatsPage() *statsPage { return &statsPage{} }

func (p *statsPage) Init(app *App) tea.Cmd {
	return func() tea.Msg {
		stats, err := app.services.Queries.LoginStats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (p *statsPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.stats = msg.stats
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return p, navigate(RouteSuperAdminUsers)
		}
	}
	return p, nil
}

func (p *statsPage) View(app *App) string {
	if p.errText != "" {
		return renderError(app.theme, p.errText)
	}
	if p.stats == nil {
		return renderHint(app.theme, "Loading stats...")
	}
	faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)
	strong := lipgloss.NewStyle().Foreground(app.theme.NormalText).Bold(true)
	body := lipgloss.JoinVertical(lipgloss.Left,
		faint.Render("Users logged in        ")+strong.Render(strconv.Itoa(p.stats.UsersLoggedIn)),
		faint.Render("Admins logged in       ")+strong.Render(strconv.Itoa(p.stats.AdminsLoggedIn)),
		faint.Render("Super-admins logged in ")+strong.Render(strconv.Itoa(p.stats.SuperAdminsLoggedIn)),
		faint.Render("Total                  ")+strong.Render(strconv.Itoa(p.stats.TotalLoggedIn)),
	)
	return body + "\n\n" + renderHint(app.theme, "esc: back")
}

type pricingLoadedMsg struct {
	catalog *api.Catalog
	err     error
}

type pricingSavedMsg struct {
	message string
	err     error
}

// pricingPage lets super-admins edit a capacity price of a model.
type pricingPage struct {
	catalog *api.Catalog
	table   table.Model
	rows    []pricingRow
	form    form
	editing bool
	busy    bool
	errText string
}

type pricingRow struct {
	model    string
	capacity string
	price    float64
}

func newPricingPage() *pricingPage {
	return &pricingPage{form: newForm("New price")}
}

func (p *pricingPage) Init(app *App) tea.Cmd { return p.load(app) }

func (p *pricingPage) load(app *App) tea.Cmd {
	return func() tea.Msg {
		catalog, err := app.services.Queries.Pricing(context.Background())
		return pricingLoadedMsg{catalog: catalog, err: err}
	}
}

func (p *pricingPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case pricingLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.catalog = msg.catalog
		p.rows = flattenCatalog(msg.catalog)
		p.table = pricingTable(app.theme, p.rows)
		return p, nil

	case invalidatedMsg:
		for _, tag := range msg.tags {
			if tag == cache.TagPricing {
				return p, p.load(app)
			}
		}
		return p, nil

	case pricingSavedMsg:
		p.busy = false
		p.editing = false
		p.form.reset()
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		notify.Success(app.services.Notifier, msg.message)
		return p, nil

	case tea.KeyMsg:
		if p.editing {
			switch msg.String() {
			case "enter":
				return p, p.save(app)
			case "esc":
				p.editing = false
				p.form.reset()
				return p, nil
			}
			cmd, _ := p.form.Update(msg)
			return p, cmd
		}
		switch msg.String() {
		case "e":
			if len(p.rows) == 0 || p.busy {
				return p, nil
			}
			p.editing = true
			return p, nil
		case "esc":
			return p, navigate(RouteSuperAdminUsers)
		}
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *pricingPage) save(app *App) tea.Cmd {
	cursor := p.table.Cursor()
	if cursor < 0 || cursor >= len(p.rows) {
		return nil
	}
	row := p.rows[cursor]
	price, err := pricing.ParseAmount(p.form.value(0))
	if err != nil {
		p.errText = userMessage(err)
		return nil
	}
	if price <= 0 {
		p.errText = "Price must be greater than zero"
		return nil
	}

	p.errText = ""
	p.busy = true
	update := api.PricingUpdate{Model: row.model, Capacity: row.capacity, Price: price}
	return func() tea.Msg {
		message, err := app.services.Mutations.UpdatePricing(context.Background(), []api.PricingUpdate{update})
		return pricingSavedMsg{message: message, err: err}
	}
}

func (p *pricingPage) View(app *App) string {
	if p.catalog == nil {
		if p.errText != "" {
			return renderError(app.theme, p.errText)
		}
		return renderHint(app.theme, "Loading pricing...")
	}

	body := p.table.View()
	if p.editing {
		cursor := p.table.Cursor()
		if cursor >= 0 && cursor < len(p.rows) {
			row := p.rows[cursor]
			body += fmt.Sprintf("\n\nEditing %s %s (now %s)\n", row.model, row.capacity, pricing.FormatNaira(row.price))
		}
		body += p.form.View(app.theme) + "\n" + renderHint(app.theme, "enter: save | esc: cancel")
	} else {
		hint := "e: edit price | esc: back"
		if p.busy {
			hint = "Saving..."
		}
		body += "\n\n" + renderHint(app.theme, hint)
	}
	if p.errText != "" {
		body += "\n" + renderError(app.theme, p.errText)
	}
	return body
}

func flattenCatalog(catalog *api.Catalog) []pricingRow {
	var rows []pricingRow
	for _, model := range catalog.Models {
		for _, capacity := range model.Capacities {
			rows = append(rows, pricingRow{
				model:    model.Model,
				capacity: capacity,
				price:    model.PricesByCapacity[capacity],
			})
		}
	}
	return rows
}

func pricingTable(theme Theme, rows []pricingRow) table.Model {
	columns := []table.Column{
		{Title: "Model", Width: 20},
		{Title: "Capacity", Width: 10},
		{Title: "Price", Width: 16},
	}
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, table.Row{row.model, row.capacity, pricing.FormatNaira(row.price)})
	}
	return newTable(theme, columns, tableRows, 12)
}
