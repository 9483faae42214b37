package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/cache"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

const publicRequestsPageSize = 20

type publicRequestsLoadedMsg struct {
	list *api.PublicRequestList
	err  error
}

type publicRequestActionMsg struct {
	message string
	err     error
}

// requestAction is the pending moderation action on a selected lead.
type requestAction int

const (
	actionNone requestAction = iota
	actionApprove
	actionReject
	actionConvert
)

// publicRequestsPage is the super-admin lead moderation table with
// status filtering, search and pagination.
type publicRequestsPage struct {
	list    *api.PublicRequestList
	table   table.Model
	filter  api.PublicRequestFilter
	search  textinput.Model
	action  requestAction
	form    form
	busy    bool
	loaded  bool
	errText string

	searching bool
}

func newPublicRequestsPage() *publicRequestsPage {
	search := textinput.New()
	search.Placeholder = "search by name or email"
	search.CharLimit = 80
	search.Width = 40
	return &publicRequestsPage{
		filter: api.PublicRequestFilter{Page: 1, Limit: publicRequestsPageSize},
		search: search,
		form:   newForm("Customer email", "Price", "Down payment", "Duration", "Reason"),
	}
}

func (p *publicRequestsPage) Init(app *App) tea.Cmd { return p.load(app) }

func (p *publicRequestsPage) load(app *App) tea.Cmd {
	filter := p.filter
	return func() tea.Msg {
		list, err := app.services.Queries.PublicRequests(context.Background(), filter)
		return publicRequestsLoadedMsg{list: list, err: err}
	}
}

func (p *publicRequestsPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case publicRequestsLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.loaded = true
		p.list = msg.list
		p.table = publicRequestsTable(app.theme, msg.list.Requests)
		return p, nil

	case invalidatedMsg:
		for _, tag := range msg.tags {
			if tag == cache.TagPublicRequests {
				return p, p.load(app)
			}
		}
		return p, nil

	case publicRequestActionMsg:
		p.busy = false
		p.action = actionNone
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
		if p.searching {
			switch msg.String() {
			case "enter":
				p.searching = false
				p.search.Blur()
				p.filter.Search = p.search.Value()
				p.filter.Page = 1
				return p, p.load(app)
			case "esc":
				p.searching = false
				p.search.Blur()
				return p, nil
			}
			var cmd tea.Cmd
			p.search, cmd = p.search.Update(msg)
			return p, cmd
		}
		if p.action != actionNone {
			switch msg.String() {
			case "enter":
				return p, p.runAction(app)
			case "esc":
				p.action = actionNone
				p.form.reset()
				return p, nil
			}
			cmd, _ := p.form.Update(msg)
			return p, cmd
		}
		return p.handleListKey(app, msg)
	}
	return p, nil
}

func (p *publicRequestsPage) handleListKey(app *App, msg tea.KeyMsg) (page, tea.Cmd) {
	switch msg.String() {
	case "/":
		p.searching = true
		p.search.Focus()
		return p, nil
	case "f":
		p.filter.Status = nextStatusFilter(p.filter.Status)
		p.filter.Page = 1
		return p, p.load(app)
	case "a":
		return p.startAction(actionApprove)
	case "x":
		return p.startAction(actionReject)
	case "c":
		return p.startAction(actionConvert)
	case "right", "]":
		if p.list != nil && p.list.Pagination != nil && p.filter.Page < p.list.Pagination.Pages {
			p.filter.Page++
			return p, p.load(app)
		}
		return p, nil
	case "left", "[":
		if p.filter.Page > 1 {
			p.filter.Page--
			return p, p.load(app)
		}
		return p, nil
	case "esc":
		return p, navigate(RouteSuperAdminUsers)
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

func (p *publicRequestsPage) startAction(action requestAction) (page, tea.Cmd) {
	if p.busy || p.list == nil || len(p.list.Requests) == 0 {
		return p, nil
	}
	p.action = action
	if action == actionConvert {
		if selected := p.selected(); selected != nil {
			p.form.setValue(0, selected.Email)
		}
	}
	return p, nil
}

func (p *publicRequestsPage) selected() *api.PublicRequest {
	if p.list == nil {
		return nil
	}
	cursor := p.table.Cursor()
	if cursor < 0 || cursor >= len(p.list.Requests) {
		return nil
	}
	return &p.list.Requests[cursor]
}

func (p *publicRequestsPage) runAction(app *App) tea.Cmd {
	selected := p.selected()
	if selected == nil {
		return nil
	}
	requestID := selected.RequestID
	reason := p.form.value(4)

	switch p.action {
	case actionApprove:
		p.busy = true
		return func() tea.Msg {
			message, err := app.services.Mutations.ApprovePublicRequest(context.Background(), requestID, reason)
			return publicRequestActionMsg{message: message, err: err}
		}

	case actionReject:
		if reason == "" {
			p.errText = "A rejection reason is required"
			return nil
		}
		p.busy = true
		return func() tea.Msg {
			message, err := app.services.Mutations.RejectPublicRequest(context.Background(), requestID, reason)
			return publicRequestActionMsg{message: message, err: err}
		}

	case actionConvert:
		price, err := pricing.ParseAmount(p.form.value(1))
		if err != nil {
			p.errText = userMessage(err)
			return nil
		}
		downPayment, err := pricing.ParseAmount(p.form.value(2))
		if err != nil {
			p.errText = userMessage(err)
			return nil
		}
		var duration int
		if _, err := fmt.Sscanf(p.form.value(3), "%d", &duration); err != nil || duration <= 0 {
			p.errText = "Enter the duration as a number"
			return nil
		}

		convert := api.ConvertPublicRequest{
			UserEmail:   p.form.value(0),
			PhonePrice:  price,
			DownPayment: downPayment,
			Reason:      reason,
		}
		if selected.Plan == api.PlanWeekly {
			convert.WeeklyPlan = duration
		} else {
			convert.MonthlyPlan = duration
		}
		p.busy = true
		return func() tea.Msg {
			message, err := app.services.Mutations.ConvertPublicRequest(context.Background(), requestID, convert)
			return publicRequestActionMsg{message: message, err: err}
		}
	}
	return nil
}

func (p *publicRequestsPage) View(app *App) string {
	if !p.loaded {
		if p.errText != "" {
			return renderError(app.theme, p.errText)
		}
		return renderHint(app.theme, "Loading public requests...")
	}

	header := "Status filter: "
	if p.filter.Status == "" {
		header += "all"
	} else {
		header += p.filter.Status
	}
	if p.list.Pagination != nil {
		header += fmt.Sprintf("  Page %d of %d (%d total)", p.list.Pagination.Page, p.list.Pagination.Pages, p.list.Pagination.Total)
	}

	body := renderHint(app.theme, header) + "\n" + p.table.View()

	switch {
	case p.searching:
		body += "\n\nSearch: " + p.search.View()
	case p.action != actionNone:
		label := map[requestAction]string{
			actionApprove: "Approve",
			actionReject:  "Reject",
			actionConvert: "Convert",
		}[p.action]
		body += "\n\n" + label + " selected request:\n" + p.form.View(app.theme) +
			"\n" + renderHint(app.theme, "enter: confirm | esc: cancel")
	default:
		hint := "a: approve | x: reject | c: convert | /: search | f: filter | [ ]: page | esc: back"
		if p.busy {
			hint = "Working..."
		}
		body += "\n\n" + renderHint(app.theme, hint)
	}
	if p.errText != "" {
		body += "\n" + renderError(app.theme, p.errText)
	}
	return body
}

// nextStatusFilter cycles all -> pending -> verified -> approved ->
// rejected -> converted -> all.
func nextStatusFilter(status string) string {
	switch status {
	case "":
		return "pending"
	case "pending":
		return "verified"
	case "verified":
		return "approved"
	case "approved":
		return "rejected"
	case "rejected":
		return "converted"
	default:
		return ""
	}
}

func publicRequestsTable(theme Theme, requests []api.PublicRequest) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Email", Width: 24},
		{Title: "Model", Width: 16},
		{Title: "Capacity", Width: 9},
		{Title: "Plan", Width: 8},
		{Title: "Status", Width: 10},
	}
	rows := make([]table.Row, 0, len(requests))
	for _, request := range requests {
		rows = append(rows, table.Row{
			request.FullName,
			request.Email,
			request.IphoneModel,
			request.Capacity,
			string(request.Plan),
			request.Status,
		})
	}
	return newTable(theme, columns, rows, 10)
}
