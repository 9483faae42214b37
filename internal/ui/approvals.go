package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/cache"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type pendingLoadedMsg struct {
	receipts []api.PendingReceiptItem
	err      error
}

type approveResultMsg struct {
	message string
	err     error
}

// approvalsPage lists pending receipts and approves the selected one
// with an optional reason.
type approvalsPage struct {
	receipts  []api.PendingReceiptItem
	table     table.Model
	reason    textinput.Model
	approving bool
	busy      bool
	loaded    bool
	errText   string
}

func newApprovalsPage() *approvalsPage {
	reason := textinput.New()
	reason.Placeholder = "reason (optional)"
	reason.CharLimit = 200
	reason.Width = 50
	return &approvalsPage{reason: reason}
}

func (p *approvalsPage) Init(app *App) tea.Cmd { return p.load(app) }

func (p *approvalsPage) load(app *App) tea.Cmd {
	return func() tea.Msg {
		receipts, err := app.services.Queries.PendingReceipts(context.Background())
		return pendingLoadedMsg{receipts: receipts, err: err}
	}
}

func (p *approvalsPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case pendingLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.loaded = true
		p.receipts = msg.receipts
		p.table = pendingTable(app.theme, msg.receipts)
		return p, nil

	case invalidatedMsg:
		for _, tag := range msg.tags {
			if tag == cache.TagPendingReceipts {
				return p, p.load(app)
			}
		}
		return p, nil

	case approveResultMsg:
		p.busy = false
		p.approving = false
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
		if p.approving {
			switch msg.String() {
			case "enter":
				return p, p.approve(app)
			case "esc":
				p.approving = false
				p.reason.SetValue("")
				p.reason.Blur()
				return p, nil
			}
			var cmd tea.Cmd
			p.reason, cmd = p.reason.Update(msg)
			return p, cmd
		}
		switch msg.String() {
		case "a":
			if len(p.receipts) == 0 || p.busy {
				return p, nil
			}
			p.approving = true
			p.reason.Focus()
			return p, nil
		}
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *approvalsPage) approve(app *App) tea.Cmd {
	cursor := p.table.Cursor()
	if cursor < 0 || cursor >= len(p.receipts) {
		return nil
	}
	receipt := p.receipts[cursor]
	reason := p.reason.Value()
	p.busy = true
	p.errText = ""
	return func() tea.Msg {
		message, err := app.services.Mutations.ApproveReceipt(context.Background(), receipt.ID, reason)
		return approveResultMsg{message: message, err: err}
	}
}

func (p *approvalsPage) View(app *App) string {
	if p.errText != "" && !p.loaded {
		return renderError(app.theme, p.errText)
	}
	if !p.loaded {
		return renderHint(app.theme, "Loading pending receipts...")
	}
	if len(p.receipts) == 0 {
		return renderHint(app.theme, "No receipts waiting for approval.")
	}

	body := p.table.View()
	if p.approving {
		body += "\n\nApprove with reason: " + p.reason.View() +
			"\n" + renderHint(app.theme, "enter: confirm | esc: cancel")
	} else {
		hint := "a: approve selected"
		if p.busy {
			hint = "Approving..."
		}
		body += "\n\n" + renderHint(app.theme, hint)
	}
	if p.errText != "" {
		body += "\n" + renderError(app.theme, p.errText)
	}
	return body
}

func pendingTable(theme Theme, receipts []api.PendingReceiptItem) table.Model {
	columns := []table.Column{
		{Title: "Customer", Width: 22},
		{Title: "Email", Width: 26},
		{Title: "Amount", Width: 14},
		{Title: "Uploaded", Width: 22},
	}
	rows := make([]table.Row, 0, len(receipts))
	for _, receipt := range receipts {
		name, email := "", ""
		if receipt.User != nil {
			name = receipt.User.FullName
			email = receipt.User.Email
		}
		rows = append(rows, table.Row{
			name,
			email,
			pricing.FormatNaira(receipt.Amount),
			receipt.CreatedAt,
		})
	}
	return newTable(theme, columns, rows, 10)
}
