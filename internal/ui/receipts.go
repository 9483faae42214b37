package ui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/cache"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type receiptsLoadedMsg struct {
	receipts []api.ReceiptItem
	err      error
}

type receiptsPage struct {
	receipts []api.ReceiptItem
	table    table.Model
	loaded   bool
	errText  string
}

func newReceiptsPage() *receiptsPage { return &receiptsPage{} }

func (p *receiptsPage) Init(app *App) tea.Cmd { return p.load(app) }

func (p *receiptsPage) load(app *App) tea.Cmd {
	return func() tea.Msg {
		receipts, err := app.services.Queries.Receipts(context.Background())
		return receiptsLoadedMsg{receipts: receipts, err: err}
	}
}

func (p *receiptsPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case receiptsLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.loaded = true
		p.receipts = msg.receipts
		p.table = receiptsTable(app.theme, msg.receipts)
		return p, nil

	case invalidatedMsg:
		for _, tag := range msg.tags {
			if tag == cache.TagReceipts {
				return p, p.load(app)
			}
		}
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "u":
			return p, navigate(RouteUploadReceipt)
		case "d":
			return p, navigate(RouteDashboard)
		}
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *receiptsPage) View(app *App) string {
	if p.errText != "" {
		return renderError(app.theme, p.errText)
	}
	if !p.loaded {
		return renderHint(app.theme, "Loading receipts...")
	}
	hint := renderHint(app.theme, "u: upload receipt | d: dashboard")
	if len(p.receipts) == 0 {
		return renderHint(app.theme, "No receipts uploaded yet.") + "\n\n" + hint
	}
	return p.table.View() + "\n\n" + hint
}

func receiptsTable(theme Theme, receipts []api.ReceiptItem) table.Model {
	columns := []table.Column{
		{Title: "Amount", Width: 14},
		{Title: "Status", Width: 10},
		{Title: "Type", Width: 12},
		{Title: "Uploaded", Width: 22},
	}
	rows := make([]table.Row, 0, len(receipts))
	for _, receipt := range receipts {
		rows = append(rows, table.Row{
			pricing.FormatNaira(receipt.Amount),
			receipt.Status,
			receipt.FileType,
			receipt.CreatedAt,
		})
	}
	return newTable(theme, columns, rows, 10)
}

type uploadResultMsg struct {
	message string
	err     error
}

// uploadPage sends a payment proof file with its amount.
type uploadPage struct {
	form       form
	submitting bool
	errText    string
}

func newUploadPage() *uploadPage {
	return &uploadPage{form: newForm("File path", "Amount")}
}

func (p *uploadPage) Init(*App) tea.Cmd { return nil }

func (p *uploadPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if p.submitting {
				return p, nil
			}
			return p, p.submit(app)
		case "esc":
			return p, navigate(RouteReceipts)
		}

	case uploadResultMsg:
		p.submitting = false
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		notify.Success(app.services.Notifier, msg.message)
		return p, navigate(RouteReceipts)
	}

	cmd, _ := p.form.Update(msg)
	return p, cmd
}

func (p *uploadPage) submit(app *App) tea.Cmd {
	path := p.form.value(0)
	if path == "" {
		p.errText = "Enter the path of the receipt file"
		return nil
	}
	amount, err := pricing.ParseAmount(p.form.value(1))
	if err != nil {
		p.errText = userMessage(err)
		return nil
	}
	if amount <= 0 {
		p.errText = "Amount must be greater than zero"
		return nil
	}

	p.errText = ""
	p.submitting = true
	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return uploadResultMsg{err: util.NewValidationError("Could not open " + path)}
		}
		defer file.Close()

		message, err := app.services.Mutations.UploadReceipt(context.Background(), path, file, amount)
		return uploadResultMsg{message: message, err: err}
	}
}

func (p *uploadPage) View(app *App) string {
	body := p.form.View(app.theme)
	if p.submitting {
		body += "\n\n" + renderHint(app.theme, "Uploading...")
	}
	if p.errText != "" {
		body += "\n\n" + renderError(app.theme, p.errText)
	}
	return body + "\n\n" + renderHint(app.theme, "enter: upload | esc: back")
}
