package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

// maintSection selects which record kind the maintenance page edits.
type maintSection int

const (
	maintReceipt maintSection = iota
	maintUser
	maintItem
)

func (s maintSection) title() string {
	switch s {
	case maintUser:
		return "User Next Due Date"
	case maintItem:
		return "Item Created Date"
	default:
		return "Receipt Uploaded Date"
	}
}

func (s maintSection) idLabel() string {
	switch s {
	case maintUser:
		return "User ID"
	case maintItem:
		return "Item ID"
	default:
		return "Receipt ID"
	}
}

func (s maintSection) dateLabel() string {
	switch s {
	case maintUser:
		return "New due date"
	case maintItem:
		return "New created date"
	default:
		return "New uploaded date"
	}
}

// maintDateLayouts are the input formats the page accepts. The value is
// normalized to RFC 3339 before it goes over the wire.
var maintDateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

func parseMaintDate(value string) (string, error) {
	for _, layout := range maintDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC().Format(time.RFC3339), nil
		}
	}
	return "", util.NewValidationError("Invalid date/time, use YYYY-MM-DD or YYYY-MM-DD HH:MM")
}

type maintPreviewMsg struct {
	section maintSection
	receipt *api.ReceiptUploadedDatePreview
	user    *api.UserNextDueDatePreview
	item    *api.ItemCreatedDatePreview
	err     error
}

type maintUpdatedMsg struct {
	section maintSection
	message string
	err     error
}

// dateMaintPage is the legacy-correction tool: a super admin previews
// and then applies a date change on a receipt, user, or purchase
// agreement. Updates require a preview first and are audit logged by
// the backend.
type dateMaintPage struct {
	section maintSection
	form    form

	// Identifier and date captured at preview time, so the applied
	// change is exactly what was previewed.
	previewedID   string
	previewedDate string

	receiptPreview *api.ReceiptUploadedDatePreview
	userPreview    *api.UserNextDueDatePreview
	itemPreview    *api.ItemCreatedDatePreview

	confirming bool
	busy       bool
	errText    string
}

func newDateMaintPage() *dateMaintPage {
	page := &dateMaintPage{}
	page.form = page.sectionForm()
	return page
}

func (p *dateMaintPage) sectionForm() form {
	return newForm(p.section.idLabel(), p.section.dateLabel(), "Reason")
}

func (p *dateMaintPage) Init(*App) tea.Cmd { return nil }

func (p *dateMaintPage) hasPreview() bool {
	switch p.section {
	case maintUser:
		return p.userPreview != nil
	case maintItem:
		return p.itemPreview != nil
	default:
		return p.receiptPreview != nil
	}
}

func (p *dateMaintPage) clearPreviews() {
	p.receiptPreview = nil
	p.userPreview = nil
	p.itemPreview = nil
	p.previewedID = ""
	p.previewedDate = ""
}

func (p *dateMaintPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case maintPreviewMsg:
		p.busy = false
		if msg.section != p.section {
			return p, nil
		}
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.receiptPreview = msg.receipt
		p.userPreview = msg.user
		p.itemPreview = msg.item
		notify.Success(app.services.Notifier, p.section.title()+" preview loaded")
		return p, nil

	case maintUpdatedMsg:
		p.busy = false
		p.confirming = false
		if msg.section != p.section {
			return p, nil
		}
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		notify.Success(app.services.Notifier, msg.message)
		// Refresh the preview so the panel shows the applied value.
		return p, p.preview(app, p.previewedID, p.previewedDate)

	case tea.KeyMsg:
		if p.confirming {
			switch msg.String() {
			case "enter":
				return p, p.apply(app)
			case "esc":
				p.confirming = false
				return p, nil
			}
			return p, nil
		}
		switch msg.String() {
		case "enter":
			return p, p.startPreview(app)
		case "ctrl+s":
			p.section = (p.section + 1) % 3
			p.form = p.sectionForm()
			p.clearPreviews()
			p.errText = ""
			return p, nil
		case "ctrl+u":
			if p.busy {
				return p, nil
			}
			if !p.hasPreview() {
				p.errText = "Preview the change first"
				return p, nil
			}
			p.confirming = true
			return p, nil
		case "esc":
			return p, navigate(RouteSuperAdminUsers)
		}
		cmd, _ := p.form.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *dateMaintPage) startPreview(app *App) tea.Cmd {
	if p.busy {
		return nil
	}
	id := p.form.value(0)
	if id == "" {
		p.errText = p.section.idLabel() + " is required"
		return nil
	}
	date, err := parseMaintDate(p.form.value(1))
	if err != nil {
		p.errText = userMessage(err)
		return nil
	}

	p.errText = ""
	p.busy = true
	p.previewedID = id
	p.previewedDate = date
	return p.preview(app, id, date)
}

func (p *dateMaintPage) preview(app *App, id, date string) tea.Cmd {
	section := p.section
	client := app.services.Client
	return func() tea.Msg {
		msg := maintPreviewMsg{section: section}
		switch section {
		case maintUser:
			msg.user, msg.err = client.PreviewUserNextDueDate(context.Background(), id, date)
		case maintItem:
			msg.item, msg.err = client.PreviewItemCreatedDate(context.Background(), id, date)
		default:
			msg.receipt, msg.err = client.PreviewReceiptUploadedDate(context.Background(), id, date)
		}
		return msg
	}
}

func (p *dateMaintPage) apply(app *App) tea.Cmd {
	section := p.section
	id, date, reason := p.previewedID, p.previewedDate, p.form.value(2)
	p.busy = true
	client := app.services.Client
	return func() tea.Msg {
		msg := maintUpdatedMsg{section: section}
		switch section {
		case maintUser:
			msg.message, msg.err = client.UpdateUserNextDueDate(context.Background(), id, date, reason)
		case maintItem:
			msg.message, msg.err = client.UpdateItemCreatedDate(context.Background(), id, date, reason)
		default:
			msg.message, msg.err = client.UpdateReceiptUploadedDate(context.Background(), id, date, reason)
		}
		return msg
	}
}

func (p *dateMaintPage) View(app *App) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(app.theme.NormalText).
		Render(p.section.title())
	note := renderHint(app.theme, "Legacy corrections only. Changes are immediate and audit logged.")

	body := header + "\n" + note + "\n\n" + p.form.View(app.theme)

	if panel := p.previewPanel(app.theme); panel != "" {
		body += "\n\n" + panel
	}

	if p.confirming {
		warn := lipgloss.NewStyle().Foreground(app.theme.Warning).Bold(true).
			Render("Apply this date change?")
		body += "\n\n" + warn + "\n" + renderHint(app.theme, "enter: confirm | esc: cancel")
	} else {
		hint := "enter: preview | ctrl+u: apply | ctrl+s: next section | esc: back"
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

func (p *dateMaintPage) previewPanel(theme Theme) string {
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	strong := lipgloss.NewStyle().Foreground(theme.NormalText)

	line := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return faint.Render(label+" ") + strong.Render(value)
	}

	switch {
	case p.section == maintReceipt && p.receiptPreview != nil:
		preview := p.receiptPreview
		return lipgloss.JoinVertical(lipgloss.Left,
			line("Current: ", preview.CurrentUploadedAt),
			line("Proposed:", preview.ProposedUploadedAt),
			line("Plan:    ", string(preview.Plan)),
			line("Amount:  ", pricing.FormatNaira(preview.Amount)),
			line("Status:  ", preview.Status),
		)
	case p.section == maintUser && p.userPreview != nil:
		preview := p.userPreview
		return lipgloss.JoinVertical(lipgloss.Left,
			line("User:    ", preview.FullName+" ("+preview.Email+")"),
			line("Current: ", preview.CurrentNextDueDate),
			line("Proposed:", preview.ProposedNextDueDate),
		)
	case p.section == maintItem && p.itemPreview != nil:
		preview := p.itemPreview
		return lipgloss.JoinVertical(lipgloss.Left,
			line("Model:   ", preview.IphoneModel+" ("+string(preview.Plan)+")"),
			line("User:    ", preview.UserEmail),
			line("Current: ", preview.CurrentCreatedAt),
			line("Proposed:", preview.ProposedCreatedAt),
		)
	}
	return ""
}
