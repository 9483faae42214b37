package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type verifyResultMsg struct {
	whatsappURL string
	message     string
	err         error
}

// verifyPage redeems a mailed verification token.
type verifyPage struct {
	form        form
	whatsappURL string
	message     string
	busy        bool
	errText     string
}

func newVerifyPage() *verifyPage {
	return &verifyPage{form: newForm("Verification token")}
}

func (p *verifyPage) Init(*App) tea.Cmd { return nil }

func (p *verifyPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if p.busy {
				return p, nil
			}
			return p, p.submit(app)
		case "esc":
			return p, navigate(RoutePublicForm)
		}

	case verifyResultMsg:
		p.busy = false
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.whatsappURL = msg.whatsappURL
		p.message = msg.message
		return p, nil
	}

	cmd, _ := p.form.Update(msg)
	return p, cmd
}

func (p *verifyPage) submit(app *App) tea.Cmd {
	token := p.form.value(0)
	if token == "" {
		p.errText = "Paste the token from your email"
		return nil
	}
	p.errText = ""
	p.busy = true
	return func() tea.Msg {
		whatsappURL, message, err := app.services.Client.VerifyPublicRequest(context.Background(), token)
		return verifyResultMsg{whatsappURL: whatsappURL, message: message, err: err}
	}
}

func (p *verifyPage) View(app *App) string {
	if p.whatsappURL != "" {
		link := lipgloss.NewStyle().Foreground(app.theme.Accent).Underline(true).Render(p.whatsappURL)
		return p.message + "\n\nContinue on WhatsApp: " + link + "\n\n" +
			renderHint(app.theme, "esc: back")
	}

	body := p.form.View(app.theme)
	if p.busy {
		body += "\n\n" + renderHint(app.theme, "Verifying...")
	}
	if p.errText != "" {
		body += "\n\n" + renderError(app.theme, p.errText)
	}
	return body + "\n\n" + renderHint(app.theme, "enter: verify | esc: back")
}
