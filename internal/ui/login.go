package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type loginResultMsg struct {
	token   string
	message string
	err     error
}

type loginPage struct {
	form       form
	submitting bool
	errText    string
}

func newLoginPage() *loginPage {
	p := &loginPage{form: newForm("Email", "Password")}
	p.form.secret(1)
	return p
}

func (p *loginPage) Init(*App) tea.Cmd { return nil }

func (p *loginPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if p.submitting {
				return p, nil
			}
			return p, p.submit(app)
		case "ctrl+r":
			return p, navigate(RoutePublicForm)
		}

	case loginResultMsg:
		p.submitting = false
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		if err := app.services.Session.SetToken(msg.token); err != nil {
			app.services.Logger.Error("storing token", zap.Error(err))
			p.errText = "Could not store the session"
			return p, nil
		}
		app.services.Cache.Clear()
		notify.Success(app.services.Notifier, msg.message)
		if role, ok := app.services.Session.Role(); ok {
			return p, navigate(homeRoute(role))
		}
		return p, navigate(RouteDashboard)
	}

	cmd, _ := p.form.Update(msg)
	return p, cmd
}

func (p *loginPage) submit(app *App) tea.Cmd {
	input := pricing.LoginForm{Email: p.form.value(0), Password: p.form.value(1)}
	if err := pricing.ValidateForm(input); err != nil {
		p.errText = userMessage(err)
		return nil
	}
	p.errText = ""
	p.submitting = true
	return func() tea.Msg {
		token, message, err := app.services.Client.Login(context.Background(), input.Email, input.Password)
		return loginResultMsg{token: token, message: message, err: err}
	}
}

func (p *loginPage) View(app *App) string {
	body := p.form.View(app.theme)
	if p.errText != "" {
		body += "\n\n" + renderError(app.theme, p.errText)
	}
	return body + "\n\n" + renderHint(app.theme, "enter: sign in | ctrl+r: request a device without an account")
}

// userMessage unwraps an error to the message fit for the status line.
func userMessage(err error) string {
	if requestErr, ok := util.AsRequestError(err); ok {
		return requestErr.Message
	}
	return err.Error()
}
