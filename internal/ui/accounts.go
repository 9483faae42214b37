package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type accountResultMsg struct {
	message string
	err     error
}

// accountPage creates either a customer account (admins) or an admin
// account (super-admins only).
type accountPage struct {
	form       form
	admin      bool
	submitting bool
	errText    string
}

func newAccountPage(admin bool) *accountPage {
	p := &accountPage{
		form:  newForm("First name", "Last name", "Email", "Password"),
		admin: admin,
	}
	p.form.secret(3)
	return p
}

func (p *accountPage) Init(*App) tea.Cmd { return nil }

func (p *accountPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			if p.submitting {
				return p, nil
			}
			return p, p.submit(app)
		}

	case accountResultMsg:
		p.submitting = false
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		notify.Success(app.services.Notifier, msg.message)
		p.form.reset()
		return p, nil
	}

	cmd, _ := p.form.Update(msg)
	return p, cmd
}

func (p *accountPage) submit(app *App) tea.Cmd {
	input := pricing.AccountForm{
		FirstName: p.form.value(0),
		LastName:  p.form.value(1),
		Email:     p.form.value(2),
		Password:  p.form.value(3),
	}
	if err := pricing.ValidateForm(input); err != nil {
		p.errText = userMessage(err)
		return nil
	}

	request := api.CreateAccountRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	}
	p.errText = ""
	p.submitting = true
	admin := p.admin
	return func() tea.Msg {
		var message string
		var err error
		if admin {
			message, err = app.services.Mutations.RegisterAdmin(context.Background(), request)
		} else {
			message, err = app.services.Mutations.CreateUser(context.Background(), request)
		}
		return accountResultMsg{message: message, err: err}
	}
}

func (p *accountPage) View(app *App) string {
	body := p.form.View(app.theme)
	if p.errText != "" {
		body += "\n\n" + renderError(app.theme, p.errText)
	}
	action := "create user"
	if p.admin {
		action = "create admin"
	}
	return body + "\n\n" + renderHint(app.theme, "enter: "+action)
}
