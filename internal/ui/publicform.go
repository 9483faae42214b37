package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/localstore"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

// AnonymousIDKey is the local storage key for the visitor id that links
// repeat public submissions.
const AnonymousIDKey = "easybuy_public_anonymous_id"

type publicSubmitMsg struct {
	message string
	err     error
}

type resendResultMsg struct {
	message string
	err     error
}

// publicFormPage is the unauthenticated purchase request form.
type publicFormPage struct {
	form       form
	submitting bool
	submitted  bool
	errText    string
}

func newPublicFormPage() *publicFormPage {
	return &publicFormPage{
		form: newForm("Full name", "Email", "Phone", "Model", "Capacity", "Plan"),
	}
}

func (p *publicFormPage) Init(*App) tea.Cmd { return nil }

func (p *publicFormPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if p.submitting {
				return p, nil
			}
			return p, p.submit(app)
		case "ctrl+v":
			return p, navigate(RouteVerify)
		case "ctrl+e":
			return p, p.resend(app)
		case "esc":
			return p, navigate(RouteLogin)
		}

	case publicSubmitMsg:
		p.submitting = false
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.submitted = true
		notify.Success(app.services.Notifier, msg.message)
		return p, nil

	case resendResultMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		notify.Success(app.services.Notifier, msg.message)
		return p, nil
	}

	cmd, _ := p.form.Update(msg)
	return p, cmd
}

func (p *publicFormPage) submit(app *App) tea.Cmd {
	input := pricing.PublicRequestForm{
		FullName:    p.form.value(0),
		Email:       p.form.value(1),
		Phone:       p.form.value(2),
		IphoneModel: p.form.value(3),
		Capacity:    p.form.value(4),
		Plan:        p.form.value(5),
	}
	if err := pricing.ValidateForm(input); err != nil {
		p.errText = userMessage(err)
		return nil
	}

	request := api.CreatePublicRequest{
		FullName:    input.FullName,
		Email:       input.Email,
		Phone:       input.Phone,
		IphoneModel: input.IphoneModel,
		Capacity:    input.Capacity,
		Plan:        api.PlanType(input.Plan),
		AnonymousID: anonymousID(app.services.Values, app.services.Logger),
	}
	p.errText = ""
	p.submitting = true
	return func() tea.Msg {
		message, err := app.services.Mutations.SubmitPublicRequest(context.Background(), request)
		return publicSubmitMsg{message: message, err: err}
	}
}

func (p *publicFormPage) resend(app *App) tea.Cmd {
	email := p.form.value(1)
	if email == "" {
		p.errText = "Enter your email to resend the verification mail"
		return nil
	}
	p.errText = ""
	return func() tea.Msg {
		message, err := app.services.Client.ResendVerification(context.Background(), email)
		return resendResultMsg{message: message, err: err}
	}
}

func (p *publicFormPage) View(app *App) string {
	if p.submitted {
		return "Request received. Check your email for a verification link.\n\n" +
			renderHint(app.theme, "ctrl+v: enter verification token | ctrl+e: resend mail | esc: login")
	}
	body := p.form.View(app.theme)
	if p.errText != "" {
		body += "\n\n" + renderError(app.theme, p.errText)
	}
	return body + "\n\n" + renderHint(app.theme, "enter: submit | ctrl+v: verify a token | esc: login")
}

// anonymousID returns the persisted visitor id, minting one on first
// use.
func anonymousID(values *localstore.Store, logger *zap.Logger) string {
	if id, ok := values.Get(AnonymousIDKey); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	if err := values.Set(AnonymousIDKey, id); err != nil && logger != nil {
		logger.Warn("persisting anonymous id", zap.Error(err))
	}
	return id
}
