package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type profileLoadedMsg struct {
	profile *api.Profile
	err     error
}

type profilePage struct {
	profile *api.Profile
	errText string
}

func newProfilePage() *profilePage { return &profilePage{} }

func (p *profilePage) Init(app *App) tea.Cmd {
	return func() tea.Msg {
		profile, err := app.services.Queries.Profile(context.Background())
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (p *profilePage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.errText = ""
		p.profile = msg.profile
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			if role, ok := app.services.Session.Role(); ok {
				return p, navigate(homeRoute(role))
			}
			return p, navigate(RouteLogin)
		}
	}
	return p, nil
}

func (p *profilePage) View(app *App) string {
	if p.errText != "" {
		return renderError(app.theme, p.errText)
	}
	if p.profile == nil {
		return renderHint(app.theme, "Loading profile...")
	}
	faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)
	strong := lipgloss.NewStyle().Foreground(app.theme.NormalText)
	body := lipgloss.JoinVertical(lipgloss.Left,
		faint.Render("Name   ")+strong.Render(p.profile.FullName),
		faint.Render("Email  ")+strong.Render(p.profile.Email),
		faint.Render("Role   ")+strong.Render(p.profile.Role),
		faint.Render("Joined ")+strong.Render(p.profile.CreatedAt),
	)
	return body + "\n\n" + renderHint(app.theme, "esc: back")
}
