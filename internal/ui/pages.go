package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pageFor builds the fresh page model for a route.
func pageFor(route Route) page {
	switch route {
	case RouteLogin:
		return newLoginPage()
	case RouteDashboard:
		return newDashboardPage()
	case RouteItems:
		return newItemsPage()
	case RouteNewItem:
		return newNewItemPage()
	case RouteReceipts:
		return newReceiptsPage()
	case RouteUploadReceipt:
		return newUploadPage()
	case RouteApprovals:
		return newApprovalsPage()
	case RouteCreateUser:
		return newAccountPage(false)
	case RouteRegisterAdmin:
		return newAccountPage(true)
	case RouteSuperAdminUsers:
		return newUsersPage()
	case RouteSuperAdminStats:
		return newStatsPage()
	case RouteSuperAdminPricing:
		return newPricingPage()
	case RouteDateMaintenance:
		return newDateMaintPage()
	case RoutePublicRequests:
		return newPublicRequestsPage()
	case RoutePublicForm:
		return newPublicFormPage()
	case RouteVerify:
		return newVerifyPage()
	case RouteProfile:
		return newProfilePage()
	case RouteForbidden:
		return forbiddenPage{}
	default:
		return notFoundPage{}
	}
}

// navigate produces the message that swaps the active page.
func navigate(route Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: route} }
}

// form is a vertical stack of labelled text inputs with one focused at
// a time. Tab and shift+tab move focus; every other key goes to the
// focused input.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(labels ...string) form {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		input := textinput.New()
		input.CharLimit = 120
		input.Width = 40
		inputs[i] = input
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return form{labels: labels, inputs: inputs}
}

func (f *form) secret(index int) {
	f.inputs[index].EchoMode = textinput.EchoPassword
	f.inputs[index].EchoCharacter = '*'
}

func (f *form) value(index int) string {
	return strings.TrimSpace(f.inputs[index].Value())
}

func (f *form) setValue(index int, value string) {
	f.inputs[index].SetValue(value)
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(0)
}

func (f *form) setFocus(index int) {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focus = index
	f.inputs[f.focus].Focus()
}

// Update routes the key to the form. It reports whether the form
// consumed the key.
func (f *form) Update(msg tea.Msg) (tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}
	switch key.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % len(f.inputs))
		return nil, true
	case "shift+tab", "up":
		f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs))
		return nil, true
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, true
}

func (f *form) View(theme Theme) string {
	label := lipgloss.NewStyle().Foreground(theme.FaintText).Width(16)
	rows := make([]string, 0, len(f.inputs))
	for i, input := range f.inputs {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(f.labels[i]), input.View()))
	}
	return strings.Join(rows, "\n")
}

// renderError styles a page-local validation or fetch failure.
func renderError(theme Theme, message string) string {
	if message == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.Error).Render(message)
}

// renderHint styles a page-local key hint line.
func renderHint(theme Theme, hint string) string {
	return lipgloss.NewStyle().Foreground(theme.HelpText).Render(hint)
}

// forbiddenPage is the access-denied screen.
type forbiddenPage struct{}

func (forbiddenPage) Init(*App) tea.Cmd { return nil }

func (p forbiddenPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if role, ok := app.services.Session.Role(); ok {
			return p, navigate(homeRoute(role))
		}
		return p, navigate(RouteLogin)
	}
	return p, nil
}

func (forbiddenPage) View(app *App) string {
	message := lipgloss.NewStyle().Foreground(app.theme.Error).Bold(true).
		Render("You do not have access to this page.")
	return message + "\n\n" + renderHint(app.theme, "enter: go home")
}

// notFoundPage is the fallback for a route the dispatcher does not know.
type notFoundPage struct{}

func (notFoundPage) Init(*App) tea.Cmd { return nil }

func (p notFoundPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if role, ok := app.services.Session.Role(); ok {
			return p, navigate(homeRoute(role))
		}
		return p, navigate(RouteLogin)
	}
	return p, nil
}

func (notFoundPage) View(app *App) string {
	message := lipgloss.NewStyle().Foreground(app.theme.Warning).Bold(true).
		Render("Page not found.")
	return message + "\n\n" + renderHint(app.theme, "enter: go home")
}
