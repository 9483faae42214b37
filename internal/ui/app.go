// Package ui is the terminal front end: a bubbletea program with one
// page per route, a global loading indicator fed by the request
// counter, and a status bar fed by the notifier.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/cache"
	"github.com/spec-kit/easybuy-tracker/internal/guard"
	"github.com/spec-kit/easybuy-tracker/internal/loading"
	"github.com/spec-kit/easybuy-tracker/internal/localstore"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/session"
)

// noticeFadeDelay is how long a toast stays in the status bar.
const noticeFadeDelay = 4 * time.Second

// minLoadingVisible keeps the loading indicator on screen long enough to
// read. A request that finishes faster than this would otherwise flash
// the indicator for a frame or two.
const minLoadingVisible = 150 * time.Millisecond

// Services bundles everything the pages need.
type Services struct {
	Logger    *zap.Logger
	Values    *localstore.Store
	Session   *session.Store
	Loading   *loading.Counter
	Notifier  notify.Notifier
	Client    *api.Client
	Cache     *cache.Store
	Queries   *cache.Queries
	Mutations *cache.Mutations
	Guard     *guard.Guard
}

// page is one screen of the application. Pages receive the App for
// services and theme; they own only their local state.
type page interface {
	Init(app *App) tea.Cmd
	Update(app *App, msg tea.Msg) (page, tea.Cmd)
	View(app *App) string
}

// Messages delivered through the bubbletea loop.
type (
	noticeMsg      struct{ notice notify.Notice }
	noticeFadeMsg  struct{ seq int }
	loadingMsg     struct{ count int }
	loadingHideMsg struct{ seq int }
	invalidatedMsg struct{ tags []cache.Tag }

	// guardResultMsg carries the backend confirmation for a route.
	guardResultMsg struct {
		route    Route
		decision guard.Decision
	}

	navigateMsg struct{ route Route }
)

// App is the root model.
type App struct {
	services Services
	theme    Theme

	route    Route
	page     page
	checking bool

	width  int
	height int

	notice    *notify.Notice
	noticeSeq int

	notices       chan notify.Notice
	loadEvents    chan int
	invalidations chan []cache.Tag

	loadingCount   int
	loadingVisible bool
	loadingShownAt time.Time
	loadingSeq     int

	// navCancel aborts the in-flight guard confirmation when the user
	// navigates away before it settles.
	navCancel context.CancelFunc
}

// NewApp wires the root model. The starting route depends on whether a
// valid session is already stored.
func NewApp(services Services) *App {
	app := &App{
		services:      services,
		theme:         LoadTheme(services.Values),
		notices:       make(chan notify.Notice, 16),
		loadEvents:    make(chan int, 16),
		invalidations: make(chan []cache.Tag, 16),
	}

	services.Notifier.Subscribe(func(notice notify.Notice) {
		sendLatest(app.notices, notice)
	})
	services.Loading.Subscribe(func(count int) {
		sendLatest(app.loadEvents, count)
	})
	services.Cache.Subscribe(func(tags []cache.Tag) {
		sendLatest(app.invalidations, tags)
	})

	if role, ok := services.Session.Role(); ok {
		app.route = homeRoute(role)
	} else {
		app.route = RouteLogin
	}
	app.page = pageFor(app.route)
	return app
}

// sendLatest delivers value to a bounded channel, evicting the oldest
// queued element when full. Dropping the newest instead could lose the
// final count=0 and latch the loading indicator on.
func sendLatest[T any](ch chan T, value T) {
	for {
		select {
		case ch <- value:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (app *App) Init() tea.Cmd {
	return tea.Batch(
		app.waitForNotice(),
		app.waitForLoading(),
		app.waitForInvalidation(),
		app.enterRoute(app.route),
	)
}

func (app *App) waitForNotice() tea.Cmd {
	return func() tea.Msg { return noticeMsg{notice: <-app.notices} }
}

func (app *App) waitForLoading() tea.Cmd {
	return func() tea.Msg { return loadingMsg{count: <-app.loadEvents} }
}

func (app *App) waitForInvalidation() tea.Cmd {
	return func() tea.Msg { return invalidatedMsg{tags: <-app.invalidations} }
}

// enterRoute runs the route's guard and returns the command that
// settles the page: the backend confirmation for sensitive routes,
// otherwise the page's own Init.
func (app *App) enterRoute(route Route) tea.Cmd {
	if app.navCancel != nil {
		app.navCancel()
		app.navCancel = nil
	}

	if !publicRoutes[route] {
		if decision := app.services.Guard.RequireLogin(); decision != guard.DecisionAllow {
			return app.redirect(RouteLogin)
		}
		if allowed, ok := routeRoles[route]; ok {
			if decision := app.services.Guard.RequireRole(allowed); decision == guard.DecisionForbidden {
				return app.redirect(RouteForbidden)
			} else if decision == guard.DecisionUnauthorized {
				return app.redirect(RouteLogin)
			}
		}
	}

	if confirmedRoutes[route] {
		app.checking = true
		ctx, cancel := context.WithCancel(context.Background())
		app.navCancel = cancel
		allowed := routeRoles[route]
		confirm := func() tea.Msg {
			return guardResultMsg{route: route, decision: app.services.Guard.Confirm(ctx, allowed)}
		}
		return tea.Batch(confirm, app.page.Init(app))
	}
	return app.page.Init(app)
}

// redirect swaps the route and page in place and enters the new route.
func (app *App) redirect(route Route) tea.Cmd {
	app.route = route
	app.page = pageFor(route)
	app.checking = false
	return app.enterRoute(route)
}

// Logout clears the session and cached data and returns to login.
func (app *App) Logout() tea.Cmd {
	if err := app.services.Session.ClearToken(); err != nil {
		app.services.Logger.Warn("clearing token on logout", zap.Error(err))
	}
	app.services.Cache.Clear()
	return app.redirect(RouteLogin)
}

func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height
		return app, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return app, tea.Quit
		case "ctrl+t":
			app.theme = app.theme.Toggle()
			if err := SaveTheme(app.services.Values, app.theme); err != nil {
				app.services.Logger.Warn("saving theme", zap.Error(err))
			}
			return app, nil
		case "ctrl+l":
			if app.services.Session.IsLoggedIn() {
				return app, app.Logout()
			}
			return app, nil
		}

	case navigateMsg:
		app.route = msg.route
		app.page = pageFor(msg.route)
		app.checking = false
		return app, app.enterRoute(msg.route)

	case guardResultMsg:
		if msg.route != app.route {
			return app, nil
		}
		app.checking = false
		switch msg.decision {
		case guard.DecisionUnauthorized:
			return app, app.redirect(RouteLogin)
		case guard.DecisionForbidden:
			return app, app.redirect(RouteForbidden)
		}
		return app, nil

	case noticeMsg:
		app.notice = &msg.notice
		app.noticeSeq++
		seq := app.noticeSeq
		fade := tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
			return noticeFadeMsg{seq: seq}
		})
		return app, tea.Batch(fade, app.waitForNotice())

	case noticeFadeMsg:
		if msg.seq == app.noticeSeq {
			app.notice = nil
		}
		return app, nil

	case loadingMsg:
		app.loadingCount = msg.count
		if msg.count > 0 && !app.loadingVisible {
			app.loadingVisible = true
			app.loadingShownAt = time.Now()
		}
		if msg.count == 0 && app.loadingVisible {
			remaining := minLoadingVisible - time.Since(app.loadingShownAt)
			if remaining <= 0 {
				app.loadingVisible = false
			} else {
				// Keep the indicator up until the minimum window passes.
				app.loadingSeq++
				seq := app.loadingSeq
				hide := tea.Tick(remaining, func(time.Time) tea.Msg {
					return loadingHideMsg{seq: seq}
				})
				return app, tea.Batch(hide, app.waitForLoading())
			}
		}
		return app, app.waitForLoading()

	case loadingHideMsg:
		if msg.seq == app.loadingSeq && app.loadingCount == 0 {
			app.loadingVisible = false
		}
		return app, nil

	case invalidatedMsg:
		// Hand the tags to the page so it can refetch what it shows.
		next, cmd := app.page.Update(app, msg)
		app.page = next
		return app, tea.Batch(cmd, app.waitForInvalidation())
	}

	next, cmd := app.page.Update(app, msg)
	app.page = next
	return app, cmd
}

func (app *App) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(app.theme.HeaderForeground).
		Render("EasyBuy Tracker")
	crumb := lipgloss.NewStyle().
		Foreground(app.theme.FaintText).
		Render(" / " + app.route.String())

	body := app.page.View(app)
	if app.checking {
		body = lipgloss.NewStyle().
			Foreground(app.theme.FaintText).
			Render("Checking access...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title+crumb,
		"",
		body,
		"",
		app.statusBar(),
	)
}

func (app *App) statusBar() string {
	var left string
	if app.loadingVisible {
		left = lipgloss.NewStyle().Foreground(app.theme.Warning).Render("Loading...")
	}

	var middle string
	if app.notice != nil {
		color := app.theme.Success
		if app.notice.Level == notify.LevelError {
			color = app.theme.Error
		}
		middle = lipgloss.NewStyle().Foreground(color).Render(app.notice.Message)
	}

	help := lipgloss.NewStyle().Foreground(app.theme.HelpText).
		Render("ctrl+t theme | ctrl+l logout | ctrl+c quit")

	if left == "" && middle == "" {
		return help
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", middle, "  ", help)
}
