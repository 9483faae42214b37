package ui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/internal/notify"
	"github.com/spec-kit/easybuy-tracker/internal/pricing"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

type catalogLoadedMsg struct {
	catalog *api.Catalog
	err     error
}

type createItemResultMsg struct {
	message string
	err     error
}

// newItemPage creates a purchase agreement for a customer from the
// catalog, previewing the computed quote before submission.
type newItemPage struct {
	catalog    *api.Catalog
	form       form
	quote      *pricing.Quote
	submitting bool
	errText    string
}

func newNewItemPage() *newItemPage {
	return &newItemPage{
		form: newForm("Model", "Capacity", "Plan", "Duration", "Down payment", "Customer email"),
	}
}

func (p *newItemPage) Init(app *App) tea.Cmd {
	return func() tea.Msg {
		catalog, err := app.services.Queries.Pricing(context.Background())
		return catalogLoadedMsg{catalog: catalog, err: err}
	}
}

func (p *newItemPage) Update(app *App, msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		p.catalog = msg.catalog
		return p, nil

	case createItemResultMsg:
		p.submitting = false
		if msg.err != nil {
			if !util.IsCanceled(msg.err) {
				p.errText = userMessage(msg.err)
			}
			return p, nil
		}
		notify.Success(app.services.Notifier, msg.message)
		p.form.reset()
		p.quote = nil
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if p.submitting {
				return p, nil
			}
			return p, p.submit(app)
		case "ctrl+p":
			p.preview()
			return p, nil
		}
	}

	cmd, _ := p.form.Update(msg)
	return p, cmd
}

// buildQuote validates the form against the catalog and prices it.
func (p *newItemPage) buildQuote() (*pricing.Quote, api.CatalogModel, error) {
	if p.catalog == nil {
		return nil, api.CatalogModel{}, util.NewValidationError("Catalog not loaded yet")
	}

	modelName := p.form.value(0)
	var model *api.CatalogModel
	for i := range p.catalog.Models {
		if strings.EqualFold(p.catalog.Models[i].Model, modelName) {
			model = &p.catalog.Models[i]
			break
		}
	}
	if model == nil {
		return nil, api.CatalogModel{}, util.NewValidationError("Unknown model: " + modelName)
	}

	plan := api.PlanType(p.form.value(2))
	if plan != api.PlanMonthly && plan != api.PlanWeekly {
		return nil, api.CatalogModel{}, util.NewValidationError("Plan must be Monthly or Weekly")
	}
	duration, err := strconv.Atoi(p.form.value(3))
	if err != nil {
		return nil, api.CatalogModel{}, util.NewValidationError("Enter the duration as a number")
	}
	downPayment, err := pricing.ParseAmount(p.form.value(4))
	if err != nil {
		return nil, api.CatalogModel{}, err
	}

	quote, err := pricing.ComputeQuote(*model, p.form.value(1), downPayment, plan, duration, p.catalog.PlanRules)
	if err != nil {
		return nil, api.CatalogModel{}, err
	}
	return &quote, *model, nil
}

func (p *newItemPage) preview() {
	quote, _, err := p.buildQuote()
	if err != nil {
		p.errText = userMessage(err)
		p.quote = nil
		return
	}
	p.errText = ""
	p.quote = quote
}

func (p *newItemPage) submit(app *App) tea.Cmd {
	quote, model, err := p.buildQuote()
	if err != nil {
		p.errText = userMessage(err)
		return nil
	}
	email := p.form.value(5)
	if email == "" {
		p.errText = "Enter the customer's email"
		return nil
	}

	request := api.CreateItemRequest{
		IphoneModel:  model.Model,
		ItemName:     model.Model,
		Capacity:     p.form.value(1),
		Plan:         quote.Plan,
		DownPayment:  quote.DownPayment,
		LoanedAmount: quote.LoanedAmount,
		PhonePrice:   quote.PhonePrice,
		UserEmail:    email,
	}
	if quote.Plan == api.PlanMonthly {
		request.MonthlyPlan = quote.Duration
	} else {
		request.WeeklyPlan = quote.Duration
	}

	p.errText = ""
	p.quote = quote
	p.submitting = true
	return func() tea.Msg {
		message, err := app.services.Mutations.CreateEasyBoughtItem(context.Background(), request)
		return createItemResultMsg{message: message, err: err}
	}
}

func (p *newItemPage) View(app *App) string {
	body := p.form.View(app.theme)

	if p.quote != nil {
		faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)
		accent := lipgloss.NewStyle().Foreground(app.theme.Accent)
		body += "\n\n" + lipgloss.JoinVertical(lipgloss.Left,
			faint.Render("Price          ")+accent.Render(pricing.FormatNaira(p.quote.PhonePrice)),
			faint.Render("Min down       ")+accent.Render(pricing.FormatNaira(p.quote.MinDownPayment)),
			faint.Render("Loaned         ")+accent.Render(pricing.FormatNaira(p.quote.LoanedAmount)),
			faint.Render("Per installment")+accent.Render(" "+pricing.FormatNaira(p.quote.PerInstallment)),
			faint.Render("Total payable  ")+accent.Render(pricing.FormatNaira(p.quote.TotalPayable)),
		)
	}
	if p.errText != "" {
		body += "\n\n" + renderError(app.theme, p.errText)
	}
	return body + "\n\n" + renderHint(app.theme, "ctrl+p: preview quote | enter: create")
}
