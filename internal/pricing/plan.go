package pricing

import (
	"fmt"
	"strconv"

	"github.com/spec-kit/easybuy-tracker/internal/api"
	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

// Quote is the computed cost breakdown for a device, plan and duration.
type Quote struct {
	PhonePrice     float64
	MinDownPayment float64
	DownPayment    float64
	LoanedAmount   float64
	PerInstallment float64
	TotalPayable   float64
	Plan           api.PlanType
	Duration       int
}

// MinDownPayment is the smallest down payment the catalog accepts for a
// device price, derived from the model's down-payment percentage.
func MinDownPayment(price, percentage float64) float64 {
	return price * percentage / 100
}

// LoanedAmount is the remainder financed after the down payment. It
// never goes below zero, so overpaying the down payment simply clears
// the loan.
func LoanedAmount(price, downPayment float64) float64 {
	loaned := price - downPayment
	if loaned < 0 {
		return 0
	}
	return loaned
}

// markupMultiplier looks up the duration's markup in the plan rules.
func markupMultiplier(rules api.PlanRules, plan api.PlanType, duration int) (float64, error) {
	var multipliers map[string]float64
	switch plan {
	case api.PlanMonthly:
		multipliers = rules.MonthlyMarkupMultipliers
	case api.PlanWeekly:
		multipliers = rules.WeeklyMarkupMultipliers
	default:
		return 0, fmt.Errorf("unknown plan type %q", plan)
	}

	multiplier, ok := multipliers[strconv.Itoa(duration)]
	if !ok {
		return 0, fmt.Errorf("no %s plan for %d installments", plan, duration)
	}
	return multiplier, nil
}

// ComputeQuote prices a purchase. The down payment must meet the
// model's floor, and the duration must be one the plan rules allow.
func ComputeQuote(model api.CatalogModel, capacity string, downPayment float64, plan api.PlanType, duration int, rules api.PlanRules) (Quote, error) {
	price, ok := model.PricesByCapacity[capacity]
	if !ok {
		return Quote{}, util.NewValidationError(fmt.Sprintf("%s has no %s option", model.Model, capacity))
	}
	if duration <= 0 {
		return Quote{}, util.NewValidationError("Choose a plan duration")
	}

	minDown := MinDownPayment(price, model.DownPaymentPercentage)
	if downPayment < minDown {
		return Quote{}, util.NewValidationError(fmt.Sprintf("Down payment must be at least %s", FormatNaira(minDown)))
	}

	loaned := LoanedAmount(price, downPayment)
	multiplier, err := markupMultiplier(rules, plan, duration)
	if err != nil {
		return Quote{}, util.NewValidationError(err.Error())
	}

	perInstallment := loaned * multiplier / float64(duration)
	return Quote{
		PhonePrice:     price,
		MinDownPayment: minDown,
		DownPayment:    downPayment,
		LoanedAmount:   loaned,
		PerInstallment: perInstallment,
		TotalPayable:   downPayment + loaned*multiplier,
		Plan:           plan,
		Duration:       duration,
	}, nil
}

// AllowedDurations returns the durations the rules permit for a plan.
func AllowedDurations(rules api.PlanRules, plan api.PlanType) []int {
	switch plan {
	case api.PlanMonthly:
		return rules.MonthlyDurations
	case api.PlanWeekly:
		return rules.WeeklyDurations
	default:
		return nil
	}
}
