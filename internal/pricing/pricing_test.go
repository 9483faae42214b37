package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/easybuy-tracker/internal/api"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"950000", 950000},
		{"950,000", 950000},
		{" ₦1,250,000.50 ", 1250000.50},
		{"0", 0},
	}
	for _, testCase := range cases {
		got, err := ParseAmount(testCase.input)
		require.NoError(t, err, "input %q", testCase.input)
		assert.Equal(t, testCase.want, got, "input %q", testCase.input)
	}

	for _, bad := range []string{"", "   ", "abc", "-100", "12..5"} {
		_, err := ParseAmount(bad)
		assert.Error(t, err, "input %q should fail", bad)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "950", FormatAmount(950))
	assert.Equal(t, "9,500", FormatAmount(9500))
	assert.Equal(t, "950,000", FormatAmount(950000))
	assert.Equal(t, "1,250,000", FormatAmount(1250000))
	assert.Equal(t, "1,250,000.50", FormatAmount(1250000.5))
	assert.Equal(t, "-9,500", FormatAmount(-9500))
	assert.Equal(t, "₦950,000", FormatNaira(950000))
}

func testRules() api.PlanRules {
	return api.PlanRules{
		MonthlyDurations:         []int{3, 6, 9},
		WeeklyDurations:          []int{12, 24},
		MonthlyMarkupMultipliers: map[string]float64{"3": 1.10, "6": 1.20, "9": 1.30},
		WeeklyMarkupMultipliers:  map[string]float64{"12": 1.15, "24": 1.25},
	}
}

func testModel() api.CatalogModel {
	return api.CatalogModel{
		Model:                 "iPhone 15",
		Capacities:            []string{"128GB", "256GB"},
		PricesByCapacity:      map[string]float64{"128GB": 1000000, "256GB": 1200000},
		AllowedPlans:          []api.PlanType{api.PlanMonthly, api.PlanWeekly},
		DownPaymentPercentage: 30,
	}
}

func TestComputeQuote(t *testing.T) {
	quote, err := ComputeQuote(testModel(), "128GB", 400000, api.PlanMonthly, 6, testRules())
	require.NoError(t, err)

	assert.Equal(t, 1000000.0, quote.PhonePrice)
	assert.Equal(t, 300000.0, quote.MinDownPayment)
	assert.Equal(t, 600000.0, quote.LoanedAmount)
	// 600000 * 1.20 / 6
	assert.InDelta(t, 120000.0, quote.PerInstallment, 0.001)
	assert.InDelta(t, 1120000.0, quote.TotalPayable, 0.001)
}

func TestComputeQuoteRejectsLowDownPayment(t *testing.T) {
	_, err := ComputeQuote(testModel(), "128GB", 200000, api.PlanMonthly, 6, testRules())
	assert.Error(t, err, "below the 30%% floor")
}

func TestComputeQuoteRejectsUnknownDuration(t *testing.T) {
	_, err := ComputeQuote(testModel(), "128GB", 400000, api.PlanMonthly, 7, testRules())
	assert.Error(t, err)
}

func TestComputeQuoteRejectsUnknownCapacity(t *testing.T) {
	_, err := ComputeQuote(testModel(), "1TB", 400000, api.PlanMonthly, 6, testRules())
	assert.Error(t, err)
}

func TestOverpaidDownPaymentClearsLoan(t *testing.T) {
	quote, err := ComputeQuote(testModel(), "128GB", 1000000, api.PlanMonthly, 3, testRules())
	require.NoError(t, err)
	assert.Zero(t, quote.LoanedAmount)
	assert.Zero(t, quote.PerInstallment)
	assert.Equal(t, 1000000.0, quote.TotalPayable)
}

func TestLoanedAmountNeverNegative(t *testing.T) {
	assert.Zero(t, LoanedAmount(1000, 5000))
}

func TestAllowedDurations(t *testing.T) {
	rules := testRules()
	assert.Equal(t, []int{3, 6, 9}, AllowedDurations(rules, api.PlanMonthly))
	assert.Equal(t, []int{12, 24}, AllowedDurations(rules, api.PlanWeekly))
	assert.Nil(t, AllowedDurations(rules, api.PlanType("Daily")))
}

func TestValidateForm(t *testing.T) {
	valid := LoginForm{Email: "ada@example.com", Password: "secret1"}
	assert.NoError(t, ValidateForm(valid))

	err := ValidateForm(LoginForm{Email: "not-an-email", Password: "secret1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	err = ValidateForm(AccountForm{FirstName: "A", LastName: "Lovelace", Email: "ada@example.com", Password: "secret1"})
	assert.Error(t, err, "first name below the minimum length")

	err = ValidateForm(PublicRequestForm{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		Phone:       "08012345678",
		IphoneModel: "iPhone 15",
		Capacity:    "128GB",
		Plan:        "Quarterly",
	})
	assert.Error(t, err, "plan outside the allowed set")
}
