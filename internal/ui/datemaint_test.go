package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/easybuy-tracker/internal/api"
)

func TestParseMaintDateAcceptsCommonFormats(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2024-07-01", "2024-07-01T00:00:00Z"},
		{"2024-07-01 13:30", "2024-07-01T13:30:00Z"},
		{"2024-07-01T13:30:00Z", "2024-07-01T13:30:00Z"},
	}
	for _, testCase := range cases {
		got, err := parseMaintDate(testCase.input)
		require.NoError(t, err, testCase.input)
		assert.Equal(t, testCase.want, got)
	}

	_, err := parseMaintDate("first of july")
	assert.Error(t, err)
	_, err = parseMaintDate("")
	assert.Error(t, err)
}

func TestApplyRequiresPreviewFirst(t *testing.T) {
	page := newDateMaintPage()
	app := &App{}

	next, cmd := page.Update(app, tea.KeyMsg{Type: tea.KeyCtrlU})
	page = next.(*dateMaintPage)
	assert.Nil(t, cmd)
	assert.False(t, page.confirming)
	assert.Equal(t, "Preview the change first", page.errText)
}

func TestSectionCycleResetsFormAndPreview(t *testing.T) {
	page := newDateMaintPage()
	page.receiptPreview = &api.ReceiptUploadedDatePreview{ReceiptID: "r1"}
	page.previewedID = "r1"
	app := &App{}

	next, _ := page.Update(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	page = next.(*dateMaintPage)
	assert.Equal(t, maintUser, page.section)
	assert.Nil(t, page.receiptPreview)
	assert.Empty(t, page.previewedID)
	assert.Equal(t, "User ID", page.form.labels[0])

	next, _ = page.Update(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	page = next.(*dateMaintPage)
	assert.Equal(t, maintItem, page.section)

	next, _ = page.Update(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	page = next.(*dateMaintPage)
	assert.Equal(t, maintReceipt, page.section, "cycle wraps back to receipts")
}
