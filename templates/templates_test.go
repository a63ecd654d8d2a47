package templates

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefinesEveryPage(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{
		"apology.html", "index.html", "buy.html", "sell.html", "quote.html",
		"quoted.html", "history.html", "login.html", "register.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestRender_Quoted(t *testing.T) {
	tmpl := MustLoad()

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "quoted.html", map[string]any{
		"Title":    "Quoted",
		"LoggedIn": true,
		"Quote": map[string]any{
			"Symbol": "AAPL",
			"Name":   "Apple Inc",
			"Price":  decimal.RequireFromString("1189.5"),
		},
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "A share of Apple Inc (AAPL) costs $1,189.50.")
	assert.Contains(t, buf.String(), `href="/logout"`)
}

func TestRender_HistoryFormatsTimestamps(t *testing.T) {
	tmpl := MustLoad()

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "history.html", map[string]any{
		"Title": "History",
		"History": []map[string]any{{
			"Symbol": "AAPL", "Name": "Apple Inc", "Type": "Buy", "Shares": 3,
			"Price":  decimal.NewFromInt(10),
			"Amount": decimal.NewFromInt(30),
			"At":     time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		}},
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2024-01-02 15:04:05")
	assert.Contains(t, buf.String(), "$30.00")
	assert.Contains(t, buf.String(), `href="/login"`)
}

func TestRender_ApologyEscapesMessage(t *testing.T) {
	tmpl := MustLoad()

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "apology.html", map[string]any{
		"Title":   "Apology",
		"Status":  400,
		"Message": "<script>",
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}
