package insights

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"html/template"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// CategoryTotal is a user's share of spending in one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Summary is one user's spending over the lookback window.
type Summary struct {
	Name  string
	Email string
	From  time.Time
	To    time.Time

	ExpenseCount int

	// TotalShare is the sum of the user's own splits.
	TotalShare decimal.Decimal

	// TotalPaid is the sum of the expenses the user paid for.
	TotalPaid decimal.Decimal

	// Categories is sorted by total, largest first.
	Categories []CategoryTotal
}

// Summarize aggregates expenses into a Summary for user.
func Summarize(user *models.User, expenses []models.Expense, from, to time.Time) Summary {
	s := Summary{
		Name:         user.Name,
		Email:        user.Email,
		From:         from,
		To:           to,
		ExpenseCount: len(expenses),
	}

	byCategory := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		if e.PayerID == user.ID {
			s.TotalPaid = s.TotalPaid.Add(decimal.NewFromFloat(e.Amount))
		}
		split, ok := e.SplitFor(user.ID)
		if !ok {
			continue
		}
		share := decimal.NewFromFloat(split.Amount)
		s.TotalShare = s.TotalShare.Add(share)

		category := e.Category
		if category == "" {
			category = models.DefaultCategory
		}
		byCategory[category] = byCategory[category].Add(share)
	}

	for category, total := range byCategory {
		s.Categories = append(s.Categories, CategoryTotal{Category: category, Total: total.Round(2)})
	}
	slices.SortFunc(s.Categories, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})

	s.TotalShare = s.TotalShare.Round(2)
	s.TotalPaid = s.TotalPaid.Round(2)
	return s
}

const insightTemplate = `<h1>Your Monthly Financial Insights</h1>
<p>Hi {{.Name}},</p>
<p>Here's your spending summary from {{date .From}} to {{date .To}}.</p>
<h2>Monthly Overview</h2>
<ul>
  <li>Expenses shared: {{.ExpenseCount}}</li>
  <li>Your share: {{money .TotalShare}}</li>
  <li>You paid: {{money .TotalPaid}}</li>
</ul>
{{- with .Categories}}
<h2>Top Spending Categories</h2>
<table>
{{- range .}}
  <tr><td>{{.Category}}</td><td>{{money .Total}}</td><td>{{percent .Total $.TotalShare}}</td></tr>
{{- end}}
</table>
{{- end}}
`

// TemplateSummarizer renders a fixed HTML report.
type TemplateSummarizer struct {
	tmpl *template.Template
}

// NewTemplateSummarizer creates a summarizer that prefixes amounts with
// currency.
func NewTemplateSummarizer(currency string) *TemplateSummarizer {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return currency + d.StringFixed(2)
		},
		"date": func(t time.Time) string {
			return t.UTC().Format("Jan 2, 2006")
		},
		"percent": func(part, total decimal.Decimal) string {
			if total.IsZero() {
				return "-"
			}
			return part.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
		},
	}
	return &TemplateSummarizer{
		tmpl: template.Must(template.New("insight").Funcs(funcs).Parse(insightTemplate)),
	}
}

// Summarize implements Summarizer.
func (t *TemplateSummarizer) Summarize(_ context.Context, s Summary) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("failed to render insight: %w", err)
	}
	return buf.String(), nil
}
