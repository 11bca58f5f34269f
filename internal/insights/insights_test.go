package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var runAt = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

type fakeStore struct {
	users    []*models.User
	expenses []models.Expense
	failFor  string
}

func (f *fakeStore) ListUsers(context.Context) ([]*models.User, error) {
	return f.users, nil
}

func (f *fakeStore) ListExpenses(_ context.Context, filter storage.ExpenseFilter) ([]models.Expense, error) {
	if filter.InvolvingID == f.failFor {
		return nil, errors.New("connection reset")
	}
	var out []models.Expense
	for _, e := range f.expenses {
		if e.Involves(filter.InvolvingID) && e.Date >= filter.From && e.Date <= filter.To {
			out = append(out, e)
		}
	}
	return out, nil
}

type recordingMailer struct {
	mu     sync.Mutex
	sent   []Email
	failTo string
}

func (m *recordingMailer) Send(_ context.Context, email Email) error {
	if email.To == m.failTo {
		return errors.New("mailbox full")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

func user(id string) *models.User {
	return &models.User{ID: id, Name: id, Email: id + "@example.com"}
}

func expense(payer string, amount float64, category string, date time.Time, splits ...models.Split) models.Expense {
	return models.Expense{
		ID:       payer + category,
		Amount:   amount,
		Category: category,
		Date:     date.Unix(),
		PayerID:  payer,
		Splits:   splits,
	}
}

func split(userID string, amount float64) models.Split {
	return models.Split{UserID: userID, Amount: amount}
}

func TestSummarize(t *testing.T) {
	alice := user("alice")
	expenses := []models.Expense{
		expense("alice", 30, "Food", runAt, split("alice", 10), split("bob", 10), split("carol", 10)),
		expense("bob", 0.3, "Food", runAt, split("alice", 0.1), split("bob", 0.2)),
		expense("bob", 50, "Travel", runAt, split("alice", 25), split("bob", 25)),
		expense("bob", 8, "", runAt, split("bob", 8)),
	}

	s := Summarize(alice, expenses, runAt.AddDate(0, 0, -30), runAt)
	assert.Equal(t, 4, s.ExpenseCount)
	assert.Equal(t, "35.1", s.TotalShare.String())
	assert.Equal(t, "30", s.TotalPaid.String())
	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Travel", s.Categories[0].Category)
	assert.True(t, decimal.RequireFromString("10.1").Equal(s.Categories[1].Total))
}

func TestTemplateSummarizer(t *testing.T) {
	s := Summary{
		Name:         "Alice <3",
		From:         runAt.AddDate(0, 0, -30),
		To:           runAt,
		ExpenseCount: 2,
		TotalShare:   decimal.RequireFromString("40"),
		TotalPaid:    decimal.RequireFromString("30"),
		Categories: []CategoryTotal{
			{Category: "Travel", Total: decimal.RequireFromString("30")},
			{Category: "Food", Total: decimal.RequireFromString("10")},
		},
	}

	html, err := NewTemplateSummarizer("$").Summarize(context.Background(), s)
	require.NoError(t, err)
	assert.Contains(t, html, "Hi Alice &lt;3,")
	assert.Contains(t, html, "Mar 2, 2025 to Apr 1, 2025")
	assert.Contains(t, html, "Your share: $40.00")
	assert.Contains(t, html, "<td>Travel</td><td>$30.00</td><td>75%</td>")
	assert.Contains(t, html, "<td>Food</td><td>$10.00</td><td>25%</td>")
}

func TestJobRun(t *testing.T) {
	recent := runAt.AddDate(0, 0, -3)
	store := &fakeStore{
		users: []*models.User{user("alice"), user("bob"), user("carol"), user("dave"), user("erin")},
		expenses: []models.Expense{
			expense("alice", 20, "Food", recent, split("alice", 10), split("bob", 10)),
			expense("carol", 12, "Fuel", recent, split("carol", 12)),
			// outside the window
			expense("dave", 5, "Food", runAt.AddDate(0, -2, 0), split("dave", 5)),
			expense("erin", 9, "Food", recent, split("erin", 9)),
		},
		failFor: "erin",
	}
	mailer := &recordingMailer{failTo: "carol@example.com"}

	report, err := NewJob(store, NewTemplateSummarizer("$"), mailer, WithConcurrency(2)).Run(context.Background(), runAt)
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalUsers, "dave has nothing in the window")
	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 2, report.FailureCount)

	byUser := make(map[string]Result)
	for _, r := range report.Results {
		byUser[r.UserID] = r
	}
	assert.True(t, byUser["alice"].Success)
	assert.True(t, byUser["bob"].Success)
	assert.Contains(t, byUser["carol"].Error, "mailbox full")
	assert.Contains(t, byUser["erin"].Error, "connection reset")

	require.Len(t, mailer.sent, 2)
	for _, e := range mailer.sent {
		assert.Equal(t, Subject, e.Subject)
	}
}

func TestJobRun_Canceled(t *testing.T) {
	store := &fakeStore{
		users:    []*models.User{user("alice"), user("bob")},
		expenses: []models.Expense{expense("alice", 20, "Food", runAt, split("alice", 10), split("bob", 10))},
	}
	mailer := &recordingMailer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewJob(store, NewTemplateSummarizer("$"), mailer).Run(ctx, runAt)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
	assert.Empty(t, mailer.sent)
}

func TestHTTPMailer(t *testing.T) {
	var got sendRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.To[0] == "bounce@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid recipient"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := NewHTTPMailer(server.URL, "re_test", "Split Ledger <insights@example.com>", time.Second)

	err := m.Send(context.Background(), Email{To: "alice@example.com", Subject: Subject, HTML: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "Split Ledger <insights@example.com>", got.From)
	assert.Equal(t, []string{"alice@example.com"}, got.To)
	assert.Equal(t, "<p>hi</p>", got.HTML)

	err = m.Send(context.Background(), Email{To: "bounce@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid recipient")
}
