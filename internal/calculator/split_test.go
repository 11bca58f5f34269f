package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func share(v float64) *float64 { return &v }

func people(ids ...string) []Participant {
	ps := make([]Participant, len(ids))
	for i, id := range ids {
		ps[i] = Participant{UserID: id}
	}
	return ps
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		policy       models.SplitPolicy
		participants []Participant
		payer        string
		wantErr      bool
		validateFunc func(t *testing.T, splits []models.Split)
	}{
		{
			name:         "equal split three ways",
			amount:       30,
			policy:       models.SplitEqual,
			participants: people("alice", "bob", "carol"),
			payer:        "alice",
			validateFunc: func(t *testing.T, splits []models.Split) {
				require.Len(t, splits, 3)
				for _, s := range splits {
					assert.InDelta(t, 10.0, s.Amount, 1e-9, s.UserID)
					assert.Equal(t, s.UserID == "alice", s.Paid, s.UserID)
				}
			},
		},
		{
			name:         "equal split keeps order and does not redistribute",
			amount:       10,
			policy:       models.SplitEqual,
			participants: people("bob", "alice", "carol"),
			payer:        "alice",
			validateFunc: func(t *testing.T, splits []models.Split) {
				assert.Equal(t, "bob", splits[0].UserID)
				assert.Equal(t, splits[0].Amount, splits[1].Amount)
				assert.Equal(t, splits[1].Amount, splits[2].Amount)
				assert.True(t, SplitsMatchAmount(splits, 10))
			},
		},
		{
			name:         "payer outside participants marks nobody paid",
			amount:       20,
			policy:       models.SplitEqual,
			participants: people("bob", "carol"),
			payer:        "alice",
			validateFunc: func(t *testing.T, splits []models.Split) {
				for _, s := range splits {
					assert.False(t, s.Paid)
				}
			},
		},
		{
			name:   "percentage split",
			amount: 200,
			policy: models.SplitPercentage,
			participants: []Participant{
				{UserID: "alice", Share: share(50)},
				{UserID: "bob", Share: share(30)},
				{UserID: "carol", Share: share(20)},
			},
			payer: "bob",
			validateFunc: func(t *testing.T, splits []models.Split) {
				assert.InDelta(t, 100.0, splits[0].Amount, 1e-9)
				assert.InDelta(t, 60.0, splits[1].Amount, 1e-9)
				assert.InDelta(t, 40.0, splits[2].Amount, 1e-9)
				assert.True(t, splits[1].Paid)
				assert.False(t, splits[0].Paid)
			},
		},
		{
			name:   "percentage missing share",
			amount: 100,
			policy: models.SplitPercentage,
			participants: []Participant{
				{UserID: "alice", Share: share(50)},
				{UserID: "bob"},
			},
			payer:   "alice",
			wantErr: true,
		},
		{
			name:   "exact split",
			amount: 25,
			policy: models.SplitExact,
			participants: []Participant{
				{UserID: "alice", Share: share(5)},
				{UserID: "bob", Share: share(20)},
			},
			payer: "alice",
			validateFunc: func(t *testing.T, splits []models.Split) {
				assert.Equal(t, 5.0, splits[0].Amount)
				assert.Equal(t, 20.0, splits[1].Amount)
				assert.True(t, splits[0].Paid)
			},
		},
		{
			name:         "exact missing amount",
			amount:       25,
			policy:       models.SplitExact,
			participants: people("alice"),
			payer:        "alice",
			wantErr:      true,
		},
		{
			name:         "no participants",
			amount:       10,
			policy:       models.SplitEqual,
			participants: nil,
			payer:        "alice",
			wantErr:      true,
		},
		{
			name:         "unknown policy",
			amount:       10,
			policy:       "shares",
			participants: people("alice"),
			payer:        "alice",
			wantErr:      true,
		},
		{
			name:         "negative amount is permitted",
			amount:       -12,
			policy:       models.SplitEqual,
			participants: people("alice", "bob"),
			payer:        "alice",
			validateFunc: func(t *testing.T, splits []models.Split) {
				assert.Equal(t, -6.0, splits[1].Amount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ComputeSplits(tt.amount, tt.policy, tt.participants, tt.payer)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrValidation), "got %v", err)
				return
			}
			require.NoError(t, err)
			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestComputeSplits_EqualAlwaysWithinTolerance(t *testing.T) {
	amounts := []float64{0.01, 1, 10, 33.33, 99.99, 100, 1234.56, 1e6 + 0.07}
	for _, amount := range amounts {
		for n := 1; n <= 13; n++ {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = string(rune('a' + i))
			}
			splits, err := ComputeSplits(amount, models.SplitEqual, people(ids...), "a")
			require.NoError(t, err)
			assert.True(t, SplitsMatchAmount(splits, amount), "amount=%v n=%d", amount, n)
		}
	}
}

func TestComputeSplits_PercentagesSummingToHundred(t *testing.T) {
	sets := [][]float64{
		{100},
		{50, 50},
		{33.5, 33.5, 33},
		{10, 20, 30, 40},
		{12.5, 12.5, 25, 50},
	}
	for _, amount := range []float64{1, 19.99, 250, 1000.01} {
		for _, set := range sets {
			ps := make([]Participant, len(set))
			for i, pct := range set {
				ps[i] = Participant{UserID: string(rune('a' + i)), Share: share(pct)}
			}
			splits, err := ComputeSplits(amount, models.SplitPercentage, ps, "a")
			require.NoError(t, err)

			var sum float64
			for _, s := range splits {
				sum += s.Amount
			}
			assert.LessOrEqual(t, math.Abs(sum-amount), 1e-9*math.Max(1, amount), "amount=%v set=%v", amount, set)
		}
	}
}
