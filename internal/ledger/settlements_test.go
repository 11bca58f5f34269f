package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func TestRecordSettlement(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "Alice"), f.user(t, "Bob")
	e := f.expense(t, alice, equal(alice, 20, alice, bob))

	s, err := f.ledger.RecordSettlement(f.ctx, bob.ID, SettlementInput{
		Amount:            10,
		Note:              " dinner ",
		PayerID:           bob.ID,
		ReceiverID:        alice.ID,
		RelatedExpenseIDs: []string{e.ID, e.ID, ""},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "dinner", s.Note)
	assert.Equal(t, testNow.Unix(), s.Date)
	assert.Equal(t, []string{e.ID}, s.RelatedExpenseIDs)
	assert.Equal(t, "Alice", s.ReceiverSnapshot.Name)
	assert.Equal(t, "Bob", s.PayerSnapshot.Name)

	res, err := f.ledger.ResolvePairBalance(f.ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, res.Settlements, 1)
	assert.Equal(t, []string{e.ID}, res.Settlements[0].RelatedExpenseIDs)
}

func TestRecordSettlement_Errors(t *testing.T) {
	f := newFixture(t)
	alice, bob, mallory := f.user(t, "Alice"), f.user(t, "Bob"), f.user(t, "Mallory")
	g := f.group(t, alice, bob)

	tests := []struct {
		name  string
		actor string
		in    SettlementInput
		want  error
	}{
		{"unauthenticated", "", SettlementInput{Amount: 1, PayerID: bob.ID, ReceiverID: alice.ID}, models.ErrUnauthenticated},
		{"same party", bob.ID, SettlementInput{Amount: 1, PayerID: bob.ID, ReceiverID: bob.ID}, models.ErrValidation},
		{"missing receiver", bob.ID, SettlementInput{Amount: 1, PayerID: bob.ID}, models.ErrValidation},
		{"unknown receiver", bob.ID, SettlementInput{Amount: 1, PayerID: bob.ID, ReceiverID: "ghost"}, models.ErrNotFound},
		{"unknown expense", bob.ID, SettlementInput{Amount: 1, PayerID: bob.ID, ReceiverID: alice.ID, RelatedExpenseIDs: []string{"nope"}}, models.ErrNotFound},
		{"non-member", mallory.ID, SettlementInput{Amount: 1, PayerID: bob.ID, ReceiverID: alice.ID, GroupID: g.ID}, models.ErrForbidden},
		{"unknown group", bob.ID, SettlementInput{Amount: 1, PayerID: bob.ID, ReceiverID: alice.ID, GroupID: "nope"}, models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.RecordSettlement(f.ctx, tt.actor, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	res, err := f.ledger.ResolvePairBalance(f.ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Settlements)
}
