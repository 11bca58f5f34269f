package ledger

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/collate"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// GroupSummary is a group entry in the directory.
type GroupSummary struct {
	ID          string
	Name        string
	Description string
	MemberCount int
}

// Directory lists who a user shares one-to-one expenses with and which
// groups they belong to.
type Directory struct {
	Users  []models.Profile
	Groups []GroupSummary
}

// ListContactsAndGroups collects every counterparty of selfID's one-to-one
// expenses, whether selfID paid or shares them, and every group selfID is a
// member of. Both lists are sorted by name with the configured collation.
// Counterparties that no longer resolve to a user are dropped.
func (l *Ledger) ListContactsAndGroups(ctx context.Context, selfID string) (*Directory, error) {
	const op = "list_contacts"
	if err := requireActor(selfID); err != nil {
		return nil, fail(op, err)
	}

	expenses, err := l.store.ListExpenses(ctx, storage.ExpenseFilter{OneToOne: true, InvolvingID: selfID})
	if err != nil {
		return nil, fail(op, err)
	}

	seen := make(map[string]bool)
	var contactIDs []string
	addContact := func(id string) {
		if id != selfID && !seen[id] {
			seen[id] = true
			contactIDs = append(contactIDs, id)
		}
	}
	for _, e := range expenses {
		addContact(e.PayerID)
		for _, s := range e.Splits {
			addContact(s.UserID)
		}
	}

	dir := &Directory{Users: []models.Profile{}, Groups: []GroupSummary{}}

	if len(contactIDs) > 0 {
		users, err := l.store.GetUsersByIDs(ctx, contactIDs)
		if err != nil {
			return nil, fail(op, err)
		}
		for _, id := range contactIDs {
			if u, ok := users[id]; ok {
				dir.Users = append(dir.Users, u.Profile())
			}
		}
	}

	groups, err := l.store.ListGroupsByMember(ctx, selfID)
	if err != nil {
		return nil, fail(op, err)
	}
	for _, g := range groups {
		dir.Groups = append(dir.Groups, GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			MemberCount: len(g.Members),
		})
	}

	// A Collator is not safe for concurrent use.
	c := collate.New(l.locale)
	slices.SortStableFunc(dir.Users, func(a, b models.Profile) int {
		if r := c.CompareString(a.Name, b.Name); r != 0 {
			return r
		}
		return strings.Compare(a.ID, b.ID)
	})
	slices.SortStableFunc(dir.Groups, func(a, b GroupSummary) int {
		if r := c.CompareString(a.Name, b.Name); r != 0 {
			return r
		}
		return strings.Compare(a.ID, b.ID)
	})

	return dir, nil
}

