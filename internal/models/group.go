package models

// Member roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Group represents a set of users sharing expenses.
// The creator is always a member with the admin role.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	Name string

	// Description is optional free text.
	Description string

	// CreatedBy is the user ID of the creator.
	CreatedBy string

	// Members is the set of members; user IDs are unique.
	Members []GroupMember

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupMember is one member of a group.
type GroupMember struct {
	UserID   string
	Snapshot UserSnapshot
	Role     string
	JoinedAt int64
}

// Member returns the member entry for userID, if any.
func (g *Group) Member(userID string) (GroupMember, bool) {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return GroupMember{}, false
}

// IsMember reports whether userID belongs to the group.
func (g *Group) IsMember(userID string) bool {
	_, ok := g.Member(userID)
	return ok
}

// IsAdmin reports whether userID is an admin of the group.
func (g *Group) IsAdmin(userID string) bool {
	m, ok := g.Member(userID)
	return ok && m.Role == RoleAdmin
}

// MemberIDs returns the member user IDs in stored order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}
