// Package query builds the SQL shared by the storage backends.
// Backends differ only in placeholder format.
package query

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Column lists in scan order.
var (
	UserColumns = []string{"id", "email", "name", "avatar_url", "password_hash", "created_at", "updated_at"}

	GroupColumns = []string{"id", "name", "description", "created_by", "created_at"}

	MemberColumns = []string{"group_id", "user_id", "user_name", "user_email", "role", "joined_at"}

	ExpenseColumns = []string{
		"id", "description", "amount", "category", "date",
		"payer_id", "payer_name", "payer_email", "split_policy",
		"group_id", "created_by", "created_at",
	}

	SplitColumns = []string{"expense_id", "user_id", "user_name", "user_email", "amount", "paid"}

	splitInsertColumns = []string{"expense_id", "user_id", "user_name", "user_email", "amount", "paid", "position"}

	SettlementColumns = []string{
		"id", "amount", "note", "date",
		"payer_id", "payer_name", "payer_email",
		"receiver_id", "receiver_name", "receiver_email",
		"group_id", "created_by", "created_at",
	}
)

// Builder produces statements for one placeholder format.
type Builder struct {
	sb sq.StatementBuilderType
}

// NewBuilder returns a Builder using ph (sq.Question for SQLite, sq.Dollar for
// PostgreSQL).
func NewBuilder(ph sq.PlaceholderFormat) Builder {
	return Builder{sb: sq.StatementBuilder.PlaceholderFormat(ph)}
}

// nullable maps "" to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func splitExists(userID string) sq.Sqlizer {
	return sq.Expr("EXISTS (SELECT 1 FROM expense_splits s WHERE s.expense_id = expenses.id AND s.user_id = ?)", userID)
}

/*** Users ***/

// InsertUser inserts a user row.
func (b Builder) InsertUser(u *models.User) sq.InsertBuilder {
	return b.sb.Insert("users").Columns(UserColumns...).
		Values(u.ID, u.Email, u.Name, u.AvatarURL, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
}

// SelectUsers selects users matching where, ordered by ID.
func (b Builder) SelectUsers(where sq.Sqlizer) sq.SelectBuilder {
	q := b.sb.Select(UserColumns...).From("users").OrderBy("id")
	if where != nil {
		q = q.Where(where)
	}
	return q
}

/*** Groups ***/

// InsertGroup inserts a group row.
func (b Builder) InsertGroup(g *models.Group) sq.InsertBuilder {
	return b.sb.Insert("groups").Columns(GroupColumns...).
		Values(g.ID, g.Name, g.Description, g.CreatedBy, g.CreatedAt)
}

// InsertMember inserts a member row, ignoring an existing membership.
func (b Builder) InsertMember(groupID string, m models.GroupMember) sq.InsertBuilder {
	return b.sb.Insert("group_members").Columns(MemberColumns...).
		Values(groupID, m.UserID, m.Snapshot.Name, m.Snapshot.Email, m.Role, m.JoinedAt).
		Suffix("ON CONFLICT (group_id, user_id) DO NOTHING")
}

// DeleteMember deletes a member row.
func (b Builder) DeleteMember(groupID, userID string) sq.DeleteBuilder {
	return b.sb.Delete("group_members").Where(sq.Eq{"group_id": groupID, "user_id": userID})
}

// SelectGroup selects one group by ID.
func (b Builder) SelectGroup(groupID string) sq.SelectBuilder {
	return b.sb.Select(GroupColumns...).From("groups").Where(sq.Eq{"id": groupID})
}

// SelectGroupsByMember selects the groups userID belongs to.
func (b Builder) SelectGroupsByMember(userID string) sq.SelectBuilder {
	return b.sb.Select(GroupColumns...).From("groups").
		Where(sq.Expr("id IN (SELECT group_id FROM group_members WHERE user_id = ?)", userID)).
		OrderBy("created_at", "id")
}

// SelectMembers selects the members of the given groups in join order.
func (b Builder) SelectMembers(groupIDs []string) sq.SelectBuilder {
	return b.sb.Select(MemberColumns...).From("group_members").
		Where(sq.Eq{"group_id": groupIDs}).
		OrderBy("group_id", "joined_at", "user_id")
}

/*** Expenses ***/

// InsertExpense inserts an expense row without its splits.
func (b Builder) InsertExpense(e *models.Expense) sq.InsertBuilder {
	return b.sb.Insert("expenses").Columns(ExpenseColumns...).
		Values(
			e.ID, e.Description, e.Amount, e.Category, e.Date,
			e.PayerID, e.PayerSnapshot.Name, e.PayerSnapshot.Email, string(e.Policy),
			nullable(e.GroupID), e.CreatedBy, e.CreatedAt,
		)
}

// InsertSplits inserts all splits of an expense in one statement.
func (b Builder) InsertSplits(expenseID string, splits []models.Split) sq.InsertBuilder {
	q := b.sb.Insert("expense_splits").Columns(splitInsertColumns...)
	for i, s := range splits {
		q = q.Values(expenseID, s.UserID, s.Snapshot.Name, s.Snapshot.Email, s.Amount, s.Paid, i)
	}
	return q
}

// SelectExpenses selects expenses matching f, newest first.
func (b Builder) SelectExpenses(f storage.ExpenseFilter) sq.SelectBuilder {
	q := b.sb.Select(ExpenseColumns...).From("expenses")

	if f.GroupID != "" {
		q = q.Where(sq.Eq{"group_id": f.GroupID})
	}
	if f.OneToOne {
		q = q.Where(sq.Eq{"group_id": nil})
	}
	if f.PayerID != "" {
		q = q.Where(sq.Eq{"payer_id": f.PayerID})
	}
	if f.CreatedBy != "" {
		q = q.Where(sq.Eq{"created_by": f.CreatedBy})
	}
	if f.InvolvingID != "" {
		q = q.Where(sq.Or{sq.Eq{"payer_id": f.InvolvingID}, splitExists(f.InvolvingID)})
	}
	if a, c := f.Between[0], f.Between[1]; a != "" && c != "" {
		q = q.Where(sq.Or{
			sq.And{sq.Eq{"payer_id": a}, splitExists(c)},
			sq.And{sq.Eq{"payer_id": c}, splitExists(a)},
		})
	}
	if f.From != 0 {
		q = q.Where(sq.GtOrEq{"date": f.From})
	}
	if f.To != 0 {
		q = q.Where(sq.LtOrEq{"date": f.To})
	}

	return q.OrderBy("date DESC", "created_at DESC", "id")
}

// SelectSplits selects the splits of the given expenses in stored order.
func (b Builder) SelectSplits(expenseIDs []string) sq.SelectBuilder {
	return b.sb.Select(SplitColumns...).From("expense_splits").
		Where(sq.Eq{"expense_id": expenseIDs}).
		OrderBy("expense_id", "position")
}

/*** Settlements ***/

// InsertSettlement inserts a settlement row without its related expenses.
func (b Builder) InsertSettlement(s *models.Settlement) sq.InsertBuilder {
	return b.sb.Insert("settlements").Columns(SettlementColumns...).
		Values(
			s.ID, s.Amount, s.Note, s.Date,
			s.PayerID, s.PayerSnapshot.Name, s.PayerSnapshot.Email,
			s.ReceiverID, s.ReceiverSnapshot.Name, s.ReceiverSnapshot.Email,
			nullable(s.GroupID), s.CreatedBy, s.CreatedAt,
		)
}

// InsertSettlementExpenses links a settlement to the expenses it covers.
func (b Builder) InsertSettlementExpenses(settlementID string, expenseIDs []string) sq.InsertBuilder {
	q := b.sb.Insert("settlement_expenses").Columns("settlement_id", "expense_id")
	for _, id := range expenseIDs {
		q = q.Values(settlementID, id)
	}
	return q
}

// SelectSettlements selects settlements matching f, newest first.
func (b Builder) SelectSettlements(f storage.SettlementFilter) sq.SelectBuilder {
	q := b.sb.Select(SettlementColumns...).From("settlements")

	if f.GroupID != "" {
		q = q.Where(sq.Eq{"group_id": f.GroupID})
	}
	if f.OneToOne {
		q = q.Where(sq.Eq{"group_id": nil})
	}
	if f.PayerID != "" {
		q = q.Where(sq.Eq{"payer_id": f.PayerID})
	}
	if f.ReceiverID != "" {
		q = q.Where(sq.Eq{"receiver_id": f.ReceiverID})
	}
	if f.InvolvingID != "" {
		q = q.Where(sq.Or{sq.Eq{"payer_id": f.InvolvingID}, sq.Eq{"receiver_id": f.InvolvingID}})
	}
	if a, c := f.Between[0], f.Between[1]; a != "" && c != "" {
		q = q.Where(sq.Or{
			sq.Eq{"payer_id": a, "receiver_id": c},
			sq.Eq{"payer_id": c, "receiver_id": a},
		})
	}
	if f.From != 0 {
		q = q.Where(sq.GtOrEq{"date": f.From})
	}
	if f.To != 0 {
		q = q.Where(sq.LtOrEq{"date": f.To})
	}

	return q.OrderBy("date DESC", "created_at DESC", "id")
}

// SelectSettlementExpenses selects expense links of the given settlements.
func (b Builder) SelectSettlementExpenses(settlementIDs []string) sq.SelectBuilder {
	return b.sb.Select("settlement_id", "expense_id").From("settlement_expenses").
		Where(sq.Eq{"settlement_id": settlementIDs}).
		OrderBy("settlement_id", "expense_id")
}
