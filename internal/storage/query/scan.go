package query

import (
	"database/sql"

	"github.com/mmynk/splitledger/internal/models"
)

// Scanner is satisfied by *sql.Row, *sql.Rows and pgx.Row.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanUser scans a row selected with UserColumns.
func ScanUser(row Scanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// ScanGroup scans a row selected with GroupColumns.
func ScanGroup(row Scanner) (*models.Group, error) {
	g := &models.Group{}
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatedAt)
	return g, err
}

// ScanMember scans a row selected with MemberColumns.
func ScanMember(row Scanner) (groupID string, m models.GroupMember, err error) {
	err = row.Scan(&groupID, &m.UserID, &m.Snapshot.Name, &m.Snapshot.Email, &m.Role, &m.JoinedAt)
	return groupID, m, err
}

// ScanExpense scans a row selected with ExpenseColumns. Splits are loaded
// separately.
func ScanExpense(row Scanner) (models.Expense, error) {
	var (
		e       models.Expense
		policy  string
		groupID sql.NullString
	)
	err := row.Scan(
		&e.ID, &e.Description, &e.Amount, &e.Category, &e.Date,
		&e.PayerID, &e.PayerSnapshot.Name, &e.PayerSnapshot.Email, &policy,
		&groupID, &e.CreatedBy, &e.CreatedAt,
	)
	e.Policy = models.SplitPolicy(policy)
	e.GroupID = groupID.String
	return e, err
}

// ScanSplit scans a row selected with SplitColumns.
func ScanSplit(row Scanner) (expenseID string, s models.Split, err error) {
	err = row.Scan(&expenseID, &s.UserID, &s.Snapshot.Name, &s.Snapshot.Email, &s.Amount, &s.Paid)
	return expenseID, s, err
}

// ScanSettlement scans a row selected with SettlementColumns.
func ScanSettlement(row Scanner) (models.Settlement, error) {
	var (
		s       models.Settlement
		groupID sql.NullString
	)
	err := row.Scan(
		&s.ID, &s.Amount, &s.Note, &s.Date,
		&s.PayerID, &s.PayerSnapshot.Name, &s.PayerSnapshot.Email,
		&s.ReceiverID, &s.ReceiverSnapshot.Name, &s.ReceiverSnapshot.Email,
		&groupID, &s.CreatedBy, &s.CreatedAt,
	)
	s.GroupID = groupID.String
	return s, err
}
