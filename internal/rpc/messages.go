package rpc

// User is the public view of a user.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

/*** Auth ***/

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

/*** Ledger ***/

// Split is one participant's owed share of an expense.
type Split struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name,omitempty"`
	Amount float64 `json:"amount"`
	Paid   bool    `json:"paid"`
}

type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        int64   `json:"date"`
	PayerID     string  `json:"payerId"`
	PayerName   string  `json:"payerName,omitempty"`
	SplitPolicy string  `json:"splitPolicy"`
	Splits      []Split `json:"splits"`
	GroupID     string  `json:"groupId,omitempty"`
	CreatedBy   string  `json:"createdBy"`
	CreatedAt   int64   `json:"createdAt"`
}

type Settlement struct {
	ID                string   `json:"id"`
	Amount            float64  `json:"amount"`
	Note              string   `json:"note,omitempty"`
	Date              int64    `json:"date"`
	PayerID           string   `json:"payerId"`
	PayerName         string   `json:"payerName,omitempty"`
	ReceiverID        string   `json:"receiverId"`
	ReceiverName      string   `json:"receiverName,omitempty"`
	GroupID           string   `json:"groupId,omitempty"`
	RelatedExpenseIDs []string `json:"relatedExpenseIds,omitempty"`
	CreatedBy         string   `json:"createdBy"`
	CreatedAt         int64    `json:"createdAt"`
}

// Participant is an input to ComputeSplits. Share is a percentage or an exact
// amount depending on the policy, and is ignored for equal splits.
type Participant struct {
	UserID string   `json:"userId"`
	Share  *float64 `json:"share,omitempty"`
}

type ComputeSplitsRequest struct {
	Amount       float64       `json:"amount"`
	SplitPolicy  string        `json:"splitPolicy"`
	Participants []Participant `json:"participants"`
	PayerID      string        `json:"payerId"`
}

type ComputeSplitsResponse struct {
	Splits []Split `json:"splits"`
}

// SplitInput is one participant's owed amount in RecordExpense.
type SplitInput struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
}

type RecordExpenseRequest struct {
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	Category    string       `json:"category,omitempty"`
	Date        int64        `json:"date,omitempty"`
	PayerID     string       `json:"payerId"`
	SplitPolicy string       `json:"splitPolicy"`
	Splits      []SplitInput `json:"splits"`
	GroupID     string       `json:"groupId,omitempty"`
}

type RecordExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type RecordSettlementRequest struct {
	Amount            float64  `json:"amount"`
	Note              string   `json:"note,omitempty"`
	Date              int64    `json:"date,omitempty"`
	PayerID           string   `json:"payerId"`
	ReceiverID        string   `json:"receiverId"`
	GroupID           string   `json:"groupId,omitempty"`
	RelatedExpenseIDs []string `json:"relatedExpenseIds,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
}

type ListExpensesRequest struct {
	GroupID   string `json:"groupId,omitempty"`
	PayerID   string `json:"payerId,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
	From      int64  `json:"from,omitempty"`
	To        int64  `json:"to,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type ResolvePairBalanceRequest struct {
	OtherUserID string `json:"otherUserId"`
}

// ResolvePairBalanceResponse carries the caller's signed balance against
// Other: positive when Other owes the caller.
type ResolvePairBalanceResponse struct {
	Balance     float64      `json:"balance"`
	Other       User         `json:"other"`
	Expenses    []Expense    `json:"expenses"`
	Settlements []Settlement `json:"settlements"`
}

type ResolveGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type MemberBalance struct {
	UserID    string  `json:"userId"`
	Name      string  `json:"name"`
	Role      string  `json:"role,omitempty"`
	Net       float64 `json:"net"`
	TotalPaid float64 `json:"totalPaid"`
	TotalOwed float64 `json:"totalOwed"`
}

type CounterpartyBalance struct {
	UserID  string  `json:"userId"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type Debt struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type ResolveGroupBalancesResponse struct {
	Group   Group                 `json:"group"`
	Members []MemberBalance       `json:"members"`
	Pairs   []CounterpartyBalance `json:"pairs"`
	Debts   []Debt                `json:"debts"`
}

type ListContactsAndGroupsRequest struct{}

type GroupSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"memberCount"`
}

type ListContactsAndGroupsResponse struct {
	Users  []User         `json:"users"`
	Groups []GroupSummary `json:"groups"`
}

/*** Groups ***/

type GroupMember struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

type Group struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	CreatedBy   string        `json:"createdBy"`
	Members     []GroupMember `json:"members"`
	CreatedAt   int64         `json:"createdAt"`
}

type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds,omitempty"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type AddMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

// GroupResponse is returned by every group procedure.
type GroupResponse struct {
	Group Group `json:"group"`
}
