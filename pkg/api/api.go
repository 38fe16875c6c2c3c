// Package api defines the splitbook.v1 wire messages.
//
// Messages are plain structs encoded as JSON by Codec, so they can be served
// over Connect without generated protobuf types.
package api

// User is a ledger participant.
type User struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Group is a reusable participant list.
type Group struct {
	Id        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIds []string `json:"member_ids"`
	CreatedAt int64    `json:"created_at"`
}

// Split is one participant's share. Percent is read for PERCENTAGE expenses,
// Amount otherwise.
type Split struct {
	UserId  string  `json:"user_id"`
	Amount  float64 `json:"amount,omitempty"`
	Percent float64 `json:"percent,omitempty"`
}

// Expense is an applied expense; split amounts are absolute.
type Expense struct {
	Id          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PayerId     string  `json:"payer_id"`
	SplitType   string  `json:"split_type"`
	Splits      []Split `json:"splits"`
	GroupId     string  `json:"group_id,omitempty"`
	CreatedAt   int64   `json:"created_at"`
}

// Balance is what the sheet owner and one counterparty owe each other.
// Net is derived: owed_to_me - owed_by_me.
type Balance struct {
	CounterpartyId   string  `json:"counterparty_id"`
	CounterpartyName string  `json:"counterparty_name"`
	OwedByMe         float64 `json:"owed_by_me"`
	OwedToMe         float64 `json:"owed_to_me"`
	Net              float64 `json:"net"`
}

// BalanceSheet is a snapshot of one user's balances.
type BalanceSheet struct {
	UserId          string    `json:"user_id"`
	TotalPaid       float64   `json:"total_paid"`
	TotalOwnExpense float64   `json:"total_own_expense"`
	TotalYouOwe     float64   `json:"total_you_owe"`
	TotalYouGetBack float64   `json:"total_you_get_back"`
	Balances        []Balance `json:"balances"`
}

type CreateUserRequest struct {
	Name string `json:"name"`
}

type CreateUserResponse struct {
	User *User `json:"user"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type CreateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIds []string `json:"member_ids"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type AddGroupMembersRequest struct {
	GroupId   string   `json:"group_id"`
	MemberIds []string `json:"member_ids"`
}

type AddGroupMembersResponse struct {
	Group *Group `json:"group"`
}

type CreateExpenseRequest struct {
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	PayerId     string   `json:"payer_id"`
	SplitType   string   `json:"split_type"`
	Splits      []*Split `json:"splits"`
	GroupId     string   `json:"group_id,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	// UserId filters to expenses the user paid or shares. Empty lists all.
	UserId string `json:"user_id,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetBalanceSheetRequest struct {
	UserId string `json:"user_id"`
}

type GetBalanceSheetResponse struct {
	Sheet *BalanceSheet `json:"sheet"`
	// Text is the sheet rendered for display.
	Text string `json:"text"`
}
