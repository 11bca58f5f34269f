package service

import (
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/rpc"
)

func userToRPC(u *models.User) rpc.User {
	return rpc.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

func profileToRPC(p models.Profile) rpc.User {
	return rpc.User{ID: p.ID, Email: p.Email, Name: p.Name, AvatarURL: p.AvatarURL}
}

func splitsToRPC(splits []models.Split) []rpc.Split {
	out := make([]rpc.Split, len(splits))
	for i, s := range splits {
		out[i] = rpc.Split{UserID: s.UserID, Name: s.Snapshot.Name, Amount: s.Amount, Paid: s.Paid}
	}
	return out
}

func expenseToRPC(e *models.Expense) rpc.Expense {
	return rpc.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		PayerID:     e.PayerID,
		PayerName:   e.PayerSnapshot.Name,
		SplitPolicy: string(e.Policy),
		Splits:      splitsToRPC(e.Splits),
		GroupID:     e.GroupID,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func expensesToRPC(expenses []models.Expense) []rpc.Expense {
	out := make([]rpc.Expense, len(expenses))
	for i := range expenses {
		out[i] = expenseToRPC(&expenses[i])
	}
	return out
}

func settlementToRPC(s *models.Settlement) rpc.Settlement {
	return rpc.Settlement{
		ID:                s.ID,
		Amount:            s.Amount,
		Note:              s.Note,
		Date:              s.Date,
		PayerID:           s.PayerID,
		PayerName:         s.PayerSnapshot.Name,
		ReceiverID:        s.ReceiverID,
		ReceiverName:      s.ReceiverSnapshot.Name,
		GroupID:           s.GroupID,
		RelatedExpenseIDs: s.RelatedExpenseIDs,
		CreatedBy:         s.CreatedBy,
		CreatedAt:         s.CreatedAt,
	}
}

func settlementsToRPC(settlements []models.Settlement) []rpc.Settlement {
	out := make([]rpc.Settlement, len(settlements))
	for i := range settlements {
		out[i] = settlementToRPC(&settlements[i])
	}
	return out
}

func groupToRPC(g *models.Group) rpc.Group {
	members := make([]rpc.GroupMember, len(g.Members))
	for i, m := range g.Members {
		members[i] = rpc.GroupMember{
			UserID:   m.UserID,
			Name:     m.Snapshot.Name,
			Email:    m.Snapshot.Email,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return rpc.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Members:     members,
		CreatedAt:   g.CreatedAt,
	}
}

func participantsFromRPC(in []rpc.Participant) []calculator.Participant {
	out := make([]calculator.Participant, len(in))
	for i, p := range in {
		out[i] = calculator.Participant{UserID: p.UserID, Share: p.Share}
	}
	return out
}

func groupBalancesToRPC(b *ledger.GroupBalances) *rpc.ResolveGroupBalancesResponse {
	resp := &rpc.ResolveGroupBalancesResponse{
		Group:   groupToRPC(b.Group),
		Members: make([]rpc.MemberBalance, len(b.Members)),
		Pairs:   make([]rpc.CounterpartyBalance, len(b.Pairs)),
		Debts:   make([]rpc.Debt, len(b.Debts)),
	}
	for i, m := range b.Members {
		resp.Members[i] = rpc.MemberBalance{
			UserID:    m.UserID,
			Name:      m.Name,
			Role:      m.Role,
			Net:       m.Net,
			TotalPaid: m.TotalPaid,
			TotalOwed: m.TotalOwed,
		}
	}
	for i, p := range b.Pairs {
		resp.Pairs[i] = rpc.CounterpartyBalance{UserID: p.UserID, Name: p.Name, Balance: p.Balance}
	}
	for i, d := range b.Debts {
		resp.Debts[i] = rpc.Debt{From: d.From, To: d.To, Amount: d.Amount}
	}
	return resp
}
