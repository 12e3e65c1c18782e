package service

import (
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

func toAPIExpense(e *models.Expense) *ledgerv1.Expense {
	splits := make([]*ledgerv1.Split, len(e.Splits))
	for i := range e.Splits {
		splits[i] = toAPISplit(&e.Splits[i])
	}
	return &ledgerv1.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		ReceiptURL:  e.ReceiptURL,
		CreatedAt:   e.CreatedAt,
		Splits:      splits,
	}
}

func toAPISplit(s *models.Split) *ledgerv1.Split {
	return &ledgerv1.Split{
		ID:        s.ID,
		UserID:    s.UserID,
		Amount:    s.Amount,
		Status:    string(s.Status),
		SettledAt: s.SettledAt,
	}
}

func toAPIBalance(b models.Balance) *ledgerv1.Balance {
	return &ledgerv1.Balance{
		GroupID: b.GroupID,
		PayerID: b.PayerID,
		Payer:   b.PayerName,
		OwerID:  b.OwerID,
		Ower:    b.OwerName,
		Balance: b.Amount,
	}
}

func toAPITransfer(t calculator.Transfer) *ledgerv1.Transfer {
	return &ledgerv1.Transfer{
		FromID: t.FromID,
		From:   t.FromName,
		ToID:   t.ToID,
		To:     t.ToName,
		Amount: t.Amount,
	}
}

func toAPIMemberBalance(m calculator.MemberBalance) *ledgerv1.MemberBalance {
	return &ledgerv1.MemberBalance{
		UserID:     m.UserID,
		Name:       m.Name,
		TotalPaid:  m.TotalPaid,
		TotalOwed:  m.TotalOwed,
		NetBalance: m.NetBalance,
	}
}

func toAPISettlement(s *models.Settlement) *ledgerv1.Settlement {
	return &ledgerv1.Settlement{
		ID:         s.ID,
		GroupID:    s.GroupID,
		PayerID:    s.PayerID,
		ReceiverID: s.ReceiverID,
		Amount:     s.Amount,
		Status:     string(s.Status),
		Note:       s.Note,
		CreatedAt:  s.CreatedAt,
		SettledAt:  s.SettledAt,
	}
}

func toAPIUser(u *models.User) *ledgerv1.User {
	return &ledgerv1.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}

func toAPIGroup(g *models.Group, members []*ledgerv1.Member) *ledgerv1.Group {
	if members == nil {
		members = []*ledgerv1.Member{}
	}
	return &ledgerv1.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Category:    g.Category,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
		Members:     members,
	}
}
