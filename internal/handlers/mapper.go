package handlers

import (
	"wasit/internal/models"
	"wasit/internal/services/fee"
	"wasit/internal/transferapi"
)

func toMethod(m models.TransferMethod) transferapi.Method {
	return transferapi.Method{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Category:  string(m.Category),
		Enabled:   m.Enabled,
		SortOrder: m.SortOrder,
	}
}

func toMethods(ms []models.TransferMethod) []transferapi.Method {
	out := make([]transferapi.Method, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMethod(m))
	}
	return out
}

// methodRef populates the ref when the method row was loaded.
func methodRef(m *models.TransferMethod, id string) transferapi.MethodRef {
	if m != nil {
		return transferapi.Populated(toMethod(*m))
	}
	return transferapi.Ref(id)
}

func toQuote(res *fee.Result, fromRef, toRef string) transferapi.Quote {
	q := transferapi.Quote{
		Available:   res.Available,
		FromMethod:  methodRef(res.From, fromRef),
		ToMethod:    methodRef(res.To, toRef),
		Amount:      res.Amount,
		Fee:         res.Fee,
		Total:       res.Total,
		BenefitType: string(res.BenefitType),
		MinAmount:   res.MinAmount,
		MaxAmount:   res.MaxAmount,
		Message:     res.Message,
	}
	if res.Rule != nil {
		id := res.Rule.ID
		q.FeeRuleID = &id
	}
	return q
}

func toOrder(o *models.TransferOrder) transferapi.Order {
	return transferapi.Order{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		FromMethodID:     o.FromMethodID,
		ToMethodID:       o.ToMethodID,
		FromMethod:       methodRef(o.FromMethod, o.FromMethodID),
		ToMethod:         methodRef(o.ToMethod, o.ToMethodID),
		FeeRuleID:        o.FeeRuleID,
		Amount:           o.Amount,
		Fee:              o.Fee,
		Total:            o.Total,
		BenefitType:      string(o.BenefitType),
		Status:           string(o.Status),
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		CustomerWhatsapp: o.CustomerWhatsapp,
		AdminNotes:       o.AdminNotes,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func toOrders(os []models.TransferOrder) []transferapi.Order {
	out := make([]transferapi.Order, 0, len(os))
	for i := range os {
		out = append(out, toOrder(&os[i]))
	}
	return out
}
