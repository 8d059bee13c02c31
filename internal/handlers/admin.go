package handlers

import (
	"wasit/internal/models"
	"wasit/internal/repositories"
	"wasit/internal/services/feerule"
	"wasit/internal/services/method"
	"wasit/internal/services/order"
	"wasit/internal/transferapi"
	"wasit/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AdminHandler serves the back-office endpoints under /api/admin.
type AdminHandler struct {
	methods  method.Service
	feeRules feerule.Service
	orders   order.Service
}

func NewAdminHandler(methods method.Service, feeRules feerule.Service, orders order.Service) *AdminHandler {
	return &AdminHandler{methods: methods, feeRules: feeRules, orders: orders}
}

type methodRequest struct {
	Name      *string `json:"name"`
	Code      *string `json:"code"`
	Category  *string `json:"category"`
	Enabled   *bool   `json:"enabled"`
	SortOrder *int    `json:"sortOrder"`
}

func (r methodRequest) input() method.Input {
	in := method.Input{Name: r.Name, Code: r.Code, Enabled: r.Enabled, SortOrder: r.SortOrder}
	if r.Category != nil {
		cat := models.MethodCategory(*r.Category)
		in.Category = &cat
	}
	return in
}

type feeRuleRequest struct {
	FromMethodID string           `json:"fromMethodId"`
	ToMethodID   string           `json:"toMethodId"`
	FeeType      string           `json:"feeType"`
	FeeValue     decimal.Decimal  `json:"feeValue"`
	BenefitType  string           `json:"benefitType"`
	MinAmount    *decimal.Decimal `json:"minAmount"`
	MaxAmount    *decimal.Decimal `json:"maxAmount"`
	Enabled      *bool            `json:"enabled"`
	Priority     *int             `json:"priority"`
}

func (r feeRuleRequest) input() feerule.Input {
	return feerule.Input{
		FromMethod:  r.FromMethodID,
		ToMethod:    r.ToMethodID,
		FeeType:     models.FeeType(r.FeeType),
		FeeValue:    r.FeeValue,
		BenefitType: models.BenefitType(r.BenefitType),
		MinAmount:   r.MinAmount,
		MaxAmount:   r.MaxAmount,
		Enabled:     r.Enabled,
		Priority:    r.Priority,
	}
}

// feeRuleView adds the method codes so the back office can read a rule at a glance.
type feeRuleView struct {
	models.TransferFeeRule
	FromMethodCode string `json:"fromMethodCode,omitempty"`
	ToMethodCode   string `json:"toMethodCode,omitempty"`
}

func toFeeRuleView(r *models.TransferFeeRule) feeRuleView {
	v := feeRuleView{TransferFeeRule: *r}
	if r.FromMethod != nil {
		v.FromMethodCode = r.FromMethod.Code
	}
	if r.ToMethod != nil {
		v.ToMethodCode = r.ToMethod.Code
	}
	return v
}

type orderUpdateRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

// ListMethods returns every method, enabled or not.
func (h *AdminHandler) ListMethods(c *fiber.Ctx) error {
	methods, err := h.methods.List(c.UserContext(), false)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, methods)
}

func (h *AdminHandler) GetMethod(c *fiber.Ctx) error {
	m, err := h.methods.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, m)
}

func (h *AdminHandler) CreateMethod(c *fiber.Ctx) error {
	var req methodRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	m, err := h.methods.Create(c.UserContext(), req.input())
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, m)
}

func (h *AdminHandler) UpdateMethod(c *fiber.Ctx) error {
	var req methodRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	m, err := h.methods.Update(c.UserContext(), c.Params("id"), req.input())
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, m)
}

// ToggleMethod handles POST /methods/:id/enable and /methods/:id/disable.
func (h *AdminHandler) ToggleMethod(enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := h.methods.SetEnabled(c.UserContext(), c.Params("id"), enabled)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, m)
	}
}

func (h *AdminHandler) DeleteMethod(c *fiber.Ctx) error {
	if err := h.methods.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.Fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListFeeRules accepts ?fromMethodId=&toMethodId= as ids or codes.
func (h *AdminHandler) ListFeeRules(c *fiber.Ctx) error {
	rules, err := h.feeRules.List(c.UserContext(), repositories.FeeRuleFilter{
		FromMethodID: c.Query("fromMethodId"),
		ToMethodID:   c.Query("toMethodId"),
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	out := make([]feeRuleView, 0, len(rules))
	for i := range rules {
		out = append(out, toFeeRuleView(&rules[i]))
	}
	return utils.Success(c, out)
}

func (h *AdminHandler) GetFeeRule(c *fiber.Ctx) error {
	rule, err := h.feeRules.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, toFeeRuleView(rule))
}

func (h *AdminHandler) CreateFeeRule(c *fiber.Ctx) error {
	var req feeRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	rule, err := h.feeRules.Create(c.UserContext(), req.input())
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, toFeeRuleView(rule))
}

func (h *AdminHandler) UpdateFeeRule(c *fiber.Ctx) error {
	var req feeRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	rule, err := h.feeRules.Update(c.UserContext(), c.Params("id"), req.input())
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, toFeeRuleView(rule))
}

func (h *AdminHandler) DeleteFeeRule(c *fiber.Ctx) error {
	if err := h.feeRules.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.Fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListOrders filters by ?status=&phone=&orderNumber= and paginates.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	p := utils.GetPagination(c)
	res, err := h.orders.List(c.UserContext(), order.ListInput{
		Phone:       c.Query("phone"),
		Status:      c.Query("status"),
		OrderNumber: c.Query("orderNumber"),
		Page:        p.Page,
		Limit:       p.Limit,
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, transferapi.OrdersPage{
		Data: toOrders(res.Orders),
		Meta: res.Pagination.Meta(res.Total),
	})
}

func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.orders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, toOrder(o))
}

// UpdateOrder handles PATCH /orders/:id with a new status, admin notes, or both.
func (h *AdminHandler) UpdateOrder(c *fiber.Ctx) error {
	var req orderUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	in := order.UpdateInput{AdminNotes: req.AdminNotes}
	if req.Status != nil {
		s := models.OrderStatus(*req.Status)
		in.Status = &s
	}

	o, err := h.orders.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, toOrder(o))
}
