package handlers

import (
	"wasit/internal/services/method"
	"wasit/internal/services/transfer"
	"wasit/internal/transferapi"
	"wasit/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the customer transfer endpoints.
type TransferHandler struct {
	transfers transfer.Service
	methods   method.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transfers transfer.Service, methods method.Service) *TransferHandler {
	return &TransferHandler{transfers: transfers, methods: methods}
}

// ListMethods handles GET /transfer/methods. Only enabled methods are listed.
func (h *TransferHandler) ListMethods(c *fiber.Ctx) error {
	methods, err := h.methods.List(c.UserContext(), true)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, toMethods(methods))
}

// Quote handles POST /transfer/quote. An unavailable route is still a 200.
func (h *TransferHandler) Quote(c *fiber.Ctx) error {
	var req transferapi.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	res, err := h.transfers.Quote(c.UserContext(), transfer.QuoteInput{
		FromMethodID: req.FromMethodID,
		ToMethodID:   req.ToMethodID,
		Amount:       req.Amount,
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, toQuote(res, req.FromMethodID, req.ToMethodID))
}

// Confirm handles POST /transfer/confirm.
func (h *TransferHandler) Confirm(c *fiber.Ctx) error {
	var req transferapi.ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	res, err := h.transfers.Confirm(c.UserContext(), transfer.ConfirmInput{
		QuoteInput: transfer.QuoteInput{
			FromMethodID: req.FromMethodID,
			ToMethodID:   req.ToMethodID,
			Amount:       req.Amount,
		},
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerWhatsapp: req.CustomerWhatsapp,
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, transferapi.ConfirmResponse{
		Order:    toOrder(res.Order),
		WhatsApp: res.Handoff,
	})
}

// ListOrders handles GET /transfer/orders?phone=&status=&page=&limit=.
func (h *TransferHandler) ListOrders(c *fiber.Ctx) error {
	p := utils.GetPagination(c)
	res, err := h.transfers.ListOrders(c.UserContext(), transfer.OrdersInput{
		Phone:  c.Query("phone"),
		Status: c.Query("status"),
		Page:   p.Page,
		Limit:  p.Limit,
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, transferapi.OrdersPage{
		Data: toOrders(res.Orders),
		Meta: res.Pagination.Meta(res.Total),
	})
}
