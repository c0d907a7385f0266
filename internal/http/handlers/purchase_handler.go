package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lojavirtual/internal/log"
	"lojavirtual/internal/services"
)

type PurchaseHandler struct {
	Purchases *services.PurchaseService
}

func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var req services.NewPurchaseRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	out, err := h.Purchases.Initiate(c.UserContext(), principal(c), req)
	if err != nil {
		return fail(c, "purchase.create", err)
	}
	log.Audit(c, "purchase.create", map[string]any{
		"purchase_id": out.PurchaseID,
		"product_id":  req.ProductID,
		"quantity":    req.Quantity,
	})
	return c.JSON(fiber.Map{"paymentUrl": out.PaymentURL})
}

// ConfirmPayment receives the gateway callback. Redelivered callbacks answer 200 too.
func (h *PurchaseHandler) ConfirmPayment(c *fiber.Ctx) error {
	var req services.PaymentConfirmationRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	s, err := h.Purchases.ConfirmPayment(req)
	if err != nil {
		return fail(c, "purchase.confirm", err)
	}
	fields := map[string]any{
		"purchase_id": s.Purchase.ID,
		"payment_id":  req.PaymentID,
		"status":      string(s.Purchase.Status),
		"applied":     s.Applied,
	}
	if s.StockShort {
		fields["stock_short"] = true
	}
	log.Audit(c, "purchase.confirm", fields)
	return empty(c, fiber.StatusOK)
}

// Detail lets the buyer follow a purchase and the callbacks recorded for it.
func (h *PurchaseHandler) Detail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return empty(c, fiber.StatusNotFound)
	}
	d, err := h.Purchases.Details(principal(c), id)
	if err != nil {
		return fail(c, "purchase.detail", err)
	}
	return c.JSON(d)
}
