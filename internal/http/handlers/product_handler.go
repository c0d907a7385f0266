package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lojavirtual/internal/log"
	"lojavirtual/internal/services"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req services.NewProductRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	id, err := h.Catalog.CreateProduct(c.UserContext(), principal(c), req)
	if err != nil {
		return fail(c, "product.create", err)
	}
	log.Audit(c, "product.create", map[string]any{"product_id": id})
	return created(c, "/api/products/"+id)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	d, err := h.Catalog.ProductDetails(id)
	if err != nil {
		return fail(c, "product.detail", err)
	}
	return c.JSON(d)
}
