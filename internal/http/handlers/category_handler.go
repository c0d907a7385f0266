package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lojavirtual/internal/log"
	"lojavirtual/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req services.NewCategoryRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	id, err := h.Catalog.CreateCategory(req)
	if err != nil {
		return fail(c, "category.create", err)
	}
	log.Audit(c, "category.create", map[string]any{"category_id": id, "name": req.Name})
	return created(c, "/api/categories/"+strconv.FormatInt(id, 10))
}

type categoryView struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SuperCategory *int64 `json:"superCategory"`
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "category.list", err)
	}
	out := make([]categoryView, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryView{ID: cat.ID, Name: cat.Name, SuperCategory: cat.ParentID})
	}
	return c.JSON(out)
}
