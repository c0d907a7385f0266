package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lojavirtual/internal/log"
	"lojavirtual/internal/services"
)

// ReviewHandler serves product opinions and questions.
type ReviewHandler struct {
	Reviews *services.ReviewService
}

func (h *ReviewHandler) CreateOpinion(c *fiber.Ctx) error {
	var req services.NewOpinionRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	id, err := h.Reviews.CreateOpinion(principal(c), req)
	if err != nil {
		return fail(c, "opinion.create", err)
	}
	log.Audit(c, "opinion.create", map[string]any{"opinion_id": id, "product_id": req.ProductID})
	return created(c, "/api/opinions/"+strconv.FormatInt(id, 10))
}

func (h *ReviewHandler) AskQuestion(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Params("id"))
	var req services.NewQuestionRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	id, err := h.Reviews.AskQuestion(c.UserContext(), principal(c), productID, req)
	if err != nil {
		return fail(c, "question.create", err)
	}
	log.Audit(c, "question.create", map[string]any{"question_id": id, "product_id": productID})
	return created(c, "/api/products/"+productID+"/questions/"+strconv.FormatInt(id, 10))
}

func (h *ReviewHandler) Questions(c *fiber.Ctx) error {
	qs, err := h.Reviews.Questions(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fail(c, "question.list", err)
	}
	return c.JSON(qs)
}
