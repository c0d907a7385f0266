package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lojavirtual/internal/log"
	"lojavirtual/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req services.NewUserRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	id, err := h.Users.Register(req)
	if err != nil {
		return fail(c, "user.create", err)
	}
	log.Audit(c, "user.create", map[string]any{"user_id": id})
	return created(c, "/api/users/"+strconv.FormatInt(id, 10))
}

type userView struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return fail(c, "user.list", err)
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, userView{ID: u.ID, Login: u.Email})
	}
	return c.JSON(out)
}
