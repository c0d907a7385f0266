package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lojavirtual/internal/domain"
	applog "lojavirtual/internal/log"
	"lojavirtual/internal/validate"
)

// MsgInternal is the only detail a client sees for unexpected failures.
const MsgInternal = "Erro interno"

type errorBody struct {
	Mensagens []string `json:"mensagens"`
}

func messages(c *fiber.Ctx, status int, msgs ...string) error {
	return c.Status(status).JSON(errorBody{Mensagens: msgs})
}

// decode parses the JSON body into dst, answering 400 when it is malformed.
func decode(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"reason": "malformed body"})
		return false, messages(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	return true, nil
}

// fail maps service errors onto HTTP responses.
func fail(c *fiber.Ctx, action string, err error) error {
	var vs validate.Violations
	switch {
	case errors.As(err, &vs):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "violations": vs.Messages()})
		return messages(c, fiber.StatusBadRequest, vs.Messages()...)
	case errors.Is(err, domain.ErrUnknownPrincipal):
		applog.Security(c, "auth.principal.unknown", map[string]any{"action": action})
		return empty(c, fiber.StatusUnauthorized)
	case errors.Is(err, domain.ErrNotFound):
		return empty(c, fiber.StatusNotFound)
	}
	applog.Error(c, action, err, nil)
	return messages(c, fiber.StatusInternalServerError, MsgInternal)
}

// ErrorHandler is the last resort for errors and panics escaping the handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return empty(c, fe.Code)
	}
	applog.Error(c, "server.error", err, nil)
	return messages(c, fiber.StatusInternalServerError, MsgInternal)
}

func created(c *fiber.Ctx, location string) error {
	c.Location(location)
	return empty(c, fiber.StatusCreated)
}

// empty answers status with no body; fiber's SendStatus would write the status text.
func empty(c *fiber.Ctx, status int) error {
	return c.Status(status).Send(nil)
}
