package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// Login handles POST /api/login, the deprecated demo login. The 401
// body is identical for unknown emails and wrong passwords, and the
// credential check costs the same in both cases.
func (h *Handler) Login(c *fiber.Ctx) error {
	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(loginRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "invalid request body",
		})
	}

	ok, err := h.auth.Verify(input.Email, input.Password)
	if err != nil {
		log.Printf("login verify: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "login failed",
		})
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "invalid email or password",
		})
	}

	tokenStr, err := h.auth.IssueToken(input.Email)
	if err != nil {
		log.Printf("issue token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"access_token": tokenStr,
		"token_type":   "bearer",
	})
}
