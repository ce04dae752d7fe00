package controllers

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"Backend-Reward-Pipeline/src/utils"
)

type loginIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates the operator configured through ADMIN_EMAIL and
// ADMIN_PASSWORD_HASH (bcrypt) and returns a bearer token for the /admin
// routes.
func Login(c *fiber.Ctx) error {
	var in loginIn
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "email and password are required")
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || passwordHash == "" {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "operator login not configured")
	}

	if !strings.EqualFold(in.Email, adminEmail) ||
		bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(in.Password)) != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateJWT(adminEmail, "admin")
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return c.JSON(fiber.Map{"token": token})
}
