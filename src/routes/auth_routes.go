package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Reward-Pipeline/src/controllers"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/login", controllers.Login)
}
