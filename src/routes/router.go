package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Reward-Pipeline/src/controllers"
)

func InitRoutes(app *fiber.App, webhooks *controllers.WebhookController, admin *controllers.AdminController) {
	WebhookRoutes(app, webhooks)
	AuthRoutes(app)
	AdminRoutes(app, admin)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
