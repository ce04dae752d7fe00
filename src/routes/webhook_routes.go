package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Reward-Pipeline/src/controllers"
	"Backend-Reward-Pipeline/src/middleware"
)

func WebhookRoutes(app *fiber.App, ctrl *controllers.WebhookController) {
	webhooks := app.Group("/webhooks")

	// form-provider deliveries
	webhooks.Post("/form", middleware.VerifyFormSignature, ctrl.HandleFormWebhook)
	webhooks.Get("/form", controllers.Health("form"))

	// store-insert events
	webhooks.Post("/submissions", ctrl.HandleInsertWebhook)
	webhooks.Get("/submissions", controllers.Health("submissions"))
}
