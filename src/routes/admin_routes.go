package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Reward-Pipeline/src/controllers"
	"Backend-Reward-Pipeline/src/middleware"
)

func AdminRoutes(app *fiber.App, ctrl *controllers.AdminController) {
	admin := app.Group("/admin", middleware.AuthJWT)

	admin.Get("/submissions", ctrl.ListSubmissions)
	admin.Post("/submissions/:id/resend", ctrl.ResendNotification)
}
