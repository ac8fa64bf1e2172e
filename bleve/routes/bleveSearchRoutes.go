package routes

import (
	"voter-registration-backend/bleve/controllers"
	"voter-registration-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func InitBleveRoutes(app *fiber.App, controller *controllers.SearchController, appCtx *middleware.AppContext) {
	api := app.Group("/api/v1/search", middleware.ProtectedRoute(appCtx))

	api.Get("/applicants", controller.SearchApplicantsController)
}
