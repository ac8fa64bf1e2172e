package routes

import (
	bleve_repositories "voter-registration-backend/bleve/repositories"
	"voter-registration-backend/middleware"
	controllers "voter-registration-backend/officers/controllers"
	repositories "voter-registration-backend/officers/repositories"
	"voter-registration-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func OfficerRouterInit(
	app *fiber.App,
	db *gorm.DB,
	appCtx *middleware.AppContext,
	asynqClient *asynq.Client,
	wsHub *websocket.Hub,
	bleveRepo bleve_repositories.BleveRepositoryInterface,
) {
	officerController := &controllers.OfficerController{
		OfficerRepo: repositories.NewOfficerRepository(db),
		PasetoMaker: appCtx.PasetoMaker,
		Ctx:         appCtx.Ctx,
		RedisClient: appCtx.RedisClient,
		AsynqClient: asynqClient,
		WsHub:       wsHub,
		BleveRepo:   bleveRepo,
		DB:          db,
	}

	officerRoutes := app.Group("/api/v1/officers")

	officerRoutes.Post("/login", officerController.LoginOfficerController)
	officerRoutes.Post("/logout", officerController.LogoutOfficerController)

	protected := officerRoutes.Group("", middleware.ProtectedRoute(appCtx))

	protected.Patch("/applications/:application_number/status", officerController.UpdateApplicationStatusController)
	protected.Patch("/applications/:application_number/remarks", officerController.UpdateApplicationRemarksController)
	protected.Patch("/applications/:application_number/hearing-date", officerController.UpdateErbHearingDateController)
	protected.Post("/applications/:application_number/approve", officerController.ApproveApplicationController)
}
