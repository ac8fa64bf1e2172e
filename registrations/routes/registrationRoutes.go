package routes

import (
	bleve_repositories "voter-registration-backend/bleve/repositories"
	"voter-registration-backend/middleware"
	controllers "voter-registration-backend/registrations/controllers"
	repositories "voter-registration-backend/registrations/repositories"
	uploads_services "voter-registration-backend/uploads/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func RegistrationRouterInit(
	app *fiber.App,
	db *gorm.DB,
	appCtx *middleware.AppContext,
	uploadService *uploads_services.UploadService,
	bleveRepository bleve_repositories.BleveRepositoryInterface,
) {
	registrationController := &controllers.RegistrationController{
		ApplicantRepo: repositories.NewApplicantRepository(db),
		WriterRepo:    repositories.NewApplicationWriterRepository(db),
		ReaderRepo:    repositories.NewApplicationReaderRepository(db),
		UploadSvc:     uploadService,
		BleveRepo:     bleveRepository,
		RedisClient:   appCtx.RedisClient,
		DB:            db,
	}

	registrationRoutes := app.Group("/api/v1")

	// Public submission and lookup
	registrationRoutes.Post("/registrations", registrationController.SubmitRegistrationController)
	registrationRoutes.Get("/registrations/:application_number", registrationController.GetApplicationController)

	// Officer views
	protected := registrationRoutes.Group("", middleware.ProtectedRoute(appCtx))
	protected.Get("/filtered-applications", registrationController.GetFilteredApplicationsController)
	protected.Get("/applications-report", registrationController.ExportApplicationsController)
}
