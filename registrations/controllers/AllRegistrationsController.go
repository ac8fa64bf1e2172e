package controllers

import (
	"errors"
	"voter-registration-backend/apperrors"
	bleve_repositories "voter-registration-backend/bleve/repositories"
	"voter-registration-backend/registrations/repositories"
	uploads_services "voter-registration-backend/uploads/services"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type RegistrationController struct {
	ApplicantRepo repositories.ApplicantRepository
	WriterRepo    repositories.ApplicationWriterRepository
	ReaderRepo    repositories.ApplicationReaderRepository
	UploadSvc     *uploads_services.UploadService
	BleveRepo     bleve_repositories.BleveRepositoryInterface
	RedisClient   *redis.Client
	DB            *gorm.DB
}

// statusForError maps the typed submission errors onto HTTP statuses.
func statusForError(err error) (int, string) {
	var validationErr *apperrors.ValidationError
	var duplicateSubmission *apperrors.DuplicateSubmissionError
	var alreadyApproved *apperrors.AlreadyApprovedError
	var duplicatePath *apperrors.DuplicateError
	var notFound *apperrors.NotFoundError
	var persistence *apperrors.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, "Validation failed"
	case errors.As(err, &duplicateSubmission):
		return fiber.StatusConflict, "An application is already in progress"
	case errors.As(err, &alreadyApproved):
		return fiber.StatusConflict, "Applicant already has an approved registration"
	case errors.As(err, &duplicatePath):
		return fiber.StatusConflict, "File already exists"
	case errors.As(err, &notFound):
		return fiber.StatusNotFound, "Not found"
	case errors.As(err, &persistence):
		return fiber.StatusInternalServerError, "Failed to save application"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
