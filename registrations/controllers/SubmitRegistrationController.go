package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/registrations/repositories"
	"voter-registration-backend/registrations/requests"
	"voter-registration-backend/registrations/services"
	uploads_services "voter-registration-backend/uploads/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// SubmitRegistrationController handles a voter registration submission: form
// validation, applicant resolution, the three ID photo uploads, and the
// multi-table application write. Photos are uploaded before any application
// row exists, so an upload failure aborts the submission cleanly; a partial
// database write after that point is reported as a persistence failure and
// left for the reaper.
func (rc *RegistrationController) SubmitRegistrationController(c *fiber.Ctx) error {
	var req requests.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Invalid registration form", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := services.ValidateSubmission(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	govtIdFront, err := c.FormFile("govt_id_front")
	if err != nil {
		return missingPhotoResponse(c, "govt_id_front")
	}
	govtIdBack, err := c.FormFile("govt_id_back")
	if err != nil {
		return missingPhotoResponse(c, "govt_id_back")
	}
	idSelfie, err := c.FormFile("id_selfie")
	if err != nil {
		return missingPhotoResponse(c, "id_selfie")
	}

	applicant, err := rc.ApplicantRepo.ResolveForRegistration(rc.DB, req.UserEmail, &req)
	if err != nil {
		status, message := statusForError(err)
		config.Logger.Warn("Applicant resolution rejected submission",
			zap.String("userEmail", req.UserEmail),
			zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": message,
			"error":   err.Error(),
		})
	}

	photos, err := rc.storeIdPhotos(applicant.ID, req.UserEmail, govtIdFront, govtIdBack, idSelfie)
	if err != nil {
		status, message := statusForError(err)
		config.Logger.Error("ID photo upload failed",
			zap.String("applicantID", applicant.ID.String()),
			zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": message,
			"error":   err.Error(),
		})
	}

	snapshot, err := json.Marshal(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to capture form snapshot",
			"error":   err.Error(),
		})
	}

	applicationNumber, err := rc.WriterRepo.CreateApplication(rc.DB, applicant.ID, &req, photos, datatypes.JSON(snapshot))
	if err != nil {
		status, message := statusForError(err)
		config.Logger.Error("Application write failed",
			zap.String("applicantID", applicant.ID.String()),
			zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": message,
			"error":   err.Error(),
		})
	}

	// Search indexing is best effort; the submission already succeeded.
	if rc.BleveRepo != nil {
		if err := rc.BleveRepo.IndexSingleApplicant(*applicant); err != nil {
			config.Logger.Warn("Failed to index applicant for search",
				zap.String("applicantID", applicant.ID.String()),
				zap.Error(err))
		}
	}

	config.Logger.Info("Registration submitted",
		zap.String("applicationNumber", applicationNumber),
		zap.String("applicationType", req.ApplicationType),
		zap.String("userEmail", req.UserEmail))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Application submitted successfully",
		"data": fiber.Map{
			"application_number": applicationNumber,
		},
	})
}

func missingPhotoResponse(c *fiber.Ctx, field string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"error":   fmt.Sprintf("%s photo is required", field),
	})
}

// storeIdPhotos uploads the three ID photos, front and back of the
// government ID into the government-ids bucket and the selfie into the
// id-selfies bucket. The first failure aborts; photos already stored are
// kept since their object paths are unique per submission.
func (rc *RegistrationController) storeIdPhotos(
	applicantID uuid.UUID,
	uploadedBy string,
	govtIdFront, govtIdBack, idSelfie *multipart.FileHeader,
) (repositories.IdPhotoURLs, error) {
	var photos repositories.IdPhotoURLs

	submissionID := uuid.New().String()

	frontURL, err := rc.storeOnePhoto(govtIdFront, uploads_services.GovernmentIdsBucket,
		photoObjectPath(applicantID, submissionID, "front", govtIdFront.Filename), uploadedBy)
	if err != nil {
		return photos, err
	}

	backURL, err := rc.storeOnePhoto(govtIdBack, uploads_services.GovernmentIdsBucket,
		photoObjectPath(applicantID, submissionID, "back", govtIdBack.Filename), uploadedBy)
	if err != nil {
		return photos, err
	}

	selfieURL, err := rc.storeOnePhoto(idSelfie, uploads_services.IdSelfiesBucket,
		photoObjectPath(applicantID, submissionID, "selfie", idSelfie.Filename), uploadedBy)
	if err != nil {
		return photos, err
	}

	photos.GovtIdFront = frontURL
	photos.GovtIdBack = backURL
	photos.IdSelfie = selfieURL
	return photos, nil
}

func (rc *RegistrationController) storeOnePhoto(header *multipart.FileHeader, bucket, path, uploadedBy string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", &apperrors.UnknownUploadError{Err: fmt.Errorf("failed to open %s: %w", header.Filename, err)}
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", &apperrors.UnknownUploadError{Err: fmt.Errorf("failed to read %s: %w", header.Filename, err)}
	}

	return rc.UploadSvc.Store(content, header.Header.Get("Content-Type"), bucket, path, uploadedBy)
}

func photoObjectPath(applicantID uuid.UUID, submissionID, label, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s_%s%s", applicantID, submissionID, label, ext)
}
