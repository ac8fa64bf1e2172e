package controllers

import (
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApproveApplicationController runs the approval sequence for an
// application: status change, officer assignment, voter record, and voting
// status activation. A voter-record failure surfaces as an error after the
// repository has already reverted the status to VERIFIED.
func (oc *OfficerController) ApproveApplicationController(c *fiber.Ctx) error {
	applicationNumber := c.Params("application_number")

	type ApprovalRequest struct {
		PrecinctNumber string `json:"precinct_number"`
		VoterID        string `json:"voter_id"`
	}

	var req ApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	officer := oc.resolveOfficer(c)

	application, err := oc.OfficerRepo.ApproveWithVoterRecord(officer, applicationNumber, req.PrecinctNumber, req.VoterID)
	if err != nil {
		return statusUpdateErrorResponse(c, applicationNumber, err)
	}

	oc.afterStatusChange(c, applicationNumber, string(models.ApprovedApplication), "")
	oc.refreshApplicantSearchDoc(application.ApplicantID)

	config.Logger.Info("Application approved",
		zap.String("applicationNumber", applicationNumber),
		zap.String("precinctNumber", req.PrecinctNumber))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Application approved successfully",
		"data":    application,
	})
}

// refreshApplicantSearchDoc re-indexes the applicant so search reflects the
// activated voting status. Best effort; approval already succeeded.
func (oc *OfficerController) refreshApplicantSearchDoc(applicantID uuid.UUID) {
	if oc.BleveRepo == nil {
		return
	}

	var applicant models.Applicant
	if err := oc.DB.First(&applicant, "id = ?", applicantID).Error; err != nil {
		config.Logger.Warn("Could not load applicant for search re-index",
			zap.String("applicantID", applicantID.String()),
			zap.Error(err))
		return
	}

	if err := oc.BleveRepo.UpdateApplicant(applicant); err != nil {
		config.Logger.Warn("Failed to refresh applicant search document",
			zap.String("applicantID", applicantID.String()),
			zap.Error(err))
	}
}
