package controllers

import (
	"errors"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UpdateApplicationStatusController transitions an application between the
// workflow statuses. The acting officer comes from the authenticated token;
// transitions to any non-pending status without a resolvable officer are
// rejected by the repository.
func (oc *OfficerController) UpdateApplicationStatusController(c *fiber.Ctx) error {
	applicationNumber := c.Params("application_number")

	type StatusRequest struct {
		Status            string  `json:"status"`
		DisapprovalReason *string `json:"disapproval_reason"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	officer := oc.resolveOfficer(c)
	newStatus := models.ApplicationStatus(req.Status)

	application, err := oc.OfficerRepo.UpdateApplicationStatus(officer, applicationNumber, newStatus, req.DisapprovalReason)
	if err != nil {
		return statusUpdateErrorResponse(c, applicationNumber, err)
	}

	reason := ""
	if newStatus == models.DisapprovedApplication && req.DisapprovalReason != nil {
		reason = *req.DisapprovalReason
	}
	oc.afterStatusChange(c, applicationNumber, string(newStatus), reason)

	config.Logger.Info("Application status updated",
		zap.String("applicationNumber", applicationNumber),
		zap.String("newStatus", string(newStatus)))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Application status updated successfully",
		"data":    application,
	})
}

// UpdateApplicationRemarksController trims and stores officer remarks.
func (oc *OfficerController) UpdateApplicationRemarksController(c *fiber.Ctx) error {
	applicationNumber := c.Params("application_number")

	type RemarksRequest struct {
		Remarks string `json:"remarks"`
	}

	var req RemarksRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	application, err := oc.OfficerRepo.UpdateApplicationRemarks(applicationNumber, req.Remarks)
	if err != nil {
		return statusUpdateErrorResponse(c, applicationNumber, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Remarks updated successfully",
		"data":    application,
	})
}

// UpdateErbHearingDateController sets or clears the ERB hearing date.
func (oc *OfficerController) UpdateErbHearingDateController(c *fiber.Ctx) error {
	applicationNumber := c.Params("application_number")

	type HearingDateRequest struct {
		ErbHearingDate *string `json:"erb_hearing_date"` // YYYY-MM-DD or null
	}

	var req HearingDateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	hearingDate, err := parseOptionalDate(req.ErbHearingDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid hearing date",
			"error":   err.Error(),
		})
	}

	application, err := oc.OfficerRepo.UpdateErbHearingDate(applicationNumber, hearingDate)
	if err != nil {
		return statusUpdateErrorResponse(c, applicationNumber, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Hearing date updated successfully",
		"data":    application,
	})
}

func parseOptionalDate(value *string) (*utils.DateOnly, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := utils.ParseDateOnly(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func statusUpdateErrorResponse(c *fiber.Ctx, applicationNumber string, err error) error {
	var validationErr *apperrors.ValidationError
	var permissionErr *apperrors.PermissionError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	case errors.As(err, &permissionErr):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not permitted",
			"error":   err.Error(),
		})
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Application not found",
			"error":   err.Error(),
		})
	default:
		config.Logger.Error("Application update failed",
			zap.String("applicationNumber", applicationNumber),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update application",
			"error":   err.Error(),
		})
	}
}
