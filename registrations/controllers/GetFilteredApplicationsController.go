package controllers

import (
	"voter-registration-backend/config"
	"voter-registration-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredApplicationsController handles the fetching of filtered applications
func (rc *RegistrationController) GetFilteredApplicationsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid pagination parameters",
			"error":   err.Error(),
		})
	}

	applications, total, err := rc.ReaderRepo.GetFilteredApplications(params.Filters, true, params.PageSize, params.Offset())
	if err != nil {
		config.Logger.Error("Failed to fetch filtered applications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch applications",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Applications fetched successfully",
		"data":    pagination.NewPaginatedResponse(applications, total, params),
	})
}
