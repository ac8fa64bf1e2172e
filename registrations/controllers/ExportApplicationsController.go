package controllers

import (
	"time"
	"voter-registration-backend/config"
	"voter-registration-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExportApplicationsController writes the filtered application set to an
// Excel workbook and returns its download path. Pagination is bypassed so
// the export covers every matching row.
func (rc *RegistrationController) ExportApplicationsController(c *fiber.Ctx) error {
	filters := make(map[string]string)
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if applicationType := c.Query("application_type"); applicationType != "" {
		filters["application_type"] = applicationType
	}
	if startDate := c.Query("start_date"); startDate != "" {
		filters["start_date"] = startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		filters["end_date"] = endDate
	}

	applications, total, err := rc.ReaderRepo.GetFilteredApplications(filters, false, 0, 0)
	if err != nil {
		config.Logger.Error("Failed to fetch applications for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch applications",
			"error":   err.Error(),
		})
	}

	headers := []string{
		"ApplicationNumber", "ApplicationType", "Status", "ApplicantName",
		"ApplicantEmail", "SubmissionDate", "ProcessingDate", "DisapprovalReason",
	}

	rows := make([][]interface{}, 0, len(applications))
	for _, application := range applications {
		processingDate := ""
		if application.ProcessingDate != nil {
			processingDate = application.ProcessingDate.Format(time.RFC3339)
		}
		disapprovalReason := ""
		if application.DisapprovalReason != nil {
			disapprovalReason = *application.DisapprovalReason
		}
		rows = append(rows, []interface{}{
			application.ApplicationNumber,
			string(application.ApplicationType),
			string(application.Status),
			application.Applicant.GetFullName(),
			application.Applicant.UserEmail,
			application.SubmissionDate.Format(time.RFC3339),
			processingDate,
			disapprovalReason,
		})
	}

	filePath, err := utils.GenerateExcel("Applications_Report", headers, rows)
	if err != nil {
		config.Logger.Error("Failed to generate applications report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to generate report",
			"error":   err.Error(),
		})
	}

	config.Logger.Info("Applications report generated",
		zap.Int64("total", total),
		zap.String("filePath", filePath))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Report generated successfully",
		"data": fiber.Map{
			"file_url": utils.GetDownloadURL(c, filePath),
			"total":    total,
		},
	})
}
