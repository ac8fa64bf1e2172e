package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StatusNotificationHandler struct {
	DB *gorm.DB
}

func NewStatusNotificationHandler(db *gorm.DB) *StatusNotificationHandler {
	return &StatusNotificationHandler{DB: db}
}

// ProcessTask emails the applicant about a status change on their
// application. Lookup failures are returned so asynq retries the task.
func (h *StatusNotificationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload StatusNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal status notification payload: %w", err)
	}

	var application models.Application
	err := h.DB.WithContext(ctx).
		Preload("Applicant").
		Where("application_number = ?", payload.ApplicationNumber).
		First(&application).Error
	if err != nil {
		return fmt.Errorf("failed to load application %s: %w", payload.ApplicationNumber, err)
	}

	subject := fmt.Sprintf("Voter Registration Update: %s", payload.ApplicationNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour application %s is now %s.",
		application.Applicant.GetFullName(),
		payload.ApplicationNumber,
		payload.NewStatus,
	)
	if payload.DisapprovalReason != "" {
		body += fmt.Sprintf("\n\nReason: %s", payload.DisapprovalReason)
	}
	body += "\n\nThis is an automated notification; please do not reply."

	if err := utils.SendEmail(application.Applicant.UserEmail, subject, body); err != nil {
		return fmt.Errorf("failed to send status notification: %w", err)
	}

	config.Logger.Info("Status notification sent",
		zap.String("applicationNumber", payload.ApplicationNumber),
		zap.String("newStatus", payload.NewStatus),
		zap.String("email", application.Applicant.UserEmail))
	return nil
}

// NewMux wires the task handlers for the background worker.
func NewMux(db *gorm.DB) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeStatusNotification, NewStatusNotificationHandler(db))
	return mux
}
