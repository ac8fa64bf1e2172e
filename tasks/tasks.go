package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeStatusNotification = "email:status_notification"

// StatusNotificationPayload carries enough to look the application back up;
// the handler fetches the applicant's current email at delivery time.
type StatusNotificationPayload struct {
	ApplicationNumber string `json:"application_number"`
	NewStatus         string `json:"new_status"`
	DisapprovalReason string `json:"disapproval_reason,omitempty"`
}

func NewStatusNotificationTask(applicationNumber, newStatus, disapprovalReason string) (*asynq.Task, error) {
	payload, err := json.Marshal(StatusNotificationPayload{
		ApplicationNumber: applicationNumber,
		NewStatus:         newStatus,
		DisapprovalReason: disapprovalReason,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStatusNotification, payload, asynq.MaxRetry(3)), nil
}
