package controllers

import (
	"context"
	bleve_repositories "voter-registration-backend/bleve/repositories"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/officers/repositories"
	registration_controllers "voter-registration-backend/registrations/controllers"
	"voter-registration-backend/tasks"
	"voter-registration-backend/token"
	"voter-registration-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OfficerController struct {
	OfficerRepo repositories.OfficerRepository
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client
	AsynqClient *asynq.Client
	WsHub       *websocket.Hub
	BleveRepo   bleve_repositories.BleveRepositoryInterface
	DB          *gorm.DB
}

// resolveOfficer maps the authenticated token payload back to the officer
// row. Returns nil when the payload is missing or no active officer matches.
func (oc *OfficerController) resolveOfficer(c *fiber.Ctx) *models.Officer {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok || payload == nil {
		return nil
	}

	officer, err := oc.OfficerRepo.GetByEmail(payload.Email)
	if err != nil {
		config.Logger.Warn("Could not resolve acting officer",
			zap.String("email", payload.Email),
			zap.Error(err))
		return nil
	}
	return officer
}

// afterStatusChange fans a successful status write out to the side channels:
// the cached read view is invalidated, dashboard clients get a websocket
// event, and the applicant notification email is queued. All three are best
// effort.
func (oc *OfficerController) afterStatusChange(c *fiber.Ctx, applicationNumber, newStatus, disapprovalReason string) {
	if oc.RedisClient != nil {
		cacheKey := registration_controllers.ApplicationCacheKey(applicationNumber)
		if err := oc.RedisClient.Del(c.Context(), cacheKey).Err(); err != nil {
			config.Logger.Warn("Failed to invalidate application cache",
				zap.String("key", cacheKey),
				zap.Error(err))
		}
	}

	if oc.WsHub != nil {
		oc.WsHub.BroadcastStatusChange(applicationNumber, newStatus)
	}

	if oc.AsynqClient != nil {
		task, err := tasks.NewStatusNotificationTask(applicationNumber, newStatus, disapprovalReason)
		if err == nil {
			_, err = oc.AsynqClient.Enqueue(task)
		}
		if err != nil {
			config.Logger.Warn("Failed to enqueue status notification",
				zap.String("applicationNumber", applicationNumber),
				zap.Error(err))
		}
	}
}
