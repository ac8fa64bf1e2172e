package controllers

import (
	"encoding/json"
	"time"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const applicationCacheTTL = 5 * time.Minute

func ApplicationCacheKey(applicationNumber string) string {
	return "application:" + applicationNumber
}

// GetApplicationController returns the flattened submission view for one
// application, addressed by its public application number. Responses are
// cached in Redis; officer-side writes invalidate the key.
func (rc *RegistrationController) GetApplicationController(c *fiber.Ctx) error {
	applicationNumber := c.Params("application_number")
	if applicationNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Application number is required",
		})
	}

	cacheKey := ApplicationCacheKey(applicationNumber)
	if rc.RedisClient != nil {
		cached, err := rc.RedisClient.Get(c.Context(), cacheKey).Result()
		if err == nil {
			var flattened map[string]interface{}
			if err := json.Unmarshal([]byte(cached), &flattened); err == nil {
				return c.Status(fiber.StatusOK).JSON(fiber.Map{
					"success": true,
					"message": "Application fetched successfully",
					"data":    flattened,
				})
			}
		} else if err != redis.Nil {
			config.Logger.Warn("Redis lookup failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	flattened, err := rc.ReaderRepo.GetByApplicationNumber(applicationNumber)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Application not found",
				"error":   err.Error(),
			})
		}
		config.Logger.Error("Failed to fetch application",
			zap.String("applicationNumber", applicationNumber),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch application",
			"error":   err.Error(),
		})
	}

	if rc.RedisClient != nil {
		if payload, err := json.Marshal(flattened); err == nil {
			if err := rc.RedisClient.Set(c.Context(), cacheKey, payload, applicationCacheTTL).Err(); err != nil {
				config.Logger.Warn("Failed to cache application", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Application fetched successfully",
		"data":    flattened,
	})
}
