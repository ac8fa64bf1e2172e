package controllers

import (
	"voter-registration-backend/config"
	"voter-registration-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginOfficerController authenticates an officer and issues the access and
// refresh token cookies. The refresh token is stored in Redis as single use;
// the middleware rotates it.
func (oc *OfficerController) LoginOfficerController(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing login request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
			"error":   "Invalid request format.",
		})
	}

	officer, err := oc.OfficerRepo.GetByEmail(req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(officer.Password), []byte(req.Password)) != nil {
		if err != nil {
			config.Logger.Warn("Login attempt: officer not found",
				zap.String("email", req.Email),
				zap.Error(err))
		} else {
			config.Logger.Warn("Login attempt: invalid password",
				zap.String("email", req.Email))
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication failed",
			"error":   "Invalid email or password.",
		})
	}

	accessToken, err := oc.PasetoMaker.CreateToken(officer.Email, middleware.AccessTokenDuration)
	if err != nil {
		config.Logger.Error("Could not generate access token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
			"error":   "An internal server error occurred.",
		})
	}

	refreshToken, err := oc.PasetoMaker.CreateToken(officer.Email, middleware.RefreshTokenDuration)
	if err != nil {
		config.Logger.Error("Could not generate refresh token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
			"error":   "An internal server error occurred.",
		})
	}

	if err := oc.RedisClient.Set(oc.Ctx, "refresh_token:"+refreshToken, officer.Email, middleware.RefreshTokenDuration).Err(); err != nil {
		config.Logger.Error("Error storing refresh token in Redis", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong",
			"error":   "An internal server error occurred.",
		})
	}

	middleware.SetAuthCookies(c, accessToken, refreshToken)

	if err := oc.OfficerRepo.UpdateLastLogin(officer.ID); err != nil {
		config.Logger.Warn("Failed to stamp last login",
			zap.String("email", officer.Email),
			zap.Error(err))
	}

	config.Logger.Info("Officer logged in", zap.String("email", officer.Email))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"id":         officer.ID,
			"first_name": officer.FirstName,
			"last_name":  officer.LastName,
			"email":      officer.Email,
			"position":   officer.Position,
		},
	})
}

// LogoutOfficerController drops the refresh token and clears the cookies.
func (oc *OfficerController) LogoutOfficerController(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		if err := oc.RedisClient.Del(oc.Ctx, "refresh_token:"+refreshToken).Err(); err != nil {
			config.Logger.Warn("Error deleting refresh token on logout", zap.Error(err))
		}
	}

	c.ClearCookie("access_token", "refresh_token")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}
