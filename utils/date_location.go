package utils

import (
	"os"
	"time"
)

// DateLocation is the application's timezone. All token and processing
// timestamps are interpreted in it.
var DateLocation *time.Location

// InitializeDateLocation loads the timezone named by APP_TIMEZONE,
// defaulting to Asia/Manila.
func InitializeDateLocation() error {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		name = "Asia/Manila"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	DateLocation = loc
	return nil
}
