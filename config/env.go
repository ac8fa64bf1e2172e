package config

import "os"

// GetEnv reads an environment variable. Values come from the process
// environment after godotenv has loaded .env at startup.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault reads an environment variable, falling back to def and
// logging a warning when it is unset.
func GetEnvOrDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		if Logger != nil {
			Logger.Warn(key + " not set, using default: " + def)
		}
		return def
	}
	return value
}
