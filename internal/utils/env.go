package utils

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/loqostudio/loqo-backend/internal/logger"
)

// LoadDotEnv loads a .env file if one exists. Missing files are fine;
// real environments set everything through the process environment.
func LoadDotEnv(log *logger.Logger) {
	if err := godotenv.Load(); err != nil {
		if log != nil {
			log.Debug("No .env file loaded", "error", err)
		}
	}
}

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", key)
	}
	valStr, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		if log != nil {
			log.Debug("Environment variable could not be parsed as int, using default", "providedVal", valStr, "defaultVal", defaultVal, "error", err)
		}
		return defaultVal
	}
	return i
}
