package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config reads a variable from .env or the process environment.
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Print("Error loading .env file")
	}
	return os.Getenv(key)
}

// ConfigDefault reads a variable and falls back to def when unset.
func ConfigDefault(key, def string) string {
	value := Config(key)
	if value == "" {
		return def
	}
	return value
}
