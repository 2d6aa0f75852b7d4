package config

import "os"

// Get returns the environment variable value, or fallback when unset or
// empty. Loading .env files is the caller's concern (godotenv in mains).
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
