package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvBool parses the variable with strconv.ParseBool, returning fallback when unset or malformed.
// A malformed value is logged.
func GetenvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		warnMalformedEnv(key, value, "a boolean", fallback)
		return fallback
	}
	return b
}

// GetenvInt64 parses the variable as a base-10 integer, returning fallback when unset or malformed.
// A malformed value is logged.
func GetenvInt64(key string, fallback int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	n, err := StrToInt64(value)
	if err != nil {
		warnMalformedEnv(key, value, "an integer", fallback)
		return fallback
	}
	return n
}

// GetenvDuration parses values like "72h" or "30m".
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		warnMalformedEnv(key, value, "a duration", fallback)
		return fallback
	}
	return d
}

func warnMalformedEnv(key, value, want string, fallback interface{}) {
	LogWarn("Ignoring malformed environment variable", map[string]interface{}{
		"key":      key,
		"value":    value,
		"expected": want,
		"fallback": fmt.Sprint(fallback),
	})
}
