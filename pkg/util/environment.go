package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentVariableOrDefault returns env[key], or fallback when it is unset or blank
func GetEnvironmentVariableOrDefault(env map[string]string, key string, fallback string) string {
	if value := strings.TrimSpace(env[key]); value != "" {
		return value
	}

	return fallback
}
