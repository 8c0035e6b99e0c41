package config

import (
	"fmt"
	"strconv"
)

// ServerConfig holds configuration of the fixture storefront server
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return ServerConfig{}, fmt.Errorf("PORT must be a valid port: %q", port)
	}

	return ServerConfig{
		Port: port,
	}, nil
}
