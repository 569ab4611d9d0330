package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	ServerPort   int
	RemoteAPIURL string
	RedisAddr    string

	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
}

// Load reads configuration from the environment, optionally seeded
// from a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	remote := os.Getenv("RONIN_API_URL")
	if remote == "" {
		return nil, fmt.Errorf("RONIN_API_URL environment variable is not set")
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	issuer := os.Getenv("OIDC_ISSUER")
	if issuer == "" {
		issuer = "https://accounts.google.com"
	}
	redirect := os.Getenv("OIDC_REDIRECT_URL")
	if redirect == "" {
		redirect = "http://localhost:8080/auth/google/callback"
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}

	return &Config{
		ServerPort:       port,
		RemoteAPIURL:     remote,
		RedisAddr:        net.JoinHostPort(redisHost, redisPort),
		OIDCIssuer:       issuer,
		OIDCClientID:     clientID,
		OIDCClientSecret: clientSecret,
		OIDCRedirectURL:  redirect,
	}, nil
}
