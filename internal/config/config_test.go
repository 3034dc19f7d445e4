package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
app:
  name: "zhen-bot"
  version: "1.0.0"
  environment: "test"

server:
  address: ":9090"

auth:
  jwtSecret: "test-secret"

llm:
  provider: "gemini"
  gemini:
    apiKey: "key"
    model: "gemini-2.0-flash"

logger:
  level: "debug"

databases:
  redis:
    address: "localhost:6379"
    db: 1
  mongodb:
    address: "mongodb://localhost:27017"
    database: "zhen_bot"
  kafka:
    enabled: true
    brokers:
      - "localhost:9092"
    topics:
      - "profile_audit"

storage:
  backend: "mongo"

rateLimiter:
  enabled: true
  algorithm: "leaky_bucket"
  rate: 5
  capacity: 10

circuitBreaker:
  enabled: true
  failureThreshold: 3
  successThreshold: 1
  timeout: "15s"
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Name != "zhen-bot" {
		t.Errorf("unexpected app name: %q", cfg.App.Name)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("unexpected server address: %q", cfg.Server.Address)
	}
	if cfg.Auth.JwtSecret != "test-secret" {
		t.Errorf("unexpected jwt secret: %q", cfg.Auth.JwtSecret)
	}
	if cfg.LLM.Provider != "gemini" || cfg.LLM.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("unexpected logger level: %q", cfg.Logger.Level)
	}
	if cfg.Databases.Redis.Address != "localhost:6379" || cfg.Databases.Redis.DB != 1 {
		t.Errorf("unexpected redis config: %+v", cfg.Databases.Redis)
	}
	// The mongo section lives under the "mongodb" key.
	if cfg.Databases.MongoDB.Address != "mongodb://localhost:27017" {
		t.Errorf("unexpected mongodb address: %q", cfg.Databases.MongoDB.Address)
	}
	if cfg.Databases.MongoDB.Database != "zhen_bot" {
		t.Errorf("unexpected mongodb database: %q", cfg.Databases.MongoDB.Database)
	}
	if !cfg.Databases.Kafka.Enabled || len(cfg.Databases.Kafka.Brokers) != 1 {
		t.Errorf("unexpected kafka config: %+v", cfg.Databases.Kafka)
	}
	if cfg.Storage.Backend != "mongo" {
		t.Errorf("unexpected storage backend: %q", cfg.Storage.Backend)
	}
	if cfg.RateLimiter.Algorithm != "leaky_bucket" || cfg.RateLimiter.Capacity != 10 {
		t.Errorf("unexpected rate limiter config: %+v", cfg.RateLimiter)
	}
	if !cfg.CircuitBreaker.Enabled || cfg.CircuitBreaker.FailureThreshold != 3 {
		t.Errorf("unexpected circuit breaker config: %+v", cfg.CircuitBreaker)
	}
	if cfg.CircuitBreaker.Timeout != "15s" {
		t.Errorf("unexpected circuit breaker timeout: %q", cfg.CircuitBreaker.Timeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	if _, err := LoadConfig(writeTempConfig(t, "app: [not: closed")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
