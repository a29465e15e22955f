package providers

import (
	"gemscout/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/gemscout.dat",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Store: structures.StoreConfig{
			Driver: "sqlite",
			TTL:    24 * time.Hour,
		},
		Source: structures.SourceConfig{
			BaseURL: "http://localhost:3000",
			Country: "us",
			Lang:    "en",
			RPS:     5,
			Timeout: 10 * time.Second,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownStoreDriver(t *testing.T) {
	c := validConfig()
	c.Store.Driver = "mongo"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_PostgresNeedsDSN(t *testing.T) {
	c := validConfig()
	c.Store.Driver = "postgres"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())

	c.Store.DSN = "postgres://gemscout@localhost:5432/gemscout"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_MissingSourceURL(t *testing.T) {
	c := validConfig()
	c.Source.BaseURL = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
