package providers

import (
	"fmt"
	"gemscout/internal/structures"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
	"time"
)

func setConfigDefaults() {
	viper.SetDefault("cache.ttl", 10*time.Minute)
	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("store.ttl", 24*time.Hour)
	viper.SetDefault("source.country", "us")
	viper.SetDefault("source.lang", "en")
	viper.SetDefault("source.rps", 5)
	viper.SetDefault("source.maxRetries", 2)
	viper.SetDefault("source.timeout", 20*time.Second)
	viper.SetDefault("scan.defaultCategory", "APPLICATION")
	viper.SetDefault("scan.enrichBatch", 20)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	_ = godotenv.Load(".env.local", ".env")

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")
	setConfigDefaults()

	viper.BindEnv("logger.level", "GEMSCOUT_LOG_LEVEL")
	viper.BindEnv("store.driver", "GEMSCOUT_STORE_DRIVER")
	viper.BindEnv("store.dsn", "GEMSCOUT_STORE_DSN")
	viper.BindEnv("source.baseURL", "GEMSCOUT_SOURCE_URL")
	viper.BindEnv("cache.enabled", "GEMSCOUT_CACHE_ENABLED")
	viper.BindEnv("cache.size", "GEMSCOUT_CACHE_SIZE")
	viper.BindEnv("metrics.enabled", "GEMSCOUT_METRICS_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "GemScout"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
