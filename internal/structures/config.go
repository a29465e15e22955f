package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}

// Pattern is the ServeMux pattern, e.g. "GET /app/{appId}".
func (r Route) Pattern() string {
	return r.Method + " " + r.Url
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StoreConfig selects the persistent cache backend. Driver "file" keeps
// entries in memory and snapshots them to Persistence.FilePath.
type StoreConfig struct {
	Driver string        `yaml:"driver" validate:"required|in:sqlite,postgres,file"`
	DSN    string        `yaml:"dsn"`
	TTL    time.Duration `yaml:"ttl"`
}

type SourceConfig struct {
	BaseURL    string        `yaml:"baseURL" validate:"required|fullUrl"`
	Country    string        `yaml:"country" validate:"required"`
	Lang       string        `yaml:"lang" validate:"required"`
	UserAgent  string        `yaml:"userAgent"`
	RPS        int           `yaml:"rps" validate:"required|min:1"`
	MaxRetries int           `yaml:"maxRetries" validate:"min:0"`
	Timeout    time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type ScanConfig struct {
	DefaultCategory string        `yaml:"defaultCategory"`
	EnrichBatch     int           `yaml:"enrichBatch"`
	GemCategories   []string      `yaml:"gemCategories"`
	WarmupInterval  time.Duration `yaml:"warmupInterval"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Store       StoreConfig   `yaml:"store"`
	Source      SourceConfig  `yaml:"source"`
	Scan        ScanConfig    `yaml:"scan"`
}
