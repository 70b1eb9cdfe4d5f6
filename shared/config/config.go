package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	defaultPort           = 8080
	defaultMinAspect      = 0.5
	defaultMaxAspect      = 2.0
	defaultLocale         = "en"
	defaultMaxProbeSize   = 10 << 20 // 10 MB
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 10 * time.Second
	defaultWriteRate      = 1.0
	defaultWriteBurst     = 10
	defaultRateLimitTTL   = time.Hour
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	// Clamp range applied to thumbnail aspect ratios when the request does not specify one
	MinAspect float64 `yaml:"min_aspect" validate:"gt=0"`
	MaxAspect float64 `yaml:"max_aspect" validate:"gt=0,gtefield=MinAspect"`

	LocalesPath   string `yaml:"locales_path"`
	DefaultLocale string `yaml:"default_locale"`

	AllowedImageMimeTypes []string `yaml:"allowed_image_mime_types" validate:"required,min=1"`
	MaxProbeSize          int64    `yaml:"max_probe_size"`

	// Per client IP limit on requests that write or decode uploads
	WriteRate    float64       `yaml:"write_rate" validate:"gte=0"` // tokens per second
	WriteBurst   int           `yaml:"write_burst" validate:"gte=0"`
	RateLimitTTL time.Duration `yaml:"rate_limit_ttl"`

	AllowedOrigins []string `yaml:"allowed_origins"`
	SecureHeaders  bool     `yaml:"secure_headers"` // adds HSTS, enable behind https
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

func (p *Public) applyDefaults() {
	if p.Port == 0 {
		p.Port = defaultPort
	}
	if p.ReadTimeout == 0 {
		p.ReadTimeout = defaultReadTimeout
	}
	if p.WriteTimeout == 0 {
		p.WriteTimeout = defaultWriteTimeout
	}
	if p.ShutdownTimeout == 0 {
		p.ShutdownTimeout = defaultShutdownPeriod
	}
	if p.MinAspect == 0 {
		p.MinAspect = defaultMinAspect
	}
	if p.MaxAspect == 0 {
		p.MaxAspect = defaultMaxAspect
	}
	if p.DefaultLocale == "" {
		p.DefaultLocale = defaultLocale
	}
	if p.MaxProbeSize == 0 {
		p.MaxProbeSize = defaultMaxProbeSize
	}
	if p.WriteRate == 0 {
		p.WriteRate = defaultWriteRate
	}
	if p.WriteBurst == 0 {
		p.WriteBurst = defaultWriteBurst
	}
	if p.RateLimitTTL == 0 {
		p.RateLimitTTL = defaultRateLimitTTL
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func mustValidate(v any) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(v); err != nil {
		panic(fmt.Sprintf("invalid config: %s", err))
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()
	mustValidate(&public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	mustValidate(&private)

	return &Config{public, private}
}
