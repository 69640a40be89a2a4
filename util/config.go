package util

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Drolfothesgnir/hintstack/wire"
)

// Sink kinds accepted in SINK.
const (
	SinkRedis = "redis"
	SinkLog   = "log"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Environment        string        `mapstructure:"ENVIRONMENT"`
	HTTPServerAddress  string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	RedisAddress       string        `mapstructure:"REDIS_ADDRESS"`
	RedisChannelPrefix string        `mapstructure:"REDIS_CHANNEL_PREFIX"`
	PayloadTTL         time.Duration `mapstructure:"PAYLOAD_TTL"`
	Sink               string        `mapstructure:"SINK"`
	TickInterval       time.Duration `mapstructure:"TICK_INTERVAL"`
	MaxContentLength   int           `mapstructure:"MAX_CONTENT_LENGTH"`
	HintDuration       time.Duration `mapstructure:"HINT_DURATION"`
	DefaultAspectRatio float64       `mapstructure:"DEFAULT_ASPECT_RATIO"`
	AllowedOrigins     []string      `mapstructure:"ALLOWED_ORIGINS"`
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	// defaults make every key visible to AutomaticEnv even when app.env omits it
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_CHANNEL_PREFIX", "hints:")
	v.SetDefault("PAYLOAD_TTL", "10m")
	v.SetDefault("SINK", SinkRedis)
	v.SetDefault("TICK_INTERVAL", "100ms")
	v.SetDefault("MAX_CONTENT_LENGTH", 16384)
	v.SetDefault("HINT_DURATION", "99999s")
	v.SetDefault("DEFAULT_ASPECT_RATIO", 16.0/9.0)
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	return
}

// Validate reports the first setting the service cannot run with.
func (config *Config) Validate() error {
	switch {
	case config.TickInterval <= 0:
		return fmt.Errorf("%w: TICK_INTERVAL must be positive, got %s", ErrInvalidConfig, config.TickInterval)
	case config.MaxContentLength <= 0 || config.MaxContentLength > wire.MaxStringLength:
		return fmt.Errorf("%w: MAX_CONTENT_LENGTH must be in (0, %d], got %d",
			ErrInvalidConfig, wire.MaxStringLength, config.MaxContentLength)
	case config.HintDuration <= 0:
		return fmt.Errorf("%w: HINT_DURATION must be positive, got %s", ErrInvalidConfig, config.HintDuration)
	case config.DefaultAspectRatio <= 0:
		return fmt.Errorf("%w: DEFAULT_ASPECT_RATIO must be positive, got %v", ErrInvalidConfig, config.DefaultAspectRatio)
	case config.PayloadTTL < 0:
		return fmt.Errorf("%w: PAYLOAD_TTL must not be negative, got %s", ErrInvalidConfig, config.PayloadTTL)
	case config.Sink != SinkRedis && config.Sink != SinkLog:
		return fmt.Errorf("%w: SINK must be %q or %q, got %q", ErrInvalidConfig, SinkRedis, SinkLog, config.Sink)
	}

	if _, _, err := config.ExtractHostPort(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// ExtractHostPort parses the HTTP server address and returns the host and port components.
// The scheme is optional. If no port is specified, port will be an empty string.
func (config *Config) ExtractHostPort() (host string, port string, err error) {
	addr := config.HTTPServerAddress
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		err = fmt.Errorf("error parsing http server url: %w", err)
		return
	}

	host, port = u.Hostname(), u.Port()
	if host == "" {
		err = fmt.Errorf("http server url %q has no host", config.HTTPServerAddress)
	}

	return
}
