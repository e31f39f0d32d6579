package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/dkeye/ctinotify/internal/codec"
)

// DefaultAutheExpiration replaces a non-positive authe.expiration.
const DefaultAutheExpiration = time.Hour

const (
	FramingRead = "read"
	FramingLine = "line"
)

type Config struct {
	Mode         string `mapstructure:"mode"`
	Port         int    `mapstructure:"port"`
	LogLevel     string `mapstructure:"log_level"`
	SlowConsumer string `mapstructure:"slow_consumer"`

	TCP          TCPConfig                `mapstructure:"tcp"`
	WS           WSConfig                 `mapstructure:"ws"`
	Notification NotificationConfig       `mapstructure:"notification"`
	Commands     map[string]codec.Command `mapstructure:"commands"`
	Authe        AutheConfig              `mapstructure:"authe"`
	Directory    DirectoryConfig          `mapstructure:"directory"`
	PBX          PBXConfig                `mapstructure:"pbx"`
	LoginLimit   LoginLimitConfig         `mapstructure:"login_limit"`
}

type TCPConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Port         int           `mapstructure:"port"`
	Framing      string        `mapstructure:"framing"`
	SendBuffer   int           `mapstructure:"send_buffer"`
	ReadBuffer   int           `mapstructure:"read_buffer"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type WSConfig struct {
	SendBuffer int           `mapstructure:"send_buffer"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
}

type PopupConfig struct {
	Template string `mapstructure:"template"`
	Width    int    `mapstructure:"width"`
	Height   int    `mapstructure:"height"`
}

type NotificationConfig struct {
	Scheme       string      `mapstructure:"scheme"`
	Host         string      `mapstructure:"host"`
	CloseTimeout int         `mapstructure:"close_timeout"`
	Call         PopupConfig `mapstructure:"call"`
	Streaming    PopupConfig `mapstructure:"streaming"`
}

type AutheConfig struct {
	Expiration time.Duration `mapstructure:"expiration"`
	Secret     string        `mapstructure:"secret"`
}

type DirectoryConfig struct {
	File string `mapstructure:"file"`
}

type PBXConfig struct {
	Secret string `mapstructure:"secret"`
	Buffer int    `mapstructure:"buffer"`
}

type LoginLimitConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Interval time.Duration `mapstructure:"interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("slow_consumer", "drop")

	v.SetDefault("tcp.enabled", true)
	v.SetDefault("tcp.port", 8182)
	v.SetDefault("tcp.framing", FramingRead)
	v.SetDefault("tcp.send_buffer", 32)
	v.SetDefault("tcp.read_buffer", 65536)
	v.SetDefault("tcp.write_timeout", "5s")

	v.SetDefault("ws.send_buffer", 32)
	v.SetDefault("ws.read_limit", 32768)
	v.SetDefault("ws.ping_period", "54s")

	v.SetDefault("notification.scheme", "https")
	v.SetDefault("notification.host", "localhost")
	v.SetDefault("notification.close_timeout", 10)
	v.SetDefault("notification.call.width", 400)
	v.SetDefault("notification.call.height", 200)
	v.SetDefault("notification.streaming.width", 400)
	v.SetDefault("notification.streaming.height", 400)

	v.SetDefault("authe.expiration", DefaultAutheExpiration)
	v.SetDefault("directory.file", "config/directory.yaml")
	v.SetDefault("pbx.buffer", 64)
	v.SetDefault("login_limit.attempts", 20)
	v.SetDefault("login_limit.interval", "1m")
}

// Load reads path, or config/config.<CONFIG_ENV>.yaml when path is empty.
// A missing file is not an error: defaults and CTI_* environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		path = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("CTI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", path).Err(err).Msg("config file not loaded, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", path).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Authe.Expiration <= 0 {
		log.Warn().Str("module", "config").Dur("expiration", cfg.Authe.Expiration).Dur("fallback", DefaultAutheExpiration).Msg("authe.expiration must be positive, using default")
		cfg.Authe.Expiration = DefaultAutheExpiration
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Int("tcp_port", cfg.TCP.Port).Msg("config ready")
	return &cfg, nil
}

var (
	ErrMissingTCPPort           = errors.New("tcp.port is not set")
	ErrMissingCallTemplate      = errors.New("notification.call.template is not set")
	ErrMissingStreamingTemplate = errors.New("notification.streaming.template is not set")
	ErrBadFraming               = errors.New("tcp.framing must be read or line")
)

// ValidateTCP reports every setting the TCP notification server needs but lacks.
func (c *Config) ValidateTCP() error {
	var errs []error
	if c.TCP.Port <= 0 {
		errs = append(errs, ErrMissingTCPPort)
	}
	if c.Notification.Call.Template == "" {
		errs = append(errs, ErrMissingCallTemplate)
	}
	if c.Notification.Streaming.Template == "" {
		errs = append(errs, ErrMissingStreamingTemplate)
	}
	if c.TCP.Framing != FramingRead && c.TCP.Framing != FramingLine {
		errs = append(errs, ErrBadFraming)
	}
	return errors.Join(errs...)
}
