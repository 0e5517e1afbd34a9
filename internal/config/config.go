package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

var (
	ErrMissingSecretKey = errors.New("RC_SECRET_API_KEY is required in environment variables")
	ErrMissingProjectID = errors.New("RC_PROJECT_ID is required in environment variables")
)

// ---- Root ----

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Log      LogConfig      `mapstructure:"log"`
	Console  ConsoleConfig  `mapstructure:"console"`
}

// ---- Leaf structs ----

type HTTPConfig struct {
	Addr      string `mapstructure:"addr"` // overrides port when set
	Port      int    `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"`
}

// ListenAddr returns the address the proxy binds to.
func (h HTTPConfig) ListenAddr() string {
	if h.Addr != "" {
		return h.Addr
	}
	return fmt.Sprintf(":%d", h.Port)
}

type UpstreamConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	SecretAPIKey string        `mapstructure:"secret_api_key"`
	ProjectID    string        `mapstructure:"project_id"`
	Timeout      time.Duration `mapstructure:"timeout"` // 0 = transport default
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type ConsoleConfig struct {
	ServerURL string        `mapstructure:"server_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// envAliases keeps the variable names operators already use for this proxy.
var envAliases = map[string][]string{
	"http.port":               {"RCADMIN_HTTP_PORT", "PORT"},
	"upstream.base_url":       {"RCADMIN_UPSTREAM_BASE_URL", "RC_API_BASE_URL"},
	"upstream.secret_api_key": {"RCADMIN_UPSTREAM_SECRET_API_KEY", "RC_SECRET_API_KEY"},
	"upstream.project_id":     {"RCADMIN_UPSTREAM_PROJECT_ID", "RC_PROJECT_ID"},
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (RCADMIN_* plus the RC_* aliases).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("merge %s: %w", path, err)
			}
		}
	}

	// env override (RCADMIN_*)
	v.SetEnvPrefix("RCADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg.Upstream.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Upstream.BaseURL), "/")
	return cfg, nil
}

// Validate enforces the startup contract of the proxy: the secret key and the project id must be present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Upstream.SecretAPIKey) == "" {
		return ErrMissingSecretKey
	}
	if strings.TrimSpace(c.Upstream.ProjectID) == "" {
		return ErrMissingProjectID
	}
	return nil
}
