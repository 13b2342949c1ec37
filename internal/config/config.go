// Package config loads service settings from defaults, an optional YAML file
// and the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/ZanzyTHEbar/mbti-decision-sim/internal/errors"
)

// Config is the resolved service configuration
type Config struct {
	Port            string
	DataDir         string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTL        time.Duration
	CacheSize       int
	RateLimitPerMin int
	AllowedOrigins  []string
	LogLevel        string
	EnableHSTS      bool
	HistoryEnabled  bool
}

var defaults = map[string]any{
	"port":               "8080",
	"data_dir":           "./data",
	"redis_addr":         "",
	"redis_password":     "",
	"redis_db":           0,
	"cache_ttl":          "5m",
	"cache_size":         1024,
	"rate_limit_per_min": 60,
	"allowed_origins":    "http://localhost:3000,http://localhost:5173",
	"log_level":          "info",
	"enable_hsts":        false,
	"history_enabled":    true,
}

// Load resolves the configuration. CONFIG_FILE, when set, names a YAML file
// whose values sit between the defaults and the environment.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	for key := range defaults {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, apperrors.NewConfigurationError("bind "+key, err)
		}
	}

	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return nil, apperrors.NewConfigurationError("bind config_file", err)
	}
	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.NewConfigurationError("read config file "+file, err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("port"),
		DataDir:         strings.TrimSpace(v.GetString("data_dir")),
		RedisAddr:       v.GetString("redis_addr"),
		RedisPassword:   v.GetString("redis_password"),
		RedisDB:         v.GetInt("redis_db"),
		CacheTTL:        v.GetDuration("cache_ttl"),
		CacheSize:       v.GetInt("cache_size"),
		RateLimitPerMin: v.GetInt("rate_limit_per_min"),
		AllowedOrigins:  splitList(v.Get("allowed_origins")),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		EnableHSTS:      v.GetBool("enable_hsts"),
		HistoryEnabled:  v.GetBool("history_enabled"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	problems := map[string]string{}

	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		problems["port"] = fmt.Sprintf("invalid port %q", c.Port)
	}
	if c.DataDir == "" && c.HistoryEnabled {
		problems["data_dir"] = "required when history is enabled"
	}
	if c.RedisDB < 0 {
		problems["redis_db"] = "must not be negative"
	}
	if c.CacheTTL <= 0 {
		problems["cache_ttl"] = "must be positive"
	}
	if c.CacheSize <= 0 {
		problems["cache_size"] = "must be positive"
	}
	if c.RateLimitPerMin <= 0 {
		problems["rate_limit_per_min"] = "must be positive"
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems["log_level"] = fmt.Sprintf("unknown level %q", c.LogLevel)
	}

	if len(problems) == 0 {
		return nil
	}

	parts := make([]string, 0, len(problems))
	for k, msg := range problems {
		parts = append(parts, k+": "+msg)
	}
	sort.Strings(parts)
	return apperrors.NewConfigurationError(strings.Join(parts, "; "), nil)
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// splitList accepts either a YAML list or a comma separated string
func splitList(raw any) []string {
	var items []string
	switch v := raw.(type) {
	case []string:
		items = v
	case []any:
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
	case string:
		items = strings.Split(v, ",")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
