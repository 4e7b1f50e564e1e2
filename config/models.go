package config

import (
	"net"
	"strconv"
	"time"
)

// UpstreamConfig describes the generation API endpoint.
type UpstreamConfig struct {
	APIRoot string        `mapstructure:"api_root"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GenerationConfig holds the sampling parameters sent with every request.
type GenerationConfig struct {
	Temperature     float32 `mapstructure:"temperature"`
	TopK            int     `mapstructure:"top_k"`
	TopP            float32 `mapstructure:"top_p"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
}

// Config holds the application configuration. It is built once at startup
// and never mutated afterwards.
type Config struct {
	Host           string           `mapstructure:"host"`
	Port           int              `mapstructure:"port"`
	GeminiAPIKey   string           `mapstructure:"gemini_api_key"`
	StaticDir      string           `mapstructure:"static_dir"`
	IndexFile      string           `mapstructure:"index_file"`
	MaxBodyBytes   int64            `mapstructure:"max_body_bytes"`
	AllowedOrigins []string         `mapstructure:"allowed_origins"`
	SystemPrompt   string           `mapstructure:"system_prompt"`
	LogFile        string           `mapstructure:"log_file"`
	StatsSchedule  string           `mapstructure:"stats_schedule"`
	Upstream       UpstreamConfig   `mapstructure:"upstream"`
	Generation     GenerationConfig `mapstructure:"generation"`
}

// ListenAddress is the host:port the HTTP server binds to.
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// HasAPIKey reports whether the upstream API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.GeminiAPIKey != ""
}
