package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"lockin/prompt"
)

const envPrefix = "LOCKIN"

// LoadDotEnv loads variables from a dotenv file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading env file: %w", err)
	}
	return nil
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// and the environment. A missing API key is allowed; callers report it.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("host", "")
	v.SetDefault("port", 3000)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("static_dir", "web")
	v.SetDefault("index_file", "lockin-list.html")
	v.SetDefault("max_body_bytes", 100*1024)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("system_prompt", prompt.DefaultInstruction)
	v.SetDefault("log_file", "")
	v.SetDefault("stats_schedule", "@every 1m")
	v.SetDefault("upstream.api_root", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("upstream.model", "gemini-2.0-flash-exp")
	v.SetDefault("upstream.timeout", 60*time.Second)
	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("generation.top_k", 40)
	v.SetDefault("generation.top_p", 0.95)
	v.SetDefault("generation.max_output_tokens", 1024)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// These two keep their conventional unprefixed names.
	if err := v.BindEnv("port", "PORT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("gemini_api_key", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&configuration); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func validate(c *Config) error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be positive")
	}
	if c.Upstream.APIRoot == "" {
		return errors.New("upstream.api_root is required")
	}
	if c.Upstream.Model == "" {
		return errors.New("upstream.model is required")
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream.timeout must be positive")
	}
	if strings.TrimSpace(c.SystemPrompt) == "" {
		return errors.New("system_prompt must not be empty")
	}
	return nil
}
