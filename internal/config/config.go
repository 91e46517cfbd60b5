package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	Providers   map[string]ProviderConfig `json:"providers"`
}

type ProviderConfig struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key"`
}

type BasicConfig struct {
	ServerAddress      string `json:"server_address"`
	UploadDir          string `json:"upload_dir"`
	OutputDir          string `json:"output_dir"`
	Provider           string `json:"provider"`
	MaxConcurrentTurns int    `json:"max_concurrent_turns"`
	GatewayTimeoutSec  int    `json:"gateway_timeout_sec"`
}

// Default returns the configuration used when no config file exists:
// the DeepSeek chat endpoint with the conventional local directories.
func Default() *Config {
	return &Config{
		BasicConfig: BasicConfig{
			ServerAddress:     ":8080",
			UploadDir:         "uploads",
			OutputDir:         "Output",
			Provider:          "deepseek",
			GatewayTimeoutSec: 120,
		},
		Providers: map[string]ProviderConfig{
			"deepseek": {
				BaseURL: "https://api.deepseek.com",
				Model:   "deepseek-chat",
			},
		},
	}
}

// Load reads configuration from the provided path (defaults to
// config.json). A missing file is not an error; defaults apply. API keys
// can always be supplied through <PROVIDER>_API_KEY environment
// variables, which take precedence over file values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = "config.json"
	}

	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}

	applyDefaults(cfg)
	applyEnvKeys(cfg)

	if _, ok := cfg.Providers[cfg.BasicConfig.Provider]; !ok {
		return nil, fmt.Errorf("provider %s not configured", cfg.BasicConfig.Provider)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.BasicConfig.ServerAddress == "" {
		cfg.BasicConfig.ServerAddress = def.BasicConfig.ServerAddress
	}
	if cfg.BasicConfig.UploadDir == "" {
		cfg.BasicConfig.UploadDir = def.BasicConfig.UploadDir
	}
	if cfg.BasicConfig.OutputDir == "" {
		cfg.BasicConfig.OutputDir = def.BasicConfig.OutputDir
	}
	if cfg.BasicConfig.Provider == "" {
		cfg.BasicConfig.Provider = def.BasicConfig.Provider
	}
	if cfg.BasicConfig.GatewayTimeoutSec <= 0 {
		cfg.BasicConfig.GatewayTimeoutSec = def.BasicConfig.GatewayTimeoutSec
	}
	if cfg.Providers == nil {
		cfg.Providers = def.Providers
	}
}

func applyEnvKeys(cfg *Config) {
	for name, prov := range cfg.Providers {
		envKey := strings.ToUpper(name) + "_API_KEY"
		if key := os.Getenv(envKey); key != "" {
			prov.APIKey = key
			cfg.Providers[name] = prov
		}
	}
}
