package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the only persisted config file schema.
type Config struct {
	Agent  AgentConfig `toml:"agent"`
	UI     UIConfig    `toml:"ui"`
	Log    LogConfig   `toml:"log"`
	Source string      `toml:"-"`
}

// AgentConfig locates the external agent runtime.
type AgentConfig struct {
	// URL of the agent gateway (OpenAI-compatible, or Anthropic when
	// Provider is "anthropic").
	URL      string `toml:"url"`
	Token    string `toml:"token"`
	Model    string `toml:"model"`
	Provider string `toml:"provider"` // openai|anthropic|echo
	// Spawn, when set, is a command line reportchat runs to start the
	// agent process itself before connecting.
	Spawn string `toml:"spawn"`
}

// UIConfig carries the presentation context handed to every render.
type UIConfig struct {
	Accent string `toml:"accent"`
}

type LogConfig struct {
	Path string `toml:"path"`
}

func Default() Config {
	return Config{
		Agent: AgentConfig{Provider: "openai"},
		UI:    UIConfig{Accent: "#7D56F4"},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".reportchat", "config.toml")
}

// Load reads path (or the default path) and applies environment overrides.
// A missing file is not an error: env vars alone can configure the client.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return errors.New("config path is empty and $HOME is not set")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func applyEnv(cfg *Config) {
	if env := strings.TrimSpace(os.Getenv("REPORTCHAT_BASE_URL")); env != "" {
		cfg.Agent.URL = env
	}
	if env := strings.TrimSpace(os.Getenv("REPORTCHAT_TOKEN")); env != "" {
		cfg.Agent.Token = env
	}
	if env := strings.TrimSpace(os.Getenv("REPORTCHAT_MODEL")); env != "" {
		cfg.Agent.Model = env
	}
	if env := strings.TrimSpace(os.Getenv("REPORTCHAT_PROVIDER")); env != "" {
		cfg.Agent.Provider = env
	}
	if env := strings.TrimSpace(os.Getenv("REPORTCHAT_ACCENT")); env != "" {
		cfg.UI.Accent = env
	}
}
