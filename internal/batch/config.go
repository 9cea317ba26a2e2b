package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds optional defaults for both tools.
type Config struct {
	Out  string     `yaml:"out"`
	Push PushConfig `yaml:"push"`
}

// PushConfig describes the cluster head node the push stage uploads to.
type PushConfig struct {
	User       string `yaml:"user"`
	Port       int    `yaml:"port"`
	RemoteDir  string `yaml:"remote_dir"`
	KeyPath    string `yaml:"key_path"`
	KnownHosts string `yaml:"known_hosts"`
	Retries    int    `yaml:"retries"`
}

// LoadConfig reads YAML configuration from a path. If path is empty, it
// resolves $XDG_CONFIG_HOME/orcabatch/config.yaml or
// ~/.config/orcabatch/config.yaml. A missing file is not an error; defaults
// are returned.
func LoadConfig(path string) (Config, error) {
	cfg := Config{Push: PushConfig{Port: 22, Retries: 2}}
	if path == "" {
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
		path = filepath.Join(base, "orcabatch", "config.yaml")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Push.Port == 0 {
		cfg.Push.Port = 22
	}
	return cfg, nil
}
