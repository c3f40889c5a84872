package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "bomberman.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.bomber/configs/bomberman.yaml -> ./configs/bomberman.yaml -> embedded default.
// Files only need to set the values they change; everything else keeps its default.
// The returned path is the file that was used, or empty for the embedded default.
func Load(customPath string) (BombermanConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return cfg, "", err
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if cfg, err := LoadFile(path); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultBombermanConfig()
	if err := yaml.Unmarshal(defaultBombermanYAML, &cfg); err != nil {
		return DefaultBombermanConfig(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

// LoadFile reads and validates a single config file layered over the defaults.
func LoadFile(path string) (BombermanConfig, error) {
	cfg := DefaultBombermanConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders a config as YAML (used by `bomber config`).
func Marshal(cfg BombermanConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bomber", "configs", filename)
}

// UserPath returns ~/.bomber/configs/bomberman.yaml, or empty if home is unavailable.
func UserPath() string {
	return userConfigPath(FileName)
}
