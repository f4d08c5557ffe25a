package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Portal configures the portal client. One base URL serves every resource.
type Portal struct {
	BaseURL     string        `yaml:"baseUrl"`
	SessionFile string        `yaml:"sessionFile"`
	Timeout     time.Duration `yaml:"timeout"`
}

func DefaultPortal() Portal {
	sessionFile := ".idms-session.json"
	if home, err := os.UserHomeDir(); err == nil {
		sessionFile = filepath.Join(home, ".idms", "session.json")
	}
	return Portal{
		BaseURL:     "http://localhost:8080",
		SessionFile: sessionFile,
	}
}

// LoadPortal reads path when it exists, then applies IDMS_API_URL and
// IDMS_SESSION_FILE overrides.
func LoadPortal(path string) (Portal, error) {
	cfg := DefaultPortal()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Portal{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Portal{}, err
		}
	}
	cfg.BaseURL = getEnv("IDMS_API_URL", cfg.BaseURL)
	cfg.SessionFile = getEnv("IDMS_SESSION_FILE", cfg.SessionFile)
	return cfg, cfg.Validate()
}

func (p Portal) Validate() error {
	if !strings.HasPrefix(p.BaseURL, "http://") && !strings.HasPrefix(p.BaseURL, "https://") {
		return fmt.Errorf("baseUrl must be an http(s) URL, got %q", p.BaseURL)
	}
	if strings.TrimSpace(p.SessionFile) == "" {
		return fmt.Errorf("sessionFile is required")
	}
	if p.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
