package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the study server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// LogDriver is the interaction log backend (csv, sqlite or postgres)
	LogDriver string
	// DSN points to where the interaction log is stored. A file path for the
	// csv and sqlite drivers, a connection string for postgres.
	DSN string
	// Version is the current version of server
	Version string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from NUTRISNAP_* environment variables.
// Values already set on the profile (e.g. from flags) take precedence.
func (p *Profile) FromEnv() {
	if p.Mode == "" {
		p.Mode = getEnvOrDefault("NUTRISNAP_MODE", "demo")
	}
	if p.Addr == "" {
		p.Addr = os.Getenv("NUTRISNAP_ADDR")
	}
	if p.Data == "" {
		p.Data = os.Getenv("NUTRISNAP_DATA")
	}
	if p.LogDriver == "" {
		p.LogDriver = getEnvOrDefault("NUTRISNAP_LOG_DRIVER", "csv")
	}
	if p.DSN == "" {
		p.DSN = os.Getenv("NUTRISNAP_DSN")
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Data == "" {
		p.Data = "."
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	switch p.LogDriver {
	case "csv":
		if p.DSN == "" {
			p.DSN = filepath.Join(dataDir, "logs.csv")
		}
	case "sqlite":
		if p.DSN == "" {
			p.DSN = filepath.Join(dataDir, fmt.Sprintf("nutrisnap_%s.db", p.Mode))
		}
	case "postgres":
		if p.DSN == "" {
			return errors.New("postgres log driver requires a DSN")
		}
	default:
		return errors.Errorf("unknown log driver %q", p.LogDriver)
	}

	return nil
}
