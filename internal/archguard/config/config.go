package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the configuration for the archguard server.
// It controls scanning, rule thresholds, and persistence settings.
type Config struct {
	ExcludedDirs   []string `json:"excluded_dirs"`   // Directory names skipped during scanning.
	Extensions     []string `json:"extensions"`      // File extensions considered for analysis.
	MaxDepth       int      `json:"max_depth"`       // Maximum directory recursion depth.
	FollowSymlinks bool     `json:"follow_symlinks"` // Whether the scanner descends into symlinked directories.
	MaxFileLines   int      `json:"max_file_lines"`  // Hard ceiling for the file-size rule.
	PolicyFile     string   `json:"policy_file"`     // Dependency-policy document, relative to the root.
	PersistenceDir string   `json:"persistence_dir"` // Directory for the run-history database.
}

// DefaultConfig provides a standard configuration used when no config file is found.
var DefaultConfig = Config{
	ExcludedDirs:   []string{"node_modules", ".git", ".next", "dist", "build", "coverage", "out", "vendor"},
	Extensions:     []string{".ts", ".tsx", ".js", ".jsx"},
	MaxDepth:       12,
	FollowSymlinks: false,
	MaxFileLines:   500,
	PolicyFile:     "dependency-policy.yaml",
	PersistenceDir: ".archguard",
}

// LoadConfig reads and parses the `archguard.json` configuration file from the
// specified root directory. If the file does not exist or cannot be parsed, it
// returns an error. Missing fields fall back to DefaultConfig values.
func LoadConfig(rootDir string) (*Config, error) {
	path := filepath.Join(rootDir, "archguard.json")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults if empty
	if len(cfg.ExcludedDirs) == 0 {
		cfg.ExcludedDirs = DefaultConfig.ExcludedDirs
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultConfig.Extensions
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultConfig.MaxDepth
	}
	if cfg.MaxFileLines == 0 {
		cfg.MaxFileLines = DefaultConfig.MaxFileLines
	}
	if cfg.PolicyFile == "" {
		cfg.PolicyFile = DefaultConfig.PolicyFile
	}
	if cfg.PersistenceDir == "" {
		cfg.PersistenceDir = DefaultConfig.PersistenceDir
	}

	return &cfg, nil
}
