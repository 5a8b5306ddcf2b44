package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/musdomains/domains/internal/domain/config"
)

const (
	// ProjectFile marks the root of a domains project
	ProjectFile = "domains.toml"
	// DataDirName holds deployments, chain state and local config
	DataDirName = ".domains"
)

// FindProjectRoot walks up from dir to find domains.toml. Without one, dir
// itself is the project root and found is false.
func FindProjectRoot(dir string) (root string, found bool, err error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}

	for current := start; ; {
		if _, err := os.Stat(filepath.Join(current, ProjectFile)); err == nil {
			return current, true, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return start, false, nil
		}
		current = parent
	}
}

// LoadEnv loads .env and .env.local from the project root. Variables already
// set in the environment win.
func LoadEnv(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			slog.Warn("failed to load env file", "file", envFile, "error", err)
		}
	}
}

// LoadProject parses domains.toml at path. ${VAR} references are left for
// network resolution to expand.
func LoadProject(path string) (*config.ProjectConfig, error) {
	var project config.ProjectConfig
	meta, err := toml.DecodeFile(path, &project)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in %s: %s", filepath.Base(path), strings.Join(keys, ", "))
	}

	return &project, nil
}
