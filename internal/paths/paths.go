package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigName is the config file condactl looks for in the working
// directory when --config is not given.
const DefaultConfigName = "condactl.yaml"

// ResolveConfig determines the configuration file path using the optional
// --config flag or the current working directory when the flag is empty.
func ResolveConfig(configFlag string) (string, error) {
	if configFlag != "" {
		abs, err := filepath.Abs(configFlag)
		if err != nil {
			return "", fmt.Errorf("resolve config path: %w", err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return filepath.Join(cwd, DefaultConfigName), nil
}

// ResolveRelative anchors a relative path at the directory containing the
// config file so manifest paths behave the same regardless of where condactl
// is invoked from.
func ResolveRelative(configPath, value string) string {
	if value == "" {
		return ""
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(filepath.Dir(configPath), value)
}

// GlobalDir returns the user-level condactl directory (~/.condactl).
// It creates the directory if it does not exist.
func GlobalDir() (string, error) {
	if override, ok := os.LookupEnv("CONDACTL_DIR"); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve CONDACTL_DIR: %w", err)
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return "", fmt.Errorf("create condactl dir: %w", err)
		}
		return abs, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	dir := filepath.Join(home, ".condactl")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create condactl dir: %w", err)
	}
	return dir, nil
}

// GlobalLogsDir returns the global logs directory (~/.condactl/logs).
// It creates the directory if it does not exist.
func GlobalLogsDir() (string, error) {
	global, err := GlobalDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(global, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global logs dir: %w", err)
	}
	return dir, nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
