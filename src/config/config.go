package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AppDirName       = "text_recognition"
	SettingsFileName = "settings.conf"

	EnvFileEnvVar      = "TEXT_RECOGNITION_ENV"
	SettingsPathEnvVar = "TEXT_RECOGNITION_SETTINGS"
	FileLoggingEnvVar  = "ENABLE_FILE_LOGGING"
)

type LoadOptions struct {
	SettingsPathOverride string
	// FileLoggingOverride forces file logging on when set; it never turns it off.
	FileLoggingOverride bool
}

// Config holds process-level options. The user-editable directories live in
// Settings, not here.
type Config struct {
	SettingsPath      string
	EnableFileLogging bool
	LogDir            string
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Sources in priority order (last wins):
	// 1) process environment
	// 2) .env next to the executable, or the file named by TEXT_RECOGNITION_ENV
	// 3) explicit overrides from command-line flags
	envPath := resolveEnvPath()
	dotenvValues := readDotenvValues(envPath)
	if envPath != "" {
		_ = godotenv.Load(envPath)
	}

	settingsPath, err := resolveSettingsPath(opts, dotenvValues)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SettingsPath:      settingsPath,
		EnableFileLogging: opts.FileLoggingOverride || parseBool(os.Getenv(FileLoggingEnvVar)),
		LogDir:            filepath.Dir(settingsPath),
	}

	return cfg, nil
}

func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvFileEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func readDotenvValues(envPath string) map[string]string {
	if envPath == "" {
		return map[string]string{}
	}

	values, err := godotenv.Read(envPath)
	if err != nil {
		return map[string]string{}
	}

	return values
}

func resolveSettingsPath(opts LoadOptions, dotenvValues map[string]string) (string, error) {
	if overridePath := strings.TrimSpace(opts.SettingsPathOverride); overridePath != "" {
		return overridePath, nil
	}

	// godotenv.Load never overrides variables already present in the process
	// environment, so the .env value is consulted explicitly.
	if dotenvPath := strings.TrimSpace(dotenvValues[SettingsPathEnvVar]); dotenvPath != "" {
		return dotenvPath, nil
	}

	if envPath := strings.TrimSpace(os.Getenv(SettingsPathEnvVar)); envPath != "" {
		return envPath, nil
	}

	return DefaultSettingsPath()
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}
