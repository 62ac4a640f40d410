// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
	"time"
)

const appName = "telaffuz"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultSentencesPath returns where a user sentence list is looked up.
func DefaultSentencesPath() string {
	return filepath.Join(XDGConfigHome(), appName, "sentences.txt")
}

// DefaultModelPath returns the default speech model directory.
func DefaultModelPath() string {
	return filepath.Join(XDGDataHome(), appName, "models", "vosk-model-small-tr-0.3")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultRecordingsDir returns the directory practice takes are saved to.
func DefaultRecordingsDir() string {
	return filepath.Join(XDGDataHome(), appName, "recordings")
}

// RecordingPath returns a timestamped WAV path inside DefaultRecordingsDir.
func RecordingPath(at time.Time) string {
	return filepath.Join(DefaultRecordingsDir(), "take_"+at.Format("20060102_150405")+".wav")
}
