package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("BUGG_CONFIG_PATH", "/custom/bugg.toml")
		t.Setenv("BUGG_HOME", "/custom/bugg")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		want := Defaults{
			ConfigPath: "/custom/bugg.toml",
			BaseDir:    "/custom/bugg",
			LogDir:     "/custom/bugg/log",
		}
		if *defaults != want {
			t.Errorf("GetDefaults() = %+v, want %+v", *defaults, want)
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("BUGG_CONFIG_PATH", "")
		t.Setenv("BUGG_HOME", "")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()
		want := Defaults{
			ConfigPath: filepath.Join(homeDir, ".config", "bugg.toml"),
			BaseDir:    filepath.Join(homeDir, ".local", "share", "bugg"),
			LogDir:     filepath.Join(homeDir, ".local", "share", "bugg", "log"),
		}
		if *defaults != want {
			t.Errorf("GetDefaults() = %+v, want %+v", *defaults, want)
		}
	})

	t.Run("env vars are independent", func(t *testing.T) {
		t.Setenv("BUGG_CONFIG_PATH", "/etc/bugg.toml")
		t.Setenv("BUGG_HOME", "")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()
		if defaults.ConfigPath != "/etc/bugg.toml" {
			t.Errorf("ConfigPath = %q, want /etc/bugg.toml", defaults.ConfigPath)
		}
		if want := filepath.Join(homeDir, ".local", "share", "bugg"); defaults.BaseDir != want {
			t.Errorf("BaseDir = %q, want %q", defaults.BaseDir, want)
		}
	})
}
