package pmpatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings configures the external collaborators: which patch program to
// run, its strip level, and where installed modules are searched for.
type Settings struct {
	PatchProgram string
	StripLevel   int
	IncludeDirs  []string
}

func DefaultSettings() Settings {
	return Settings{
		PatchProgram: "patch",
		StripLevel:   1,
		IncludeDirs:  EnvIncludeDirs(),
	}
}

// LoadSettings merges defaults, the settings file and PMPATCH_*
// environment variables. An empty configFile means the default location
// (~/.config/pmpatch/config.toml), where a missing file is fine; an
// explicit file must exist.
func LoadSettings(configFile string) (Settings, error) {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetDefault("patch_program", defaults.PatchProgram)
	v.SetDefault("strip_level", defaults.StripLevel)
	v.SetDefault("include_dirs", defaults.IncludeDirs)

	v.SetEnvPrefix("PMPATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read settings %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if dir, err := settingsDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("read settings: %w", err)
			}
		}
	}

	return Settings{
		PatchProgram: v.GetString("patch_program"),
		StripLevel:   v.GetInt("strip_level"),
		IncludeDirs:  v.GetStringSlice("include_dirs"),
	}, nil
}

func settingsDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pmpatch"), nil
}
