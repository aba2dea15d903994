package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Library
		Covers
		View
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Library struct {
		DatabasePath string // entry collection file
		EntriesDir   string // root of per-entry asset directories
	}
	Covers struct {
		ConvertCommand string        // external EPUB->PDF tool
		ConvertTimeout time.Duration // bound on a single conversion
	}
	View struct {
		ExcludedTags []string // hidden unless explicitly selected
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("entries_dir", DefaultEntriesDir)
	v.SetDefault("convert_command", DefaultConvertCommand)
	v.SetDefault("convert_timeout", "2m")
	v.SetDefault("excluded_tags", []string{"leisure"})

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Library: Library{
			DatabasePath: v.GetString("DATABASE_PATH"),
			EntriesDir:   v.GetString("ENTRIES_DIR"),
		},
		Covers: Covers{
			ConvertCommand: v.GetString("CONVERT_COMMAND"),
			ConvertTimeout: v.GetDuration("CONVERT_TIMEOUT"),
		},
		View: View{
			ExcludedTags: v.GetStringSlice("EXCLUDED_TAGS"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
