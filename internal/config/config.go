package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DaemonPort  int      `mapstructure:"daemon_port"`
	DBPath      string   `mapstructure:"db_path"`
	TempDir     string   `mapstructure:"temp_dir"`
	PresetsPath string   `mapstructure:"presets_path"`
	CategoryID  string   `mapstructure:"category_id"`
	Tags        []string `mapstructure:"tags"`

	// yt-dlp format selectors; the fallback is tried when the first fails.
	FormatBest string `mapstructure:"format_best"`
	FormatSafe string `mapstructure:"format_safe"`

	DiscordWebhookURL string `mapstructure:"discord_webhook_url"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	AlertFrom    string `mapstructure:"alert_from"`
	AlertTo      string `mapstructure:"alert_to"`
}

var Default = Config{
	DaemonPort:  9400,
	DBPath:      "reshort.db",
	TempDir:     os.TempDir(),
	PresetsPath: "presets.json",
	CategoryID:  "22",
	Tags:        []string{"shorts"},
	FormatBest:  "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
	FormatSafe:  "best[ext=mp4]/best",
	SMTPPort:    465,
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}

	dir := filepath.Join(home, ".reshort")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	return dir, nil
}

func Load() (*Config, error) {
	configDir, err := Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	viper.SetDefault("daemon_port", Default.DaemonPort)
	viper.SetDefault("db_path", Default.DBPath)
	viper.SetDefault("temp_dir", Default.TempDir)
	viper.SetDefault("presets_path", Default.PresetsPath)
	viper.SetDefault("category_id", Default.CategoryID)
	viper.SetDefault("tags", Default.Tags)
	viper.SetDefault("format_best", Default.FormatBest)
	viper.SetDefault("format_safe", Default.FormatSafe)
	viper.SetDefault("smtp_port", Default.SMTPPort)

	viper.SetEnvPrefix("RESHORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if ok := errors.As(err, &notFound); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(configDir, cfg.DBPath)
	}
	if !filepath.IsAbs(cfg.PresetsPath) {
		cfg.PresetsPath = filepath.Join(configDir, cfg.PresetsPath)
	}

	return &cfg, nil
}
