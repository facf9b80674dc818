package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config struct for environment variables.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`

	Extractor string `envconfig:"EXTRACTOR" default:"lib"`
	YTDLPPath string `envconfig:"YTDLP_PATH" default:"yt-dlp"`

	DownloadDir   string `envconfig:"DOWNLOAD_DIR" default:"video_downloads"`
	MaxFileSizeMB int64  `envconfig:"MAX_FILE_SIZE_MB" default:"49"`

	YoutubeCookiesFile   string `envconfig:"YOUTUBE_COOKIES_FILE" default:"cookies/youtube.txt"`
	InstagramCookiesFile string `envconfig:"INSTAGRAM_COOKIES_FILE" default:"cookies/instagram.txt"`

	UploadTimeout    time.Duration `envconfig:"UPLOAD_TIMEOUT" default:"3m"`
	KeepArtifactsFor time.Duration `envconfig:"KEEP_ARTIFACTS_FOR" default:"24h"`
	CleanupInterval  time.Duration `envconfig:"CLEANUP_INTERVAL" default:"30m"`

	LogLevel         string `envconfig:"LOG_LEVEL" default:"INFO"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"true"`

	Web struct {
		BindAddress     string        `split_words:"true" default:"0.0.0.0:9090"`
		ReadTimeout     time.Duration `split_words:"true" default:"30s"`
		WriteTimeout    time.Duration `split_words:"true" default:"30s"`
		IdleTimeout     time.Duration `split_words:"true" default:"5s"`
		ShutdownTimeout time.Duration `split_words:"true" default:"30s"`
	}
}

// LoadConfig reads environment variables and populates the Config struct.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env: %w", err)
	}

	return &cfg, nil
}

// MaxFileSizeBytes returns the upload ceiling in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
