package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AuthConfig struct {
	JWTSecret  string `yaml:"jwt_secret"`
	AccessTTL  string `yaml:"access_ttl"`  // e.g. "15m"
	RefreshTTL string `yaml:"refresh_ttl"` // e.g. "720h"
	OTPTTL     string `yaml:"otp_ttl"`     // e.g. "15m"
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	AdminChatID int64  `yaml:"admin_chat_id"`
}

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth     AuthConfig     `yaml:"auth"`
	Telegram TelegramConfig `yaml:"telegram"`
	Files    FilesConfig    `yaml:"files"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if cfg.Auth.JWTSecret == "" {
		panic("auth.jwt_secret is required (config or JWT_SECRET env)")
	}
	return &cfg
}

// AccessTTLDuration parses auth.access_ttl, defaulting to 15 minutes.
func (c *Config) AccessTTLDuration() time.Duration {
	return parseDuration(c.Auth.AccessTTL, 15*time.Minute)
}

// RefreshTTLDuration parses auth.refresh_ttl, defaulting to 30 days.
func (c *Config) RefreshTTLDuration() time.Duration {
	return parseDuration(c.Auth.RefreshTTL, 30*24*time.Hour)
}

// OTPTTLDuration parses auth.otp_ttl, defaulting to 15 minutes.
func (c *Config) OTPTTLDuration() time.Duration {
	return parseDuration(c.Auth.OTPTTL, 15*time.Minute)
}

func parseDuration(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
