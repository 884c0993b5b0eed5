package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultPath = "config/config.yaml"

type MobizonConfig struct {
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
	DryRun   bool   `yaml:"dry_run"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type OTPConfig struct {
	TTL            time.Duration `yaml:"ttl"`
	MaxAttempts    int           `yaml:"max_attempts"`
	MaxSends       int           `yaml:"max_sends"`
	SendWindow     time.Duration `yaml:"send_window"`
	MemberLoginOTP bool          `yaml:"member_login_otp"`
}

type Config struct {
	Server struct {
		Port           int           `yaml:"port"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	JWT struct {
		Secret          string        `yaml:"secret"`
		AccessTTL       time.Duration `yaml:"access_ttl"`
		VerificationTTL time.Duration `yaml:"verification_ttl"`
	} `yaml:"jwt"`
	OTP        OTPConfig      `yaml:"otp"`
	Mobizon    MobizonConfig  `yaml:"mobizon"`
	Telegram   TelegramConfig `yaml:"telegram"`
	Superadmin struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"superadmin"`
	Files struct {
		FontPath string `yaml:"font_path"`
	} `yaml:"files"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads .env (if any), the YAML file and env overrides, then validates.
// path == "" means MEMBERHUB_CONFIG or config/config.yaml.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env не обязателен

	if path == "" {
		path = os.Getenv("MEMBERHUB_CONFIG")
	}
	if path == "" {
		path = defaultPath
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only deployments are fine
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) overrideWithEnv() {
	setString(&c.Database.DSN, "DATABASE_URL")
	setString(&c.Email.SMTPHost, "SMTP_HOST")
	setInt(&c.Email.SMTPPort, "SMTP_PORT")
	setString(&c.Email.SMTPUser, "SMTP_USER")
	setString(&c.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.Email.FromEmail, "SMTP_FROM")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setInt(&c.Server.Port, "SERVER_PORT")
	setString(&c.Mobizon.APIKey, "MOBIZON_API_KEY")
	setString(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = n
		}
	}
	setString(&c.Superadmin.Password, "SUPERADMIN_PASSWORD")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = 15 * time.Second
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.JWT.AccessTTL <= 0 {
		c.JWT.AccessTTL = 15 * time.Minute
	}
	if c.JWT.VerificationTTL <= 0 {
		c.JWT.VerificationTTL = 30 * time.Minute
	}
	if c.OTP.TTL <= 0 {
		c.OTP.TTL = 10 * time.Minute
	}
	if c.OTP.MaxAttempts <= 0 {
		c.OTP.MaxAttempts = 5
	}
	if c.OTP.MaxSends <= 0 {
		c.OTP.MaxSends = 3
	}
	if c.OTP.SendWindow <= 0 {
		c.OTP.SendWindow = 10 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate fails fast on anything that would otherwise break at the first request.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: invalid value %d", c.Server.Port)
	}
	if c.Database.DSN == "" {
		return errors.New("database.url is required")
	}
	if c.Email.SMTPHost == "" {
		return errors.New("email.smtp_host is required")
	}
	if c.Email.SMTPPort <= 0 || c.Email.SMTPPort > 65535 {
		return fmt.Errorf("email.smtp_port: invalid value %d", c.Email.SMTPPort)
	}
	if c.Email.SMTPUser == "" || c.Email.SMTPPassword == "" {
		return errors.New("email.smtp_user and email.smtp_password are required")
	}
	if c.Email.FromEmail == "" {
		return errors.New("email.from_email is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("jwt.secret must be at least 32 bytes")
	}
	if c.Superadmin.Username != "" && c.Superadmin.Password == "" {
		return errors.New("superadmin.password is required when superadmin.username is set")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
