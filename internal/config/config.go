package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL         string `yaml:"ttl"`
	Length      int    `yaml:"length"`
	MaxAttempts int    `yaml:"max_attempts"`
}

type PaymentConfig struct {
	// ReservationTTL bounds how long an abandoned reservation keeps the
	// (user, student) gate and payment record alive in Redis.
	ReservationTTL string `yaml:"reservation_ttl"`
}

type NotificationsConfig struct {
	Provider string       `yaml:"provider"` // "console" or "twilio"
	Twilio   TwilioConfig `yaml:"twilio"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App           AppConfig           `yaml:"app"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	JWT           JWTConfig           `yaml:"jwt"`
	OTP           OTPConfig           `yaml:"otp"`
	Payment       PaymentConfig       `yaml:"payment"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Casbin        CasbinConfig        `yaml:"casbin"`
}

type Config struct {
	Port                 string
	GinMode              string
	DSN                  string
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	JWTSecret            string
	JWTIssuer            string
	AccessTTL            time.Duration
	RefreshTTL           time.Duration
	OTP_TTL              time.Duration
	OTP_Length           int
	OTP_MaxAttempts      int
	PaymentTTL           time.Duration
	NotificationProvider string
	TwilioSID            string
	TwilioToken          string
	TwilioFrom           string
	CasbinModelPath      string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	// .env is optional; environment overrides win over the yaml file
	_ = godotenv.Load()

	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	payTTL, err := time.ParseDuration(configFile.Payment.ReservationTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid payment reservation TTL: %w", err)
	}

	return &Config{
		Port:                 fmt.Sprintf("%d", configFile.App.Port),
		GinMode:              configFile.App.GinMode,
		DSN:                  env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:            env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:        env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:              configFile.Redis.DB,
		JWTSecret:            env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:            configFile.JWT.Issuer,
		AccessTTL:            accTTL,
		RefreshTTL:           refTTL,
		OTP_TTL:              otpTTL,
		OTP_Length:           configFile.OTP.Length,
		OTP_MaxAttempts:      configFile.OTP.MaxAttempts,
		PaymentTTL:           payTTL,
		NotificationProvider: configFile.Notifications.Provider,
		TwilioSID:            env("TWILIO_ACCOUNT_SID", configFile.Notifications.Twilio.AccountSID),
		TwilioToken:          env("TWILIO_AUTH_TOKEN", configFile.Notifications.Twilio.AuthToken),
		TwilioFrom:           configFile.Notifications.Twilio.FromNumber,
		CasbinModelPath:      configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
