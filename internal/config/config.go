package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the portal API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	RedisURL          string
	DatabaseURL       string
	JWTSecret         string
	SessionTimeout    time.Duration
	AuditLogCap       int
	FaceRegFrames     int
	FaceFrameInterval time.Duration
	FaceScanDelay     time.Duration
	FaceConfidence    float64
	SeedDemoData      bool
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EDUPRO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "EduPro API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("session.timeout", "30m")
	v.SetDefault("audit.log_cap", 1000)
	v.SetDefault("face.reg_frames", 30)
	v.SetDefault("face.frame_interval_ms", 140)
	v.SetDefault("face.scan_delay_ms", 2000)
	v.SetDefault("face.confidence", 0.92)
	v.SetDefault("seed.demo_data", true)

	timeoutString := v.GetString("session.timeout")
	if timeoutString == "" {
		timeoutString = "30m"
	}

	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid session timeout: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		RedisURL:          v.GetString("redis.url"),
		DatabaseURL:       v.GetString("database.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		SessionTimeout:    timeout,
		AuditLogCap:       v.GetInt("audit.log_cap"),
		FaceRegFrames:     v.GetInt("face.reg_frames"),
		FaceFrameInterval: time.Duration(v.GetInt("face.frame_interval_ms")) * time.Millisecond,
		FaceScanDelay:     time.Duration(v.GetInt("face.scan_delay_ms")) * time.Millisecond,
		FaceConfidence:    v.GetFloat64("face.confidence"),
		SeedDemoData:      v.GetBool("seed.demo_data"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AuditLogCap <= 0 {
		cfg.AuditLogCap = 1000
	}

	if cfg.FaceRegFrames <= 0 {
		cfg.FaceRegFrames = 30
	}

	if cfg.FaceConfidence <= 0 || cfg.FaceConfidence > 1 {
		cfg.FaceConfidence = 0.92
	}

	return cfg, nil
}
