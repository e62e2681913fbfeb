// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kyiku/shapefill/internal/geometry"
	"github.com/kyiku/shapefill/internal/model"
	"github.com/kyiku/shapefill/internal/placement"
	"github.com/kyiku/shapefill/internal/selection"
)

// FileEnv names the environment variable pointing at an optional YAML file.
const FileEnv = "SHAPEFILL_CONFIG"

// Config holds the application configuration.
type Config struct {
	Port          string `yaml:"port"`
	AllowedOrigin string `yaml:"allowed_origin"`

	CanvasWidth  float64 `yaml:"canvas_width"`
	CanvasHeight float64 `yaml:"canvas_height"`
	RetryLimit   int     `yaml:"retry_limit"`
	ShapeSet     string  `yaml:"shape_set"`
	Seed         int64   `yaml:"seed"` // 0 seeds from the clock

	RectWidth        float64 `yaml:"rect_width"`
	RectHeight       float64 `yaml:"rect_height"`
	SemicircleRadius float64 `yaml:"semicircle_radius"`
	BaseRadius       float64 `yaml:"base_radius"`

	SessionExpiry   time.Duration `yaml:"session_expiry"`
	RateLimit       int           `yaml:"rate_limit"` // clicks per window, 0 disables
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dims := model.DefaultDimensions()
	return &Config{
		Port:             "8080",
		AllowedOrigin:    "http://localhost:5173",
		CanvasWidth:      800,
		CanvasHeight:     600,
		RetryLimit:       placement.DefaultRetryLimit,
		ShapeSet:         selection.SetRegular,
		RectWidth:        dims.RectWidth,
		RectHeight:       dims.RectHeight,
		SemicircleRadius: dims.SemicircleRadius,
		BaseRadius:       dims.BaseRadius,
		SessionExpiry:    30 * time.Minute,
		RateLimit:        20,
		RateLimitWindow:  time.Second,
	}
}

// LoadConfig loads configuration from defaults, the optional YAML file named
// by SHAPEFILL_CONFIG, then environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.AllowedOrigin = getEnv("ALLOWED_ORIGIN", cfg.AllowedOrigin)
	cfg.CanvasWidth = getEnvAsFloat("CANVAS_WIDTH", cfg.CanvasWidth)
	cfg.CanvasHeight = getEnvAsFloat("CANVAS_HEIGHT", cfg.CanvasHeight)
	cfg.RetryLimit = getEnvAsInt("RETRY_LIMIT", cfg.RetryLimit)
	cfg.ShapeSet = getEnv("SHAPE_SET", cfg.ShapeSet)
	cfg.Seed = int64(getEnvAsInt("SEED", int(cfg.Seed)))
	cfg.RectWidth = getEnvAsFloat("RECT_WIDTH", cfg.RectWidth)
	cfg.RectHeight = getEnvAsFloat("RECT_HEIGHT", cfg.RectHeight)
	cfg.SemicircleRadius = getEnvAsFloat("SEMICIRCLE_RADIUS", cfg.SemicircleRadius)
	cfg.BaseRadius = getEnvAsFloat("BASE_RADIUS", cfg.BaseRadius)
	cfg.SessionExpiry = getEnvAsDuration("SESSION_EXPIRY", cfg.SessionExpiry)
	cfg.RateLimit = getEnvAsInt("RATE_LIMIT", cfg.RateLimit)
	cfg.RateLimitWindow = getEnvAsDuration("RATE_LIMIT_WINDOW", cfg.RateLimitWindow)

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.New("invalid port: must be a number")
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return errors.New("invalid canvas: width and height must be positive")
	}
	if c.RetryLimit < 0 {
		return errors.New("invalid retry limit: must not be negative")
	}
	if _, err := selection.ForSet(c.ShapeSet); err != nil {
		return err
	}
	if c.RectWidth <= 0 || c.RectHeight <= 0 || c.SemicircleRadius <= 0 || c.BaseRadius <= 0 {
		return errors.New("invalid dimensions: shape sizes must be positive")
	}

	// The smallest shape of the set must fit, or every click ends in canvas_full.
	minSide := c.CanvasWidth
	if c.CanvasHeight < minSide {
		minSide = c.CanvasHeight
	}
	switch c.ShapeSet {
	case selection.SetLegacy:
		if c.RectWidth > c.CanvasWidth || c.RectHeight > c.CanvasHeight || 2*c.SemicircleRadius > minSide {
			return errors.New("invalid dimensions: shapes do not fit on the canvas")
		}
	case selection.SetRegular:
		if 2*c.BaseRadius > minSide {
			return errors.New("invalid dimensions: shapes do not fit on the canvas")
		}
	}

	return nil
}

// Canvas returns the configured canvas.
func (c *Config) Canvas() geometry.Canvas {
	return geometry.Canvas{Width: c.CanvasWidth, Height: c.CanvasHeight}
}

// Dimensions returns the configured shape dimensions.
func (c *Config) Dimensions() model.Dimensions {
	return model.Dimensions{
		RectWidth:        c.RectWidth,
		RectHeight:       c.RectHeight,
		SemicircleRadius: c.SemicircleRadius,
		BaseRadius:       c.BaseRadius,
	}
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
