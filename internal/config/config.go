package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Storage    StorageConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// AttendanceConfig carries every business-rule constant the attendance core
// consumes: geofence, office hours, late window, recovery time, day-count
// thresholds and the sweep cutoff. Nothing in the engine is hardcoded.
type AttendanceConfig struct {
	OfficeLatitude     float64
	OfficeLongitude    float64
	OfficeRadiusMeters float64
	OfficePunchIn      string // "10:00"
	OfficePunchOut     string // "18:00"
	LateWindowStart    string // "10:00"
	LateWindowEnd      string // "10:15"
	RecoveryTime       string // "19:00"
	HalfDayMinHours    float64
	FullDayMinHours    float64
	AutoPunchOutTime   string // "23:59"
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Kolkata"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	officeLat, err := getEnvFloat("OFFICE_LATITUDE", 28.6139)
	if err != nil {
		return nil, err
	}
	officeLng, err := getEnvFloat("OFFICE_LONGITUDE", 77.2090)
	if err != nil {
		return nil, err
	}
	officeRadius, err := getEnvFloat("OFFICE_RADIUS_METERS", 100)
	if err != nil {
		return nil, err
	}
	halfDayHours, err := getEnvFloat("HALF_DAY_MIN_HOURS", 4)
	if err != nil {
		return nil, err
	}
	fullDayHours, err := getEnvFloat("FULL_DAY_MIN_HOURS", 8)
	if err != nil {
		return nil, err
	}

	config.Attendance = AttendanceConfig{
		OfficeLatitude:     officeLat,
		OfficeLongitude:    officeLng,
		OfficeRadiusMeters: officeRadius,
		OfficePunchIn:      getEnv("OFFICE_PUNCH_IN", "10:00"),
		OfficePunchOut:     getEnv("OFFICE_PUNCH_OUT", "18:00"),
		LateWindowStart:    getEnv("LATE_WINDOW_START", "10:00"),
		LateWindowEnd:      getEnv("LATE_WINDOW_END", "10:15"),
		RecoveryTime:       getEnv("RECOVERY_TIME", "19:00"),
		HalfDayMinHours:    halfDayHours,
		FullDayMinHours:    fullDayHours,
		AutoPunchOutTime:   getEnv("AUTO_PUNCH_OUT_TIME", "23:59"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	for _, tod := range []struct{ name, value string }{
		{"OFFICE_PUNCH_IN", c.Attendance.OfficePunchIn},
		{"OFFICE_PUNCH_OUT", c.Attendance.OfficePunchOut},
		{"LATE_WINDOW_START", c.Attendance.LateWindowStart},
		{"LATE_WINDOW_END", c.Attendance.LateWindowEnd},
		{"RECOVERY_TIME", c.Attendance.RecoveryTime},
		{"AUTO_PUNCH_OUT_TIME", c.Attendance.AutoPunchOutTime},
	} {
		if _, err := time.Parse("15:04", tod.value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", tod.name, tod.value, err)
		}
	}
	if c.Attendance.OfficeRadiusMeters <= 0 {
		return fmt.Errorf("OFFICE_RADIUS_METERS must be positive")
	}
	if c.Attendance.HalfDayMinHours <= 0 || c.Attendance.FullDayMinHours <= c.Attendance.HalfDayMinHours {
		return fmt.Errorf("day-count hour thresholds must satisfy 0 < half < full")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
