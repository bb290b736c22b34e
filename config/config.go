package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB (read side of appointments and user profiles).
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Google Maps API Key.
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`
	MapsBaseURL  string `mapstructure:"MAPS_BASE_URL"`

	// Travel provider behaviour.
	TravelTimeoutSeconds    int     `mapstructure:"TRAVEL_TIMEOUT_SECONDS"`
	TravelThrottleMs        int     `mapstructure:"TRAVEL_THROTTLE_MS"`
	TravelTransitMultiplier float64 `mapstructure:"TRAVEL_TRANSIT_MULTIPLIER"`
	FallbackDrivingMinutes  int     `mapstructure:"FALLBACK_DRIVING_MINUTES"`
	FallbackWalkingMinutes  int     `mapstructure:"FALLBACK_WALKING_MINUTES"`
	FallbackCyclingMinutes  int     `mapstructure:"FALLBACK_CYCLING_MINUTES"`
	FallbackTransitMinutes  int     `mapstructure:"FALLBACK_TRANSIT_MINUTES"`
	GeocodeCacheTTLHours    int     `mapstructure:"GEOCODE_CACHE_TTL_HOURS"`

	// Background geocode warm-up.
	GeocodeWarmEnabled     bool   `mapstructure:"GEOCODE_WARM_ENABLED"`
	GeocodeWarmSchedule    string `mapstructure:"GEOCODE_WARM_SCHEDULE"`
	GeocodeWarmWindowHours int    `mapstructure:"GEOCODE_WARM_WINDOW_HOURS"`

	// Scheduling defaults.
	ScheduleDefaultStartHour     int    `mapstructure:"SCHEDULE_DEFAULT_START_HOUR"`
	ScheduleDefaultEndHour       int    `mapstructure:"SCHEDULE_DEFAULT_END_HOUR"`
	ScheduleSlotIntervalMinutes  int    `mapstructure:"SCHEDULE_SLOT_INTERVAL_MINUTES"`
	ScheduleDefaultBufferMinutes int    `mapstructure:"SCHEDULE_DEFAULT_BUFFER_MINUTES"`
	ScheduleMaxLookaheadDays     int    `mapstructure:"SCHEDULE_MAX_LOOKAHEAD_DAYS"`
	DefaultTimezone              string `mapstructure:"DEFAULT_TIMEZONE"`
}

var AppConfig Config

// setDefaults registers every key so AutomaticEnv can override it and
// Unmarshal sees it even without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "clipprmobile")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("MAPS_BASE_URL", "https://maps.googleapis.com")
	v.SetDefault("TRAVEL_TIMEOUT_SECONDS", 5)
	v.SetDefault("TRAVEL_THROTTLE_MS", 100)
	v.SetDefault("TRAVEL_TRANSIT_MULTIPLIER", 1.5)
	v.SetDefault("FALLBACK_DRIVING_MINUTES", 15)
	v.SetDefault("FALLBACK_WALKING_MINUTES", 30)
	v.SetDefault("FALLBACK_CYCLING_MINUTES", 20)
	v.SetDefault("FALLBACK_TRANSIT_MINUTES", 25)
	v.SetDefault("GEOCODE_CACHE_TTL_HOURS", 24*30)
	v.SetDefault("GEOCODE_WARM_ENABLED", true)
	v.SetDefault("GEOCODE_WARM_SCHEDULE", "@every 6h")
	v.SetDefault("GEOCODE_WARM_WINDOW_HOURS", 24)
	v.SetDefault("SCHEDULE_DEFAULT_START_HOUR", 9)
	v.SetDefault("SCHEDULE_DEFAULT_END_HOUR", 20)
	v.SetDefault("SCHEDULE_SLOT_INTERVAL_MINUTES", 30)
	v.SetDefault("SCHEDULE_DEFAULT_BUFFER_MINUTES", 15)
	v.SetDefault("SCHEDULE_MAX_LOOKAHEAD_DAYS", 14)
	v.SetDefault("DEFAULT_TIMEZONE", "UTC")
}

// Load reads configuration from the given viper instance. A missing config
// file is not an error; environment variables and defaults still apply.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
