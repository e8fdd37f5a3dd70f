// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// EngineConfig carries every tunable of the forecasting and replenishment
// engine. The ensemble weights and the 1.65 service factor are business
// policy defaults, not laws; keep them overridable.
type EngineConfig struct {
	WindowDays          int
	HorizonDays         int
	SmoothingAlpha      float64
	EnsembleWeights     map[string]float64
	DefaultMethodWeight float64
	OrderingCost        float64
	HoldingCostRate     float64
	ServiceFactor       float64
	LeadTimeRawDays     float64
	LeadTimeFeedDays    float64
	Workers             int
	HighInvestment      float64
	MediumInvestment    float64
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "farmstock")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REPORT_TTL_SECONDS", 300)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "farmstock-reports")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("ENGINE_WINDOW_DAYS", 90)
		viper.SetDefault("ENGINE_HORIZON_DAYS", 14)
		viper.SetDefault("ENGINE_SMOOTHING_ALPHA", 0.3)
		viper.SetDefault("ENGINE_WEIGHT_LINEAR_TREND", 0.4)
		viper.SetDefault("ENGINE_WEIGHT_EXPONENTIAL_SMOOTHING", 0.3)
		viper.SetDefault("ENGINE_WEIGHT_SEASONAL_WEEKLY", 0.2)
		viper.SetDefault("ENGINE_WEIGHT_DEFAULT", 0.1)
		viper.SetDefault("ENGINE_ORDERING_COST", 1000.0)
		viper.SetDefault("ENGINE_HOLDING_COST_RATE", 0.25)
		viper.SetDefault("ENGINE_SERVICE_FACTOR", 1.65)
		viper.SetDefault("ENGINE_LEAD_TIME_RAW_DAYS", 7.0)
		viper.SetDefault("ENGINE_LEAD_TIME_FEED_DAYS", 5.0)
		viper.SetDefault("ENGINE_WORKERS", 4)
		viper.SetDefault("ENGINE_HIGH_INVESTMENT", 5000000.0)
		viper.SetDefault("ENGINE_MEDIUM_INVESTMENT", 1000000.0)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ReportTTLSeconds: viper.GetInt("CACHE_REPORT_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			Engine: EngineConfig{
				WindowDays:     viper.GetInt("ENGINE_WINDOW_DAYS"),
				HorizonDays:    viper.GetInt("ENGINE_HORIZON_DAYS"),
				SmoothingAlpha: viper.GetFloat64("ENGINE_SMOOTHING_ALPHA"),
				EnsembleWeights: map[string]float64{
					"linear_trend":          viper.GetFloat64("ENGINE_WEIGHT_LINEAR_TREND"),
					"exponential_smoothing": viper.GetFloat64("ENGINE_WEIGHT_EXPONENTIAL_SMOOTHING"),
					"seasonal_weekly":       viper.GetFloat64("ENGINE_WEIGHT_SEASONAL_WEEKLY"),
				},
				DefaultMethodWeight: viper.GetFloat64("ENGINE_WEIGHT_DEFAULT"),
				OrderingCost:        viper.GetFloat64("ENGINE_ORDERING_COST"),
				HoldingCostRate:     viper.GetFloat64("ENGINE_HOLDING_COST_RATE"),
				ServiceFactor:       viper.GetFloat64("ENGINE_SERVICE_FACTOR"),
				LeadTimeRawDays:     viper.GetFloat64("ENGINE_LEAD_TIME_RAW_DAYS"),
				LeadTimeFeedDays:    viper.GetFloat64("ENGINE_LEAD_TIME_FEED_DAYS"),
				Workers:             viper.GetInt("ENGINE_WORKERS"),
				HighInvestment:      viper.GetFloat64("ENGINE_HIGH_INVESTMENT"),
				MediumInvestment:    viper.GetFloat64("ENGINE_MEDIUM_INVESTMENT"),
			},
		}
	})

	return instance
}

// DefaultEngine returns engine defaults without touching the environment.
// Used by tests and by callers that only need the numeric engine.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		WindowDays:     90,
		HorizonDays:    14,
		SmoothingAlpha: 0.3,
		EnsembleWeights: map[string]float64{
			"linear_trend":          0.4,
			"exponential_smoothing": 0.3,
			"seasonal_weekly":       0.2,
		},
		DefaultMethodWeight: 0.1,
		OrderingCost:        1000.0,
		HoldingCostRate:     0.25,
		ServiceFactor:       1.65,
		LeadTimeRawDays:     7.0,
		LeadTimeFeedDays:    5.0,
		Workers:             4,
		HighInvestment:      5000000.0,
		MediumInvestment:    1000000.0,
	}
}
