package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App       AppConfig
	ControlDB DatabaseConfig
	TenantDB  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Storage   StorageConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Timeouts  TimeoutConfig
}

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	LogLevel  string
	LogFormat string
}

// DatabaseConfig describes a postgres server. For tenant stores Name is
// ignored; the database name comes from the tenant record.
type DatabaseConfig struct {
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
	PollInterval  time.Duration
}

type StorageConfig struct {
	Driver          string // gcs | local
	Bucket          string
	CredentialsJSON string
	LocalDir        string
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type TimeoutConfig struct {
	Store         time.Duration
	TenantResolve time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zap.L().Debug(".env file not found, using environment variables", zap.Error(err))
	}

	viper.SetDefault("APP_NAME", "go-hrdocs")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "hrdocs_control")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_RETRIES", 5)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("KAFKA_CONSUMER_GROUP", "go-hrdocs")
	viper.SetDefault("KAFKA_POLL_INTERVAL", "3s")

	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("STORAGE_LOCAL_DIR", "./storage")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	viper.SetDefault("STORE_TIMEOUT", "5s")
	viper.SetDefault("TENANT_RESOLVE_TIMEOUT", "10s")

	control := DatabaseConfig{
		Host:       viper.GetString("DB_HOST"),
		Port:       viper.GetString("DB_PORT"),
		Name:       viper.GetString("DB_NAME"),
		User:       viper.GetString("DB_USER"),
		Password:   viper.GetString("DB_PASSWORD"),
		SSLMode:    viper.GetString("DB_SSLMODE"),
		MaxRetries: viper.GetInt("DB_MAX_RETRIES"),
	}

	tenantDB := control
	if v := viper.GetString("TENANT_DB_HOST"); v != "" {
		tenantDB.Host = v
	}
	if v := viper.GetString("TENANT_DB_PORT"); v != "" {
		tenantDB.Port = v
	}
	if v := viper.GetString("TENANT_DB_USER"); v != "" {
		tenantDB.User = v
	}
	if v := viper.GetString("TENANT_DB_PASSWORD"); v != "" {
		tenantDB.Password = v
	}
	tenantDB.Name = ""

	return &Config{
		App: AppConfig{
			Name:      viper.GetString("APP_NAME"),
			Env:       viper.GetString("APP_ENV"),
			Port:      viper.GetString("PORT"),
			LogLevel:  viper.GetString("LOG_LEVEL"),
			LogFormat: viper.GetString("LOG_FORMAT"),
		},
		ControlDB: control,
		TenantDB:  tenantDB,
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Broker:        viper.GetString("KAFKA_BROKER"),
			ConsumerGroup: viper.GetString("KAFKA_CONSUMER_GROUP"),
			PollInterval:  viper.GetDuration("KAFKA_POLL_INTERVAL"),
		},
		Storage: StorageConfig{
			Driver:          viper.GetString("STORAGE_DRIVER"),
			Bucket:          viper.GetString("GCS_BUCKET"),
			CredentialsJSON: viper.GetString("GCS_CREDENTIALS_JSON"),
			LocalDir:        viper.GetString("STORAGE_LOCAL_DIR"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Timeouts: TimeoutConfig{
			Store:         viper.GetDuration("STORE_TIMEOUT"),
			TenantResolve: viper.GetDuration("TENANT_RESOLVE_TIMEOUT"),
		},
	}
}

// DSN builds a postgres DSN. An empty dbname argument falls back to c.Name.
func (c DatabaseConfig) DSN(dbname string) string {
	if dbname == "" {
		dbname = c.Name
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, dbname, c.Port, c.SSLMode,
	)
}
