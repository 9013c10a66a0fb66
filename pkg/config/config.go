package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Member source drivers.
const (
	SourceHTTP = "http"
	SourceS3   = "s3"
	SourceSQL  = "sql"
)

// Session store drivers.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// DefaultSourceURL is where the members list is published.
const DefaultSourceURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

type Config struct {
	Env             string
	Port            int
	APIPrefix       string
	ShutdownTimeout time.Duration

	Table    TableConfig
	Session  SessionConfig
	Source   SourceConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Export   ExportConfig
	CORS     CORSConfig
	Log      LogConfig
}

// TableConfig controls how the admin table is derived.
type TableConfig struct {
	PageSize int
}

// SessionConfig selects where table sessions live and how long they idle.
type SessionConfig struct {
	Store string
	TTL   time.Duration
}

// SourceConfig describes the one-shot member source.
type SourceConfig struct {
	Driver   string
	URL      string
	Timeout  time.Duration
	S3       S3SourceConfig
	SQLTable string
}

// S3SourceConfig addresses the members object in an S3-compatible bucket.
type S3SourceConfig struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string
	PathStyle bool
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	Path         string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// AuthConfig gates the session routes behind bearer tokens.
type AuthConfig struct {
	Enabled bool
	Secret  string
}

// ExportConfig tunes downloads. PDFFontPath points at a TrueType font used
// instead of the cp1252-only core font.
type ExportConfig struct {
	PDFFontPath string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.ShutdownTimeout = parseDuration(v.GetString("SHUTDOWN_TIMEOUT"), 10*time.Second)

	pageSize := v.GetInt("TABLE_PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 10
	}
	cfg.Table = TableConfig{PageSize: pageSize}

	cfg.Session = SessionConfig{
		Store: strings.ToLower(v.GetString("SESSION_STORE")),
		TTL:   parseDuration(v.GetString("SESSION_TTL"), 30*time.Minute),
	}

	cfg.Source = SourceConfig{
		Driver:  strings.ToLower(v.GetString("SOURCE_DRIVER")),
		URL:     v.GetString("SOURCE_URL"),
		Timeout: parseDuration(v.GetString("SOURCE_TIMEOUT"), 10*time.Second),
		S3: S3SourceConfig{
			Bucket:    v.GetString("SOURCE_S3_BUCKET"),
			Key:       v.GetString("SOURCE_S3_KEY"),
			Region:    v.GetString("SOURCE_S3_REGION"),
			Endpoint:  v.GetString("SOURCE_S3_ENDPOINT"),
			PathStyle: v.GetBool("SOURCE_S3_PATH_STYLE"),
		},
		SQLTable: v.GetString("SOURCE_SQL_TABLE"),
	}

	cfg.Database = DatabaseConfig{
		Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		Path:         v.GetString("DB_PATH"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:      v.GetString("REDIS_HOST"),
		Port:      v.GetInt("REDIS_PORT"),
		Password:  v.GetString("REDIS_PASSWORD"),
		DB:        v.GetInt("REDIS_DB"),
		KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
	}

	cfg.Auth = AuthConfig{
		Enabled: v.GetBool("AUTH_ENABLED"),
		Secret:  v.GetString("JWT_SECRET"),
	}

	cfg.Export = ExportConfig{PDFFontPath: v.GetString("PDF_FONT_PATH")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("TABLE_PAGE_SIZE", 10)
	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_TTL", "30m")

	v.SetDefault("SOURCE_DRIVER", SourceHTTP)
	v.SetDefault("SOURCE_URL", DefaultSourceURL)
	v.SetDefault("SOURCE_TIMEOUT", "10s")
	v.SetDefault("SOURCE_S3_BUCKET", "")
	v.SetDefault("SOURCE_S3_KEY", "adminui-problem/members.json")
	v.SetDefault("SOURCE_S3_REGION", "ap-southeast-1")
	v.SetDefault("SOURCE_S3_ENDPOINT", "")
	v.SetDefault("SOURCE_S3_PATH_STYLE", false)
	v.SetDefault("SOURCE_SQL_TABLE", "members")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "adminui")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_PATH", "./adminui.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 4)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "adminui:session:")

	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("PDF_FONT_PATH", "")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
