package config

import (
	"errors"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// File cache drivers
const (
	FileCacheMemory = "memory"
	FileCacheRedis  = "redis"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	ForSign   ForSignConfig   `mapstructure:"forsign"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	FileCache FileCacheConfig `mapstructure:"file_cache"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// ForSignConfig configures the outbound API client.
type ForSignConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`         // Total request timeout
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"` // Dial + TLS handshake
	UserAgent      string        `mapstructure:"user_agent"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// FileCacheConfig selects where uploaded document references are kept.
type FileCacheConfig struct {
	Driver    string        `mapstructure:"driver"` // memory or redis
	TTL       time.Duration `mapstructure:"ttl"`    // 0 keeps entries until cleared
	KeyPrefix string        `mapstructure:"key_prefix"`
}

type UploadConfig struct {
	MaxSize     int `mapstructure:"max_size"`    // Bytes per file
	Concurrency int `mapstructure:"concurrency"` // Parallel uploads per request
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "forsign-esign")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.env", "development")

	v.SetDefault("forsign.base_url", "https://api.forsign.digital")
	v.SetDefault("forsign.api_key", "")
	v.SetDefault("forsign.timeout", "30s")
	v.SetDefault("forsign.connect_timeout", "10s")
	v.SetDefault("forsign.user_agent", "ForSignGoClient/2.0")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "forsign_esign")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("file_cache.driver", FileCacheMemory)
	v.SetDefault("file_cache.ttl", "0s")
	v.SetDefault("file_cache.key_prefix", "forsign:")

	v.SetDefault("upload.max_size", 20<<20)
	v.SetDefault("upload.concurrency", 4)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// NewConfig loads config.yaml from . or ./config, or the file named by
// CONFIG_FILE. Environment variables override file values (FORSIGN_API_KEY
// for forsign.api_key). A missing config file is not an error.
func NewConfig() (*Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()))
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.App),
		validation.Field(&c.ForSign),
		validation.Field(&c.Database),
		validation.Field(&c.FileCache),
		validation.Field(&c.Upload),
		validation.Field(&c.Logging),
		validation.Field(&c.Redis, validation.When(c.FileCache.Driver == FileCacheRedis,
			validation.By(func(any) error {
				if !c.Redis.Enabled {
					return errors.New("must be enabled when file_cache.driver is redis")
				}
				return nil
			}),
		)),
	)
}

func (a AppConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

func (f ForSignConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.BaseURL, validation.Required, is.URL),
		validation.Field(&f.Timeout, validation.Required),
		validation.Field(&f.ConnectTimeout, validation.Required),
		validation.Field(&f.UserAgent, validation.Required),
	)
}

func (d DatabaseConfig) Validate() error {
	if !d.Enabled {
		return nil
	}
	return validation.ValidateStruct(&d,
		validation.Field(&d.Driver, validation.Required, validation.In("postgres")),
		validation.Field(&d.Host, validation.Required),
		validation.Field(&d.Port, validation.Required),
		validation.Field(&d.DBName, validation.Required),
	)
}

func (f FileCacheConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Driver, validation.Required, validation.In(FileCacheMemory, FileCacheRedis)),
	)
}

func (u UploadConfig) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.MaxSize, validation.Required, validation.Min(1)),
		validation.Field(&u.Concurrency, validation.Required, validation.Min(1)),
	)
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
	)
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
