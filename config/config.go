package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	JWT     JWTConfig
	Login   LoginConfig
	Seed    SeedConfig
}

type AppConfig struct {
	Port       string
	Env        string
	Timezone   string
	CORSOrigin string
	LogLevel   string
}

// Location resolves the clinic time zone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DBConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	Store string
	TTL   time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type LoginConfig struct {
	RatePerMinute int
	Burst         int
}

type SeedConfig struct {
	AdminPassword  string
	DoctorPassword string
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("APP_CORS_ORIGIN", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", DBDriverSQLite)
	viper.SetDefault("DB_PATH", "clinic.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("SESSION_STORE", SessionStoreMemory)
	viper.SetDefault("SESSION_TTL", "12h")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	viper.SetDefault("LOGIN_BURST", 5)
	viper.SetDefault("SEED_ADMIN_PASSWORD", "Admin@123")
	viper.SetDefault("SEED_DOCTOR_PASSWORD", "@123")
}

func LoadConfig() (*Config, error) {
	setDefaults()
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// The .env file is optional; environment variables and defaults suffice.
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		sessionTTL = 12 * time.Hour
	}

	secret := viper.GetString("JWT_SECRET")
	if secret == "" {
		if viper.GetString("APP_ENV") == "production" {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		secret = "development-secret"
	}

	config := &Config{
		App: AppConfig{
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			Timezone:   viper.GetString("APP_TIMEZONE"),
			CORSOrigin: viper.GetString("APP_CORS_ORIGIN"),
			LogLevel:   viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Path:     viper.GetString("DB_PATH"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Store: viper.GetString("SESSION_STORE"),
			TTL:   sessionTTL,
		},
		JWT: JWTConfig{
			Secret: secret,
			Expiry: sessionTTL,
		},
		Login: LoginConfig{
			RatePerMinute: viper.GetInt("LOGIN_RATE_PER_MINUTE"),
			Burst:         viper.GetInt("LOGIN_BURST"),
		},
		Seed: SeedConfig{
			AdminPassword:  viper.GetString("SEED_ADMIN_PASSWORD"),
			DoctorPassword: viper.GetString("SEED_DOCTOR_PASSWORD"),
		},
	}

	return config, nil
}
