package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Logging  LoggingConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
	Seed        bool // Popula dados de exemplo no boot
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

// Load carrega as configurações do ambiente (.env já carregado pelo main)
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("ENV", "development")
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIN_CONNS", 2)
	viper.SetDefault("DB_MAX_IDLE_TIME", 300)
	viper.SetDefault("DB_SEED", false)
	viper.SetDefault("JWT_EXPIRY", "24h")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	expiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}

	if viper.GetString("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	config := &Config{
		Env: viper.GetString("ENV"),
		Server: ServerConfig{
			Port: viper.GetString("PORT"),
			Host: viper.GetString("HOST"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetInt("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			DBName:      viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSL_MODE"),
			MaxConns:    viper.GetInt("DB_MAX_CONNS"),
			MinConns:    viper.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: viper.GetInt("DB_MAX_IDLE_TIME"),
			Seed:        viper.GetBool("DB_SEED"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: expiry,
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetString("CORS_ALLOWED_ORIGINS"),
		},
	}

	return config, nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
