package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	UPLOAD_MAX_BYTES=33554432
//	INGEST_DIR=./data/input
//	INGEST_PARALLEL=0
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=dbostatement
//	POSTGRES_SSLMODE=disable
type Config struct {
	Server   ServerConfig
	Ingest   IngestConfig
	Postgres PostgresConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string // TCP port the HTTP server listens on
	UploadMaxBytes int64  // largest accepted export upload
}

// IngestConfig holds directory ingestion defaults; CLI flags override them.
type IngestConfig struct {
	Dir      string // directory scanned for *.csv exports
	Parallel int    // files processed concurrently, 0 = number of CPUs
}

// PostgresConfig defines connection details for PostgreSQL.
// URL is the computed DSN used by database/sql.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance, populated once
// by LoadConfig.
var AppConfig Config

// LoadConfig initializes AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Missing required values terminate the process (see validateConfig).
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("UPLOAD_MAX_BYTES", 32<<20)

	viper.SetDefault("INGEST_DIR", "./data/input")
	viper.SetDefault("INGEST_PARALLEL", 0)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "dbostatement")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optional .env for local development
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			UploadMaxBytes: viper.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Ingest: IngestConfig{
			Dir:      viper.GetString("INGEST_DIR"),
			Parallel: viper.GetInt("INGEST_PARALLEL"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}
	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN renders the connection string understood by lib/pq.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig terminates the process with log.Fatalf when required values
// are missing or out of range.
func validateConfig() {
	if missing := missingKeys(AppConfig); len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}

func missingKeys(c Config) []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Server.UploadMaxBytes <= 0 {
		missing = append(missing, "UPLOAD_MAX_BYTES")
	}
	if c.Ingest.Parallel < 0 {
		missing = append(missing, "INGEST_PARALLEL")
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	return missing
}
