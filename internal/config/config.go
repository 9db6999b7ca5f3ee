// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// UpstreamConfig holds the base URLs and identity for the external geodata
// services.
type UpstreamConfig struct {
	NominatimBaseURL string
	OSRMBaseURL      string
	OverpassEndpoint string
	UserAgent        string
	CountryCode      string
}

// ServiceConfig holds all configuration for the routes service.
type ServiceConfig struct {
	Port         string
	AppEnv       string
	DBConfig     DatabaseConfig
	JWTSecret    string
	JWTTTL       time.Duration
	KafkaBrokers []string
	Upstream     UpstreamConfig
}

// Load reads configuration from GOSAFE_-prefixed environment variables,
// falling back to development defaults.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("GOSAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service_port", ":8080")
	v.SetDefault("app_env", "development")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "gosafe")
	v.SetDefault("db_password", "gosafe")
	v.SetDefault("db_name", "gosafe_routes")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("jwt_secret", "dev-secret-change-me")
	v.SetDefault("jwt_ttl", "168h")

	v.SetDefault("kafka_brokers", "localhost:9092")

	v.SetDefault("nominatim_base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("osrm_base_url", "https://router.project-osrm.org")
	v.SetDefault("overpass_endpoint", "https://overpass-api.de/api/interpreter")
	v.SetDefault("http_user_agent", "GoSafe-Transit/1.0")
	v.SetDefault("country_code", "in")

	ttl, err := time.ParseDuration(v.GetString("jwt_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid jwt_ttl: %w", err)
	}

	port := v.GetString("service_port")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:   port,
		AppEnv: v.GetString("app_env"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetInt("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		JWTSecret:    v.GetString("jwt_secret"),
		JWTTTL:       ttl,
		KafkaBrokers: strings.Split(v.GetString("kafka_brokers"), ","),
		Upstream: UpstreamConfig{
			NominatimBaseURL: v.GetString("nominatim_base_url"),
			OSRMBaseURL:      v.GetString("osrm_base_url"),
			OverpassEndpoint: v.GetString("overpass_endpoint"),
			UserAgent:        v.GetString("http_user_agent"),
			CountryCode:      v.GetString("country_code"),
		},
	}, nil
}
