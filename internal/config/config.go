package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath     string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		ReadTimeout     string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
		MigrationsPath  string `yaml:"migrations_path" env:"SERVER_MIGRATIONS_PATH"`
	} `yaml:"server"`

	// Database holds the connection settings shared by every campus.
	// Each campus only names its own database.
	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Campuses []CampusConfig `yaml:"campuses"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level        string `yaml:"level" env:"LOG_LEVEL"`
		Format       string `yaml:"format" env:"LOG_FORMAT"`
		RollbarToken string `yaml:"rollbar_token" env:"ROLLBAR_TOKEN"`
		Environment  string `yaml:"environment" env:"APP_ENV"`
	} `yaml:"logging"`

	Documents struct {
		AssetsPath        string `yaml:"assets_path" env:"DOCUMENTS_ASSETS_PATH"`
		GenerationTimeout string `yaml:"generation_timeout" env:"DOCUMENTS_GENERATION_TIMEOUT"`
		TimeZone          string `yaml:"time_zone" env:"DOCUMENTS_TIME_ZONE"`
		DefaultFormat     string `yaml:"default_format" env:"ADMISSION_NUMBER_FORMAT"`
		MaxFeeUploadBytes int64  `yaml:"max_fee_upload_bytes" env:"DOCUMENTS_MAX_FEE_UPLOAD_BYTES"`
	} `yaml:"documents"`

	Institution InstitutionConfig `yaml:"institution"`

	Email struct {
		SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
		FromAddress    string `yaml:"from_address" env:"EMAIL_FROM_ADDRESS"`
		FromName       string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
	} `yaml:"email"`

	Admin struct {
		DefaultUsername string `yaml:"default_username" env:"ADMIN_DEFAULT_USERNAME"`
		DefaultPassword string `yaml:"default_password" env:"ADMIN_DEFAULT_PASSWORD"`
	} `yaml:"admin"`
}

// CampusConfig describes one independently administered campus.
type CampusConfig struct {
	Key              string `yaml:"key"`
	Name             string `yaml:"name"`
	DBName           string `yaml:"dbname"`
	StartingSequence int64  `yaml:"starting_sequence"`
}

// InstitutionConfig carries the letterhead and payment details printed on
// admission documents.
type InstitutionConfig struct {
	Name          string   `yaml:"name" env:"INSTITUTION_NAME"`
	ShortName     string   `yaml:"short_name" env:"INSTITUTION_SHORT_NAME"`
	EquityAccount string   `yaml:"equity_account" env:"INSTITUTION_EQUITY_ACCOUNT"`
	KCBAccount    string   `yaml:"kcb_account" env:"INSTITUTION_KCB_ACCOUNT"`
	Paybill       string   `yaml:"paybill" env:"INSTITUTION_PAYBILL"`
	Signatory     string   `yaml:"signatory" env:"INSTITUTION_SIGNATORY"`
	Directors     []string `yaml:"directors" env:"INSTITUTION_DIRECTORS"`
}

// LoadConfig loads configuration from a YAML file, an optional .env file
// and environment variables, in that order of precedence (env wins).
func LoadConfig(configPath, envPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", envPath, err)
			}
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if len(config.Campuses) == 0 {
		config.Campuses = defaultCampuses()
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "storage"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "60s"
	config.Server.ShutdownTimeout = "10s"
	config.Server.MigrationsPath = "migrations"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "eavi.admissions"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Environment = "development"

	config.Documents.AssetsPath = "assets"
	config.Documents.GenerationTimeout = "30s"
	config.Documents.TimeZone = "Africa/Nairobi"
	config.Documents.DefaultFormat = "EAVI/{seq}/{year}"
	config.Documents.MaxFeeUploadBytes = 10 << 20

	config.Institution = InstitutionConfig{
		Name:          "East Africa Vision Institute",
		ShortName:     "EAVI",
		EquityAccount: "0470292838961",
		KCBAccount:    "1115207350",
		Paybill:       "257557",
		Signatory:     "TRIZAH JUMA",
		Directors: []string{
			"Philemon Saina (B.Sc. Eng, MBA)",
			"Beth Mwangi (B.A, MBA, PhD Finance)",
			"R. B. Patel (B.Sc. Eng, M.Sc.)",
		},
	}

	config.Email.FromAddress = "admissions@eavi.ac.ke"
	config.Email.FromName = "EAVI Admissions"

	config.Admin.DefaultUsername = "admin"
}

func defaultCampuses() []CampusConfig {
	return []CampusConfig{
		{Key: "twon", Name: "Twon Campus", DBName: "eavi_twon", StartingSequence: 1001},
		{Key: "west", Name: "West Campus", DBName: "eavi_west", StartingSequence: 2001},
	}
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return errors.New("database host is required")
	}

	if config.JWT.Secret == "" {
		return errors.New("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Documents.GenerationTimeout); err != nil {
		return fmt.Errorf("invalid document generation timeout: %w", err)
	}

	if _, err := time.LoadLocation(config.Documents.TimeZone); err != nil {
		return fmt.Errorf("invalid document time zone %q: %w", config.Documents.TimeZone, err)
	}

	if !strings.Contains(config.Documents.DefaultFormat, "{seq}") {
		return errors.New("default admission number format must contain {seq}")
	}

	seen := make(map[string]struct{}, len(config.Campuses))
	for i, campus := range config.Campuses {
		if campus.Key == "" {
			return fmt.Errorf("campus #%d: key is required", i)
		}
		if campus.DBName == "" {
			return fmt.Errorf("campus %s: dbname is required", campus.Key)
		}
		if campus.StartingSequence < 1 {
			return fmt.Errorf("campus %s: starting_sequence must be positive", campus.Key)
		}
		if _, dup := seen[campus.Key]; dup {
			return fmt.Errorf("campus %s: duplicate key", campus.Key)
		}
		seen[campus.Key] = struct{}{}
	}

	return nil
}

// PostgresConnectionString returns the connection string for one campus database.
func (c *Config) PostgresConnectionString(dbName string) string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		dbName,
		sslMode,
	)
}

// Campus looks up a configured campus by key.
func (c *Config) Campus(key string) (CampusConfig, bool) {
	for _, campus := range c.Campuses {
		if strings.EqualFold(campus.Key, key) {
			return campus, true
		}
	}
	return CampusConfig{}, false
}

// Location returns the time zone used for reporting dates and issue years.
// validateConfig guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Documents.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
