package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultZohoScopes are requested when SCOPES_ZOHO is not set
var DefaultZohoScopes = []string{
	"ZohoCRM.modules.contacts.ALL",
	"ZohoCRM.users.READ",
}

// Config holds all application configuration
type Config struct {
	AppEnv   string      `toml:"app_env"`
	Port     string      `toml:"port"`
	LogLevel string      `toml:"log_level"`
	Zoho     ZohoConfig  `toml:"zoho"`
	Siigo    SiigoConfig `toml:"siigo"`
}

// ZohoConfig holds Zoho CRM OAuth client and API settings
type ZohoConfig struct {
	TokenURL     string   `toml:"token_url"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	RedirectURI  string   `toml:"redirect_uri"`
	Scopes       []string `toml:"scopes"`
	ContactsURL  string   `toml:"contacts_url"`
	AllowedUsers []string `toml:"allowed_users"` // CRM users allowed to trigger a sync
}

// SiigoConfig holds Siigo API credentials
type SiigoConfig struct {
	AuthURL   string `toml:"auth_url"`
	Username  string `toml:"username"`
	AccessKey string `toml:"access_key"`
	PartnerID string `toml:"partner_id"`
}

// Load loads configuration from an optional TOML file (CONFIG_FILE) and
// environment variables. Environment variables win over the file.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a TOML configuration file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.AppEnv = getEnv("APP_ENV", orDefault(cfg.AppEnv, "development"))
	cfg.Port = getEnv("PORT", orDefault(cfg.Port, "5000"))
	cfg.LogLevel = getEnv("LOG_LEVEL", orDefault(cfg.LogLevel, "info"))

	cfg.Zoho.TokenURL = getEnv("TOKEN_URL_ZOHO", cfg.Zoho.TokenURL)
	cfg.Zoho.ClientID = getEnv("CLIENT_ID_ZOHO", cfg.Zoho.ClientID)
	cfg.Zoho.ClientSecret = getEnv("CLIENT_SECRET_ZOHO", cfg.Zoho.ClientSecret)
	cfg.Zoho.RedirectURI = getEnv("REDIRECT_URI_ZOHO", cfg.Zoho.RedirectURI)
	cfg.Zoho.ContactsURL = getEnv("CONTACTS_URL_ZOHO", cfg.Zoho.ContactsURL)
	if v := os.Getenv("SCOPES_ZOHO"); v != "" {
		cfg.Zoho.Scopes = SplitList(v)
	}
	if len(cfg.Zoho.Scopes) == 0 {
		cfg.Zoho.Scopes = DefaultZohoScopes
	}
	if v := os.Getenv("ALLOWED_USERS_ZOHO"); v != "" {
		cfg.Zoho.AllowedUsers = SplitList(v)
	}

	cfg.Siigo.AuthURL = getEnv("AUTH_URL_SIIGO", cfg.Siigo.AuthURL)
	cfg.Siigo.Username = getEnv("SIIGO_USERNAME", cfg.Siigo.Username)
	cfg.Siigo.AccessKey = getEnv("SIIGO_ACCESS_KEY", cfg.Siigo.AccessKey)
	cfg.Siigo.PartnerID = getEnv("SIIGO_PARTNER", cfg.Siigo.PartnerID)
}

// Validate reports the first missing required setting
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"TOKEN_URL_ZOHO", c.Zoho.TokenURL},
		{"CLIENT_ID_ZOHO", c.Zoho.ClientID},
		{"CLIENT_SECRET_ZOHO", c.Zoho.ClientSecret},
		{"REDIRECT_URI_ZOHO", c.Zoho.RedirectURI},
		{"CONTACTS_URL_ZOHO", c.Zoho.ContactsURL},
		{"AUTH_URL_SIIGO", c.Siigo.AuthURL},
		{"SIIGO_USERNAME", c.Siigo.Username},
		{"SIIGO_ACCESS_KEY", c.Siigo.AccessKey},
		{"SIIGO_PARTNER", c.Siigo.PartnerID},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.key)
		}
	}
	return nil
}

// SplitList splits a comma-separated value, dropping blanks.
// Entries are trimmed but otherwise kept as written.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func orDefault(value, def string) string {
	if value != "" {
		return value
	}
	return def
}
