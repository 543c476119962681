package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Bitbucket BitbucketConfig
	Cache     CacheConfig
	Session   SessionConfig
	Policy    PolicyConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type BitbucketConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	APIURL       string
	Concurrency  int
}

type CacheConfig struct {
	TTL  time.Duration
	Size int
}

type SessionConfig struct {
	Secret         string
	AdminUsernames []string
}

// PolicyConfig holds switches for attribution policies that need product sign-off.
type PolicyConfig struct {
	OwnerFallback bool
}

type LogConfig struct {
	Level string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := FromViper(newViper())
	if err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("READ_TIMEOUT", 15)
	v.SetDefault("WRITE_TIMEOUT", 15)
	v.SetDefault("DB_PATH", "./coursetrack.db")
	v.SetDefault("BITBUCKET_CLIENT_ID", "")
	v.SetDefault("BITBUCKET_CLIENT_SECRET", "")
	v.SetDefault("BITBUCKET_CALLBACK_URL", "")
	v.SetDefault("BITBUCKET_API_URL", "https://api.bitbucket.org/2.0")
	v.SetDefault("BITBUCKET_CONCURRENCY", 4)
	v.SetDefault("CACHE_TTL", time.Hour)
	v.SetDefault("CACHE_SIZE", 2048)
	v.SetDefault("SESSION_SECRET", "default-secret-key")
	v.SetDefault("ADMIN_USERNAMES", "")
	v.SetDefault("OWNER_FALLBACK_ENABLED", false)
	v.SetDefault("LOG_LEVEL", "info")

	return v
}

// FromViper builds a validated Config from an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Mode:         v.GetString("GIN_MODE"),
			ReadTimeout:  v.GetInt("READ_TIMEOUT"),
			WriteTimeout: v.GetInt("WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("DB_PATH"),
		},
		Bitbucket: BitbucketConfig{
			ClientID:     v.GetString("BITBUCKET_CLIENT_ID"),
			ClientSecret: v.GetString("BITBUCKET_CLIENT_SECRET"),
			CallbackURL:  v.GetString("BITBUCKET_CALLBACK_URL"),
			APIURL:       strings.TrimRight(v.GetString("BITBUCKET_API_URL"), "/"),
			Concurrency:  clamp(v.GetInt("BITBUCKET_CONCURRENCY"), 1, 8),
		},
		Cache: CacheConfig{
			TTL:  v.GetDuration("CACHE_TTL"),
			Size: v.GetInt("CACHE_SIZE"),
		},
		Session: SessionConfig{
			Secret:         v.GetString("SESSION_SECRET"),
			AdminUsernames: splitList(v.GetString("ADMIN_USERNAMES")),
		},
		Policy: PolicyConfig{
			OwnerFallback: v.GetBool("OWNER_FALLBACK_ENABLED"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.Database.Path == "" {
		return errors.New("DB_PATH must not be empty")
	}
	if c.Bitbucket.APIURL == "" {
		return errors.New("BITBUCKET_API_URL must not be empty")
	}
	if c.Cache.TTL < 0 {
		return errors.New("CACHE_TTL must not be negative")
	}
	if c.Cache.Size <= 0 {
		return errors.New("CACHE_SIZE must be positive")
	}
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET must not be empty")
	}
	return nil
}

// IsAdmin reports whether a Bitbucket username is listed in ADMIN_USERNAMES
func (c *Config) IsAdmin(username string) bool {
	for _, admin := range c.Session.AdminUsernames {
		if strings.EqualFold(admin, username) {
			return true
		}
	}
	return false
}

// splitList splits a comma separated env value, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
