package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/daniilsolovey/blogicum/internal/media"
	"github.com/go-pg/pg/v10"
)

const (
	MediaDriverFile = "file"
	MediaDriverS3   = "s3"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host     string
		Port     int
		TimeZone string
		// LogQueries logs every SQL query at debug level.
		LogQueries bool
	}
	Session struct {
		Secret string
		// MaxAge is the session cookie lifetime in seconds.
		MaxAge int
		Secure bool
	}
	Media struct {
		Driver    string
		Dir       string
		URLPrefix string
		S3        media.S3Config
	}
	// AuthRateLimit is the number of login and registration attempts per IP and minute.
	AuthRateLimit int
}

// Default returns the configuration used for keys missing in the file.
func Default() Config {
	var cfg Config
	cfg.Database = pg.Options{
		Addr:       "localhost:5432",
		User:       "postgres",
		Database:   "blogicum",
		PoolSize:   5,
		MaxRetries: 3,
	}
	cfg.App.Host = "0.0.0.0"
	cfg.App.Port = 8000
	cfg.App.TimeZone = "UTC"
	cfg.Session.MaxAge = 14 * 24 * 60 * 60
	cfg.Media.Driver = MediaDriverFile
	cfg.Media.Dir = "media"
	cfg.Media.URLPrefix = "/media/"
	cfg.AuthRateLimit = 10
	return cfg
}

// Load reads the TOML file over the defaults. DATABASE_URL, when set,
// replaces the connection settings of the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		if err := cfg.SetDatabaseURL(databaseURL); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SetDatabaseURL replaces the connection settings, keeping pool options.
func (c *Config) SetDatabaseURL(databaseURL string) error {
	opt, err := pg.ParseURL(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	c.Database.Addr = opt.Addr
	c.Database.User = opt.User
	c.Database.Password = opt.Password
	c.Database.Database = opt.Database
	c.Database.TLSConfig = opt.TLSConfig
	return nil
}

// DatabaseURL returns the connection settings as a postgres:// URL.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   c.Database.Addr,
		Path:   "/" + c.Database.Database,
	}

	if c.Database.Password != "" {
		u.User = url.UserPassword(c.Database.User, c.Database.Password)
	} else {
		u.User = url.User(c.Database.User)
	}

	if c.Database.TLSConfig == nil {
		u.RawQuery = "sslmode=disable"
	}

	return u.String()
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.App.TimeZone, err)
	}
	return loc, nil
}

func (c Config) Validate() error {
	var errs []error

	if len(c.Session.Secret) < 32 {
		errs = append(errs, errors.New("session secret must be at least 32 characters"))
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	switch c.Media.Driver {
	case MediaDriverFile:
		if c.Media.Dir == "" {
			errs = append(errs, errors.New("media dir is required for the file driver"))
		}
	case MediaDriverS3:
		if c.Media.S3.Bucket == "" {
			errs = append(errs, errors.New("media bucket is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown media driver %q", c.Media.Driver))
	}

	return errors.Join(errs...)
}
