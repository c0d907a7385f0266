package config

import (
	"github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"lojavirtual.db"` // sqlite file in project root
	LogFile  string `envconfig:"LOG_FILE" default:"./lojavirtual.log"`
	LogMode  string `envconfig:"LOG_MODE" default:"development"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	JWTIssuer string `envconfig:"JWT_ISSUER"`

	// PublicBaseURL prefixes the confirmation endpoint handed to payment gateways.
	PublicBaseURL    string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost"`
	PhotoBaseURL     string `envconfig:"PHOTO_BASE_URL" default:"https://bucket.io"`
	CloudinaryURL    string `envconfig:"CLOUDINARY_URL"`
	CloudinaryFolder string `envconfig:"CLOUDINARY_FOLDER" default:"products"`

	RateLimit int `envconfig:"RATE_LIMIT" default:"120"`
	BodyLimit int `envconfig:"BODY_LIMIT" default:"1048576"` // 1 MiB
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Fields returns the non-secret settings for the startup log line.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"port":            c.Port,
		"db_driver":       c.DBDriver,
		"db_dsn":          c.redactedDSN(),
		"log_file":        c.LogFile,
		"log_mode":        c.LogMode,
		"public_base_url": c.PublicBaseURL,
		"cloudinary":      c.CloudinaryURL != "",
		"rate_limit":      c.RateLimit,
	}
}

// redactedDSN drops the password from a MySQL DSN. A DSN that does not parse
// is not logged at all.
func (c Config) redactedDSN() string {
	if c.DBDriver != "mysql" {
		return c.DBDSN
	}
	dsn, err := mysql.ParseDSN(c.DBDSN)
	if err != nil {
		return ""
	}
	if dsn.Passwd != "" {
		dsn.Passwd = "xxxxx"
	}
	return dsn.FormatDSN()
}
