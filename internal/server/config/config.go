// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/server/auth"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the book review server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the JSON API.
//   - EndpointAddrGRPC: bind address for the gRPC health service.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Has no default.
//   - AccessTokenValidityDuration: token lifetime.
//   - TokenLeeway: tolerated clock skew when checking expiry.
//   - BcryptCost: work factor for password hashing.
//   - BookPolicy: who may delete books, one of the auth.BookPolicy values.
//   - LogLevel: slog level name.
type Config struct {
	EndpointAddrHTTP            string        `env:"HTTP_ADDRESS"`
	EndpointAddrGRPC            string        `env:"GRPC_ADDRESS"`
	DatabaseDSN                 string        `env:"DATABASE_DSN"`
	SecretKey                   string        `env:"JWT_SECRET"`
	AccessTokenValidityDuration time.Duration `env:"JWT_EXPIRES_IN"`
	TokenLeeway                 time.Duration `env:"JWT_LEEWAY"`
	BcryptCost                  int           `env:"BCRYPT_COST"`
	BookPolicy                  string        `env:"BOOK_POLICY"`
	LogLevel                    string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults. The signing
// secret is deliberately left empty.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.AccessTokenValidityDuration = time.Hour
	c.TokenLeeway = 0
	c.BcryptCost = bcrypt.DefaultCost
	c.BookPolicy = string(auth.BookPolicyAuthenticated)
	c.LogLevel = "info"
}

// Validate reports configuration that must stop the server from starting.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("token validity must be positive"))
	}
	if c.TokenLeeway < 0 {
		errs = append(errs, errors.New("token leeway must not be negative"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be within [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if !auth.BookPolicy(c.BookPolicy).Valid() {
		errs = append(errs, fmt.Errorf("unknown book policy %q", c.BookPolicy))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
