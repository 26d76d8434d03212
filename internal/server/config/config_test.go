package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Empty(t, c.DatabaseDSN)
	assert.Empty(t, c.SecretKey, "secret must never default")
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, time.Duration(0), c.TokenLeeway)
	assert.Equal(t, bcrypt.DefaultCost, c.BcryptCost)
	assert.Equal(t, string(auth.BookPolicyAuthenticated), c.BookPolicy)
	assert.Equal(t, "info", c.LogLevel)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.LoadDefaults()
		c.SecretKey = "k"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "creator policy ok", mutate: func(c *Config) { c.BookPolicy = string(auth.BookPolicyCreator) }},
		{name: "missing secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: "JWT_SECRET is required"},
		{name: "zero ttl", mutate: func(c *Config) { c.AccessTokenValidityDuration = 0 }, wantErr: "token validity"},
		{name: "negative leeway", mutate: func(c *Config) { c.TokenLeeway = -time.Second }, wantErr: "leeway"},
		{name: "cost too low", mutate: func(c *Config) { c.BcryptCost = 1 }, wantErr: "bcrypt cost"},
		{name: "unknown policy", mutate: func(c *Config) { c.BookPolicy = "admins" }, wantErr: "unknown book policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"secret_key":   "from-json",
		"database_dsn": "postgres://json",
		"book_policy":  "creator",
	})
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	os.Args = []string{"server", "-c", path, "-a", ":9999"}

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.SecretKey, "env overrides json")
	assert.Equal(t, "postgres://json", c.DatabaseDSN)
	assert.Equal(t, string(auth.BookPolicyCreator), c.BookPolicy)
	assert.Equal(t, 90*time.Minute, c.AccessTokenValidityDuration, "unset -t keeps env value")
	assert.Equal(t, ":9999", c.EndpointAddrHTTP, "flags override everything")
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
}

func TestLoadConfig_BadEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"server"}
	t.Setenv("BCRYPT_COST", "lots")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
