package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		start    Config
		expected Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-g", "127.0.0.1:9091", "-d", "db", "-s", "secret",
				"-t", "30", "-b", "11", "-p", "creator", "-l", "warn",
			},
			expected: Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				EndpointAddrGRPC:            "127.0.0.1:9091",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 30 * time.Minute,
				BcryptCost:                  11,
				BookPolicy:                  "creator",
				LogLevel:                    "warn",
			},
		},
		{
			name:     "untouched validity keeps sub-minute value",
			args:     []string{"cmd", "-s", "k"},
			start:    Config{AccessTokenValidityDuration: 90 * time.Second},
			expected: Config{SecretKey: "k", AccessTokenValidityDuration: 90 * time.Second},
		},
		{
			name:    "bad int",
			args:    []string{"cmd", "-b", "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := tt.start

			err := parseFlags(&config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
