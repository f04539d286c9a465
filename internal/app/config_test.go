package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shhac/minisql/internal/provider"
)

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Config{ConnectTimeout: provider.DefaultConnectTimeout},
		},
		{
			name: "all set",
			env: map[string]string{
				"MINISQL_DEBUG":           "true",
				"MINISQL_STORAGE_PATH":    "/tmp/minisql",
				"MINISQL_CONNECT_TIMEOUT": "3s",
			},
			want: Config{Debug: true, StoragePath: "/tmp/minisql", ConnectTimeout: 3 * time.Second},
		},
		{
			name: "garbage ignored",
			env: map[string]string{
				"MINISQL_DEBUG":           "sometimes",
				"MINISQL_CONNECT_TIMEOUT": "-5s",
			},
			want: Config{ConnectTimeout: provider.DefaultConnectTimeout},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"MINISQL_DEBUG", "MINISQL_STORAGE_PATH", "MINISQL_CONNECT_TIMEOUT"} {
				t.Setenv(k, tt.env[k])
			}
			assert.Equal(t, tt.want, *ConfigFromEnv())
		})
	}
}
