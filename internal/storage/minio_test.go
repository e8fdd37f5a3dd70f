// internal/storage/minio_test.go
package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternaklab/farmstock/internal/config"
)

func validStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Enabled:   true,
		Endpoint:  "minio.example.com:9000",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "farmstock-reports",
		Region:    "us-east-1",
		UseSSL:    true,
	}
}

func TestNewMinioClientValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.StorageConfig)
	}{
		{"missing endpoint", func(c *config.StorageConfig) { c.Endpoint = "" }},
		{"missing access key", func(c *config.StorageConfig) { c.AccessKey = "" }},
		{"missing secret key", func(c *config.StorageConfig) { c.SecretKey = "" }},
		{"missing bucket", func(c *config.StorageConfig) { c.Bucket = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStorageConfig()
			tt.mutate(&cfg)
			_, err := NewMinioClient(cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewMinioClientStripsScheme(t *testing.T) {
	// Construction does not dial; a scheme-prefixed endpoint must still
	// produce a usable client.
	for _, endpoint := range []string{
		"minio.example.com:9000",
		"https://minio.example.com:9000",
		"http://minio.example.com:9000",
	} {
		cfg := validStorageConfig()
		cfg.Endpoint = endpoint
		client, err := NewMinioClient(cfg)
		require.NoError(t, err, endpoint)
		assert.NotNil(t, client)
	}
}
