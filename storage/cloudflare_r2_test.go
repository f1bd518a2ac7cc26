package storage

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"host only", "https://files.example.com", "reports/tournament_1/a.json", "https://files.example.com/reports/tournament_1/a.json"},
		{"trailing slash", "https://files.example.com/", "reports/a.json", "https://files.example.com/reports/a.json"},
		{"base path", "https://cdn.example.com/cup", "/reports/a.json", "https://cdn.example.com/cup/reports/a.json"},
		{"empty key", "https://files.example.com", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := url.Parse(tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, publicURL(base, tt.key))
		})
	}
}

func TestNewCloudflareR2UploaderValidation(t *testing.T) {
	ctx := context.Background()
	full := CloudflareR2UploaderConfig{
		AccountID:       "acc",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "reports",
		PublicBaseURL:   "https://files.example.com",
	}

	missing := full
	missing.BucketName = ""
	_, err := NewCloudflareR2Uploader(ctx, missing)
	assert.ErrorIs(t, err, ErrInvalidR2Config)

	badURL := full
	badURL.PublicBaseURL = "files.example.com"
	_, err = NewCloudflareR2Uploader(ctx, badURL)
	assert.ErrorIs(t, err, ErrInvalidR2Config)

	up, err := NewCloudflareR2Uploader(ctx, full)
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/reports/x.json", up.GetPublicURL("reports/x.json"))
}
