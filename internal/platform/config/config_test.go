// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/platform/config"
)

/*
TestLoad_Defaults checks the defaults applied when only required variables are set.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sophia")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("IIIF_URL", "https://iiif.example.org/images")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 10*time.Second, cfg.IIIFTimeout)
	assert.Equal(t, "https://iiif.example.org/images/", cfg.IIIFURL)
	assert.Equal(t, 10, cfg.AutocompleteLimit)
	assert.Equal(t, 20, cfg.AutocompleteMaxResults)
	assert.Equal(t, 100.0, cfg.RateLimitRPS)
	assert.Equal(t, 150, cfg.RateLimitBurst)
}

/*
TestLoad_MissingRequired ensures a missing DATABASE_URL is reported.
*/
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sophia")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestConfig_AllowedOrigins tests the parsing of EXTRA_ORIGINS.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "https://a.example", []string{"https://a.example"}},
		{"trimmed_and_blank_dropped", " https://a.example , ,https://b.example", []string{"https://a.example", "https://b.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{ExtraOrigins: tt.value}
			assert.Equal(t, tt.want, cfg.AllowedOrigins())
		})
	}
}
