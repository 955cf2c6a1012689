package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAddr, EnvSanityProjectID, EnvSanityDataset, EnvSanityToken, EnvMongoURI, EnvRedisURL} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, DefaultAddr, c.Server.Addr)
	assert.Equal(t, DefaultRequestTimeout, c.Server.RequestTimeout.Duration)
	assert.Equal(t, DriverSanity, c.CMS.Driver)
	assert.Equal(t, "sjr8w888", c.CMS.Sanity.ProjectID)
	assert.Equal(t, "production", c.CMS.Sanity.Dataset)
	assert.Equal(t, "2026-01-08", c.CMS.Sanity.APIVersion)
	assert.False(t, c.CMS.Sanity.UseCDN)
	assert.Equal(t, CacheNone, c.Cache.Driver)
	assert.Equal(t, 1600.0, c.Grid.MaxWidth)
	assert.Equal(t, 340.0, c.Grid.TargetRowHeight)
	assert.Equal(t, 10.0, c.Grid.BoxSpacing)
	assert.Equal(t, justify.LastRowFill, c.Grid.LastRow)
	assert.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[server]
addr = ":9000"
request_timeout = "5s"

[site]
title = "Scaduxx"
owner = "Vasilis Chatziantoniou"
focus = ["FX / Sim", "R&D"]

[site.contact]
email = "hello@example.com"
location = "Greece"

[[site.clients]]
name = "Nike"
src = "/static/clients/nike.svg"

[cms]
driver = "file"

[cms.file]
path = "projects.yaml"
watch = true

[cache]
driver = "file"
ttl = 60

[grid]
target_row_height = 300
box_spacing = 0
last_row = "natural"
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Server.Addr)
	assert.Equal(t, 5*time.Second, c.Server.RequestTimeout.Duration)
	assert.Equal(t, DefaultShutdownTimeout, c.Server.ShutdownTimeout.Duration)
	assert.Equal(t, "Scaduxx", c.Site.Title)
	assert.Equal(t, DefaultDescription, c.Site.Description)
	assert.Equal(t, []string{"FX / Sim", "R&D"}, c.Site.Focus)
	assert.Equal(t, "hello@example.com", c.Site.Contact.Email)
	require.Len(t, c.Site.Clients, 1)
	assert.Equal(t, "Nike", c.Site.Clients[0].Name)
	assert.Equal(t, DriverFile, c.CMS.Driver)
	assert.True(t, c.CMS.File.Watch)
	assert.Equal(t, time.Minute, c.Cache.TTL.Duration)
	assert.Equal(t, 300.0, c.Grid.TargetRowHeight)
	assert.Equal(t, 0.0, c.Grid.BoxSpacing, "explicit zero spacing is kept")
	assert.Equal(t, 1600.0, c.Grid.MaxWidth)
	assert.Equal(t, justify.LastRowNatural, c.Grid.LastRow)
}

func TestLoadEmptyPath(t *testing.T) {
	clearEnv(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[server]\nadress = \":80\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
	assert.Contains(t, err.Error(), "server.adress")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAddr, ":7000")
	t.Setenv(EnvSanityProjectID, "abc123")
	t.Setenv(EnvSanityDataset, "staging")
	t.Setenv(EnvSanityToken, "secret")
	t.Setenv(EnvMongoURI, "mongodb://db:27017")
	t.Setenv(EnvRedisURL, "redis://cache:6379/0")

	c := Default()
	c.ApplyEnv(os.LookupEnv)

	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, "abc123", c.CMS.Sanity.ProjectID)
	assert.Equal(t, "staging", c.CMS.Sanity.Dataset)
	assert.Equal(t, "secret", c.CMS.Sanity.Token)
	assert.Equal(t, "mongodb://db:27017", c.CMS.Mongo.URI)
	assert.Equal(t, "redis://cache:6379/0", c.Cache.Redis.URL)
}

func TestApplyEnvIgnoresEmpty(t *testing.T) {
	c := Default()
	c.ApplyEnv(func(string) (string, bool) { return "", true })
	assert.Equal(t, DefaultAddr, c.Server.Addr)
	assert.Equal(t, DefaultSanityProjectID, c.CMS.Sanity.ProjectID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.CMS.Driver = "postgres" }, "cms.driver"},
		{"file without path", func(c *Config) { c.CMS.Driver = DriverFile }, "cms.file.path"},
		{"mongo without uri", func(c *Config) { c.CMS.Driver = DriverMongo }, "cms.mongo.uri"},
		{"sanity without dataset", func(c *Config) { c.CMS.Sanity.Dataset = "" }, "cms.sanity"},
		{"unknown cache", func(c *Config) { c.Cache.Driver = "memcached" }, "cache.driver"},
		{"redis without address", func(c *Config) { c.Cache.Driver = CacheRedis }, "cache.redis"},
		{"bad last row", func(c *Config) { c.Grid.LastRow = "center" }, "grid.last_row"},
		{"zero row height", func(c *Config) { c.Grid.TargetRowHeight = -1 }, "grid.max_width"},
		{"static not a dir", func(c *Config) { c.Server.Static = filepath.Join(t.TempDir(), "nope") }, "server.static"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidConfig, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30s", 30 * time.Second, false},
		{"5m", 5 * time.Minute, false},
		{"15", 15 * time.Second, false},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}
