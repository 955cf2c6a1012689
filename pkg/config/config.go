// Package config loads folio.toml, the single configuration file shared by
// the server and the CLI.
//
// A config is built in three steps: the file is decoded, defaults fill every
// unset field, and a handful of environment variables override secrets and
// deployment-specific values. [Load] performs all three and validates the
// result.
//
//	cfg, err := config.Load("folio.toml")
//	if err != nil {
//	    return err
//	}
//	srv := server.New(cfg, source, logger)
package config

import (
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/scaduxx/folio/pkg/contact"
	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/errors"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "folio.toml"

// CMS drivers.
const (
	DriverSanity = "sanity"
	DriverFile   = "file"
	DriverMongo  = "mongo"
)

// Cache drivers.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Defaults.
const (
	DefaultAddr             = ":8080"
	DefaultReadTimeout      = 10 * time.Second
	DefaultWriteTimeout     = 30 * time.Second
	DefaultRequestTimeout   = 20 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultSanityProjectID  = "sjr8w888"
	DefaultSanityDataset    = "production"
	DefaultSanityAPIVersion = "2026-01-08"
	DefaultMongoDatabase    = "folio"
	DefaultMongoCollection  = "projects"
	DefaultCacheTTL         = 5 * time.Minute
	DefaultRedisPrefix      = "folio:"
	DefaultTitle            = "FX Portfolio"
	DefaultDescription      = "My VFX portfolio"
)

// Environment variables that override file values.
const (
	EnvAddr            = "FOLIO_ADDR"
	EnvSanityProjectID = "SANITY_PROJECT_ID"
	EnvSanityDataset   = "SANITY_DATASET"
	EnvSanityToken     = "SANITY_TOKEN"
	EnvMongoURI        = "MONGO_URI"
	EnvRedisURL        = "REDIS_URL"
)

// Config is the decoded folio.toml.
type Config struct {
	Server ServerConfig       `toml:"server"`
	Site   SiteConfig         `toml:"site"`
	CMS    CMSConfig          `toml:"cms"`
	Cache  CacheConfig        `toml:"cache"`
	Grid   content.GridPolicy `toml:"grid"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	RequestTimeout  Duration `toml:"request_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`

	// Static is an optional directory served under /static/ for client
	// logos and other assets.
	Static string `toml:"static"`
}

// SiteConfig holds the copy and links of the static pages.
type SiteConfig struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Owner       string `toml:"owner"`
	Tagline     string `toml:"tagline"`

	// About page.
	Heading string   `toml:"heading"`
	Bio     string   `toml:"bio"`
	Reel    string   `toml:"reel"`
	Focus   []string `toml:"focus"`
	Tools   []Tool   `toml:"tools"`
	Clients []Logo   `toml:"clients"`

	Contact contact.Profile `toml:"contact"`
	Socials []contact.Link  `toml:"socials"`
}

// Tool is one row of the about page's tools table.
type Tool struct {
	Category string `toml:"category"`
	Names    string `toml:"names"`
}

// Logo is a client logo on the about page.
type Logo struct {
	Name string `toml:"name"`
	Src  string `toml:"src"`
}

// CMSConfig selects and configures the content source.
type CMSConfig struct {
	Driver string       `toml:"driver"`
	Sanity SanityConfig `toml:"sanity"`
	File   FileConfig   `toml:"file"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// SanityConfig configures the Sanity query API client.
type SanityConfig struct {
	ProjectID  string `toml:"project_id"`
	Dataset    string `toml:"dataset"`
	APIVersion string `toml:"api_version"`
	Token      string `toml:"token"`
	UseCDN     bool   `toml:"use_cdn"`

	// BaseURL replaces the project API host, mostly for tests.
	BaseURL string `toml:"base_url"`
}

// FileConfig configures a file-backed content source.
type FileConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// MongoConfig configures the MongoDB content source.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig selects the query cache backend.
type CacheConfig struct {
	Driver string      `toml:"driver"`
	Dir    string      `toml:"dir"`
	TTL    Duration    `toml:"ttl"`
	Redis  RedisConfig `toml:"redis"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	URL      string `toml:"url"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Default returns a config with every default applied.
func Default() Config {
	c := Config{Grid: content.DefaultGridPolicy()}
	c.SetDefaults()
	return c
}

// Load reads path, applies defaults and environment overrides, and
// validates the result. An empty path skips the file. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	c := Config{Grid: content.DefaultGridPolicy()}
	if path != "" {
		md, err := toml.DecodeFile(path, &c)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	}
	c.SetDefaults()
	c.ApplyEnv(os.LookupEnv)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	c.SetServerDefaults()
	c.SetSiteDefaults()
	c.SetCMSDefaults()
	c.SetCacheDefaults()
	c.SetGridDefaults()
}

// SetServerDefaults fills unset listener settings.
func (c *Config) SetServerDefaults() {
	s := &c.Server
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.ReadTimeout.Duration == 0 {
		s.ReadTimeout.Duration = DefaultReadTimeout
	}
	if s.WriteTimeout.Duration == 0 {
		s.WriteTimeout.Duration = DefaultWriteTimeout
	}
	if s.RequestTimeout.Duration == 0 {
		s.RequestTimeout.Duration = DefaultRequestTimeout
	}
	if s.ShutdownTimeout.Duration == 0 {
		s.ShutdownTimeout.Duration = DefaultShutdownTimeout
	}
}

// SetSiteDefaults fills the page title and description.
func (c *Config) SetSiteDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = DefaultTitle
	}
	if c.Site.Description == "" {
		c.Site.Description = DefaultDescription
	}
	if c.Site.Heading == "" {
		c.Site.Heading = "Let's meet"
	}
}

// SetCMSDefaults selects Sanity and fills the settings of every driver.
func (c *Config) SetCMSDefaults() {
	m := &c.CMS
	if m.Driver == "" {
		m.Driver = DriverSanity
	}
	if m.Sanity.ProjectID == "" {
		m.Sanity.ProjectID = DefaultSanityProjectID
	}
	if m.Sanity.Dataset == "" {
		m.Sanity.Dataset = DefaultSanityDataset
	}
	if m.Sanity.APIVersion == "" {
		m.Sanity.APIVersion = DefaultSanityAPIVersion
	}
	if m.Mongo.Database == "" {
		m.Mongo.Database = DefaultMongoDatabase
	}
	if m.Mongo.Collection == "" {
		m.Mongo.Collection = DefaultMongoCollection
	}
}

// SetCacheDefaults disables caching unless a driver is configured.
func (c *Config) SetCacheDefaults() {
	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheNone
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = DefaultCacheTTL
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = DefaultRedisPrefix
	}
}

// SetGridDefaults fills unset grid policy values. Spacing and padding are
// left alone since zero is a meaningful value for both; [Load] seeds them
// from [content.DefaultGridPolicy] before decoding.
func (c *Config) SetGridDefaults() {
	g := &c.Grid
	d := content.DefaultGridPolicy()
	if g.MaxWidth == 0 {
		g.MaxWidth = d.MaxWidth
	}
	if g.SmallScreenWidth == 0 {
		g.SmallScreenWidth = d.SmallScreenWidth
	}
	if g.SmallScreenRatio == 0 {
		g.SmallScreenRatio = d.SmallScreenRatio
	}
	if g.DefaultRatio == 0 {
		g.DefaultRatio = d.DefaultRatio
	}
	if g.TargetRowHeight == 0 {
		g.TargetRowHeight = d.TargetRowHeight
	}
	if g.LastRow == "" {
		g.LastRow = d.LastRow
	}
}

// ApplyEnv overrides values from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvAddr, &c.Server.Addr)
	set(EnvSanityProjectID, &c.CMS.Sanity.ProjectID)
	set(EnvSanityDataset, &c.CMS.Sanity.Dataset)
	set(EnvSanityToken, &c.CMS.Sanity.Token)
	set(EnvMongoURI, &c.CMS.Mongo.URI)
	set(EnvRedisURL, &c.Cache.Redis.URL)
}

// Validate checks driver names and the settings each driver requires.
func (c *Config) Validate() error {
	if !slices.Contains([]string{DriverSanity, DriverFile, DriverMongo}, c.CMS.Driver) {
		return invalid("cms.driver must be sanity, file or mongo, got %q", c.CMS.Driver)
	}
	switch c.CMS.Driver {
	case DriverSanity:
		if c.CMS.Sanity.ProjectID == "" || c.CMS.Sanity.Dataset == "" {
			return invalid("cms.sanity requires project_id and dataset")
		}
	case DriverFile:
		if c.CMS.File.Path == "" {
			return invalid("cms.file.path is required")
		}
	case DriverMongo:
		if c.CMS.Mongo.URI == "" {
			return invalid("cms.mongo.uri is required (or set %s)", EnvMongoURI)
		}
	}

	switch c.Cache.Driver {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.Redis.URL == "" && c.Cache.Redis.Addr == "" {
			return invalid("cache.redis requires url or addr (or set %s)", EnvRedisURL)
		}
	default:
		return invalid("cache.driver must be none, file or redis, got %q", c.Cache.Driver)
	}

	if err := c.Grid.LastRow.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "grid.last_row")
	}
	if c.Grid.TargetRowHeight <= 0 || c.Grid.MaxWidth <= 0 {
		return invalid("grid.max_width and grid.target_row_height must be positive")
	}
	if c.Server.Static != "" {
		if info, err := os.Stat(c.Server.Static); err != nil || !info.IsDir() {
			return invalid("server.static %q is not a directory", c.Server.Static)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// Duration is a time.Duration written as "30s" or "5m" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler. A bare integer is
// read as seconds.
func (d *Duration) UnmarshalText(b []byte) error {
	if n, err := strconv.Atoi(string(b)); err == nil {
		d.Duration = time.Duration(n) * time.Second
		return nil
	}
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
