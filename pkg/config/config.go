package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/goliatone/go-config/cfgx"
)

// Config captures module-level configuration knobs. Feature packages
// (resolver, linkset, storage wiring) pull from these nested structs.
type Config struct {
	Resolver    ResolverConfig    `mapstructure:"resolver" json:"resolver"`
	Persistence PersistenceConfig `mapstructure:"persistence" json:"persistence"`
	Cache       CacheConfig       `mapstructure:"cache" json:"cache"`
}

// ResolverConfig controls canonical URL construction and header limits.
type ResolverConfig struct {
	// ResolverDomain is the public base URL identifiers resolve under.
	// Required, no default.
	ResolverDomain string `mapstructure:"resolver_domain" json:"resolver_domain"`
	// LinkTypeVocDomain prefixes extension-relation URIs in linksets.
	LinkTypeVocDomain string `mapstructure:"link_type_voc_domain" json:"link_type_voc_domain"`
	// LinkHeaderMaxSize caps the Link header in bytes. Kept as a string so
	// host config layers can pass it through uninterpreted; validated as a
	// plain positive integer, no decimals.
	LinkHeaderMaxSize string `mapstructure:"link_header_max_size" json:"link_header_max_size"`
}

// PersistenceConfig selects the storage backend for identifier records.
type PersistenceConfig struct {
	Driver string `mapstructure:"driver" json:"driver"`
	DSN    string `mapstructure:"dsn" json:"dsn"`
}

// CacheConfig scopes the optional identifier-record read cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl" json:"ttl"`
}

const defaultLinkHeaderMaxSize = "8192"

// Defaults returns the baseline configuration. ResolverDomain deliberately
// has no default; hosts must provide it.
func Defaults() Config {
	return Config{
		Resolver: ResolverConfig{
			LinkTypeVocDomain: "https://ref.gs1.org/voc",
			LinkHeaderMaxSize: defaultLinkHeaderMaxSize,
		},
		Persistence: PersistenceConfig{
			Driver: "sqlite",
			DSN:    "file:./data/linkresolver.db?cache=shared",
		},
		Cache: CacheConfig{
			TTL: time.Minute,
		},
	}
}

// Validate ensures required fields are present and sane. Violations here are
// fatal at startup and never recovered.
func (c *Config) Validate() error {
	if c.Resolver.ResolverDomain == "" {
		return errors.New("resolver.resolver_domain is required")
	}
	if _, err := c.Resolver.HeaderBudget(); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0")
	}
	return nil
}

// HeaderBudget parses LinkHeaderMaxSize, rejecting anything that is not a
// bare positive integer (decimals included).
func (r ResolverConfig) HeaderBudget() (int, error) {
	raw := r.LinkHeaderMaxSize
	if raw == "" {
		raw = defaultLinkHeaderMaxSize
	}
	for _, ch := range raw {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("resolver.link_header_max_size must be a positive integer, got %q", r.LinkHeaderMaxSize)
		}
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("resolver.link_header_max_size must be a positive integer, got %q", r.LinkHeaderMaxSize)
	}
	if size <= 0 {
		return 0, fmt.Errorf("resolver.link_header_max_size must be > 0, got %q", r.LinkHeaderMaxSize)
	}
	return size, nil
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// While cfgx.Build still returns zero values, we fallback to a lightweight
// decoder to keep smoke tests meaningful.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Resolver.LinkTypeVocDomain == "" {
		c.Resolver.LinkTypeVocDomain = defaults.Resolver.LinkTypeVocDomain
	}
	if c.Resolver.LinkHeaderMaxSize == "" {
		c.Resolver.LinkHeaderMaxSize = defaults.Resolver.LinkHeaderMaxSize
	}
	if c.Persistence.Driver == "" {
		c.Persistence.Driver = defaults.Persistence.Driver
	}
	if c.Persistence.DSN == "" {
		c.Persistence.DSN = defaults.Persistence.DSN
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = defaults.Cache.TTL
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
