package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port     string `yaml:"port" env:"PORT" env-default:"5000"`
	Provider string `yaml:"provider" env:"PROVIDER" env-default:"naver"`
	Timezone string `yaml:"timezone" env:"TIMEZONE" env-default:"Asia/Seoul"`

	News    NewsConfig    `yaml:"news"`
	Naver   NaverConfig   `yaml:"naver"`
	Browser BrowserConfig `yaml:"browser"`
	Results ResultsConfig `yaml:"results"`
	Warm    WarmConfig    `yaml:"warm"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// NewsConfig controls pagination and the two news caches.
type NewsConfig struct {
	PageSize     int           `yaml:"page_size" env:"NEWS_PAGE_SIZE" env-default:"4"`
	FirstPageTTL time.Duration `yaml:"first_page_ttl" env:"NEWS_FIRST_PAGE_TTL" env-default:"2m"`
	TotalTTL     time.Duration `yaml:"total_ttl" env:"NEWS_TOTAL_TTL" env-default:"10m"`
}

// ResultsConfig controls the recent-results cache.
type ResultsConfig struct {
	TTL time.Duration `yaml:"ttl" env:"RESULTS_TTL" env-default:"2m"`
}

// WarmConfig controls the optional first-page cache warmer.
type WarmConfig struct {
	Enabled  bool          `yaml:"enabled" env:"WARM_ENABLED" env-default:"false"`
	Interval time.Duration `yaml:"interval" env:"WARM_INTERVAL" env-default:"2m"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from the YAML file named by CONFIG_PATH, when set,
// and then from environment variables, which take priority. Non-positive
// sizes and durations fall back to their defaults.
func Load() (Config, error) {
	var cfg Config
	if path := os.Getenv(envConfigPath); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}

	cfg.normalize()
	cfg.Browser = cfg.Browser.withPlatformDefaults(currentOS)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.News.PageSize = positiveOr(c.News.PageSize, defaultPageSize)
	c.News.FirstPageTTL = positiveOr(c.News.FirstPageTTL, defaultFirstPageTTL)
	c.News.TotalTTL = positiveOr(c.News.TotalTTL, defaultTotalTTL)
	c.Naver.FastTimeout = positiveOr(c.Naver.FastTimeout, defaultFastTimeout)
	c.Naver.FastAttempts = positiveOr(c.Naver.FastAttempts, defaultFastAttempts)
	c.Naver.MinInterval = positiveOr(c.Naver.MinInterval, defaultMinInterval)
	c.Browser.SessionTimeout = positiveOr(c.Browser.SessionTimeout, defaultSessionTimeout)
	c.Results.TTL = positiveOr(c.Results.TTL, defaultResultsTTL)
	c.Warm.Interval = positiveOr(c.Warm.Interval, defaultWarmInterval)
}

func (c Config) validate() error {
	switch c.Provider {
	case ProviderNaver, ProviderFixture:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	if c.Port == "" {
		return fmt.Errorf("config: port is required")
	}
	return nil
}

func positiveOr[T int | time.Duration](v, fallback T) T {
	if v <= 0 {
		return fallback
	}
	return v
}
