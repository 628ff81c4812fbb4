package config

import (
	"runtime"
	"time"
)

var currentOS = runtime.GOOS

// NaverConfig controls the portal endpoints and the fast fetch strategy.
type NaverConfig struct {
	BaseURL      string        `yaml:"base_url" env:"NAVER_BASE_URL" env-default:"https://m.sports.naver.com"`
	UserAgent    string        `yaml:"user_agent" env:"NAVER_USER_AGENT"`
	FastTimeout  time.Duration `yaml:"fast_timeout" env:"NAVER_FAST_TIMEOUT" env-default:"6s"`
	FastAttempts int           `yaml:"fast_attempts" env:"NAVER_FAST_ATTEMPTS" env-default:"2"`
	// MinInterval spaces consecutive fast requests.
	MinInterval time.Duration `yaml:"min_interval" env:"NAVER_MIN_INTERVAL" env-default:"250ms"`
	// Season is the standings season. Zero means the current year.
	Season int `yaml:"season" env:"NAVER_SEASON"`
}

// BrowserConfig locates the headless browser.
type BrowserConfig struct {
	ChromeBin      string        `yaml:"chrome_bin" env:"CHROME_BIN"`
	RemoteURL      string        `yaml:"remote_url" env:"CHROME_REMOTE_URL"`
	SessionTimeout time.Duration `yaml:"session_timeout" env:"BROWSER_SESSION_TIMEOUT" env-default:"90s"`
}

// withPlatformDefaults fills ChromeBin for the host OS. On Linux the distro
// chromium package is assumed; elsewhere the binary is left empty so an
// installed Chrome is discovered. A remote browser needs no binary.
func (b BrowserConfig) withPlatformDefaults(goos string) BrowserConfig {
	if b.ChromeBin != "" || b.RemoteURL != "" {
		return b
	}
	if goos == "linux" {
		b.ChromeBin = linuxChromeBin
	}
	return b
}
