package config

import "time"

const (
	envConfigPath = "CONFIG_PATH"

	ProviderNaver   = "naver"
	ProviderFixture = "fixture"

	defaultPort           = "5000"
	defaultPageSize       = 4
	defaultFirstPageTTL   = 2 * time.Minute
	defaultTotalTTL       = 10 * time.Minute
	defaultFastTimeout    = 6 * time.Second
	defaultFastAttempts   = 2
	defaultMinInterval    = 250 * time.Millisecond
	defaultSessionTimeout = 90 * time.Second
	defaultResultsTTL     = 2 * time.Minute
	defaultWarmInterval   = 2 * time.Minute
	defaultMetricsPort    = "9090"

	linuxChromeBin = "/usr/bin/chromium"
)
