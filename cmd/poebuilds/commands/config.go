package commands

import (
	"poebuilds/lib/configutil"
	"poebuilds/lib/scrapers/poeforum"
	"time"
)

// zero TimeoutSec disables the request timeout, zero RequestsPerSec
// disables pacing of `fetch --from`.
type Config struct {
	BaseUrl          string            `json:"base_url"`
	Headers          map[string]string `json:"headers"`
	TimeoutSec       float64           `json:"timeout_sec"`
	CloudflareBypass bool              `json:"cloudflare_bypass"`

	// discovery
	Output        string   `json:"output"`
	PagesPerClass int      `json:"pages_per_class"`
	DelayMeanSec  float64  `json:"delay_mean_sec"`
	Classes       []string `json:"classes"`

	// fetch
	OutDir         string  `json:"out_dir"`
	RequestsPerSec float64 `json:"requests_per_sec"`
}

func DefaultConfig() Config {
	return Config{
		BaseUrl:        poeforum.DefaultBaseUrl,
		Output:         "builds.txt",
		PagesPerClass:  1,
		DelayMeanSec:   1,
		Classes:        poeforum.ClassNames(),
		OutDir:         "corpus",
		RequestsPerSec: 1,
	}
}

// LoadConfig reads `path` over DefaultConfig, a missing file is fine.
func LoadConfig(path string) (Config, error) {
	return configutil.ReadConfigOr(path, DefaultConfig())
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec * float64(time.Second))
}

func (c Config) DelayMean() time.Duration {
	return time.Duration(c.DelayMeanSec * float64(time.Second))
}
