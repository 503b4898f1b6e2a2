package config

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	Logger Logger `envPrefix:"LOGGER_"`
	API    API    `envPrefix:"API_"`
	Worker Worker `envPrefix:"WORKER_"`
	Cache  Cache  `envPrefix:"DOCUMENT_CACHE_"`
	Viewer Viewer `envPrefix:"VIEWER_"`

	DownloadDir string `env:"DOWNLOAD_DIR"`
}

type Logger struct {
	Level slog.Level `env:"LEVEL" envDefault:"INFO"`
	File  string     `env:"FILE"`
}

type API struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:9900"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Worker holds the candidate locations probed for the engine's background worker.
type Worker struct {
	Preferred string `env:"PREFERRED" envDefault:"/pdf.worker.min.mjs"`
	Fallback  string `env:"FALLBACK" envDefault:"/pdf.worker.min.js"`
}

type Cache struct {
	Size int           `env:"SIZE" envDefault:"8"`
	TTL  time.Duration `env:"TTL" envDefault:"10m"`
}

type Viewer struct {
	InitialPage  int     `env:"INITIAL_PAGE" envDefault:"1"`
	InitialScale float64 `env:"INITIAL_SCALE" envDefault:"1.0"`
}

func Parse() (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "DOCVIEW_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}

// BaseURL returns the parsed API base URL.
func (c *Config) BaseURL() (*url.URL, error) {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid api base url %q", c.API.BaseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid api base url %q: scheme and host are required", c.API.BaseURL)
	}
	return u, nil
}
