package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Renderer modes accepted by STYLESENSE_RENDERER.
const (
	RendererAuto     = "auto"
	RendererMarkdown = "markdown"
	RendererPlain    = "plain"
)

// ClientConfig configures the stylesense terminal client.
type ClientConfig struct {
	Endpoint string        `env:"STYLESENSE_ENDPOINT" envDefault:"http://127.0.0.1:8000/analyze"`
	Timeout  time.Duration `env:"STYLESENSE_TIMEOUT" envDefault:"0s"`
	Renderer string        `env:"STYLESENSE_RENDERER" envDefault:"auto"`
	Style    string        `env:"STYLESENSE_STYLE" envDefault:"auto"`
	WordWrap int           `env:"STYLESENSE_WORD_WRAP" envDefault:"80"`
	LogFile  string        `env:"STYLESENSE_LOG_FILE"`
}

func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ClientConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("STYLESENSE_ENDPOINT is empty")
	}
	switch c.Renderer {
	case RendererAuto, RendererMarkdown, RendererPlain:
	default:
		return fmt.Errorf("unsupported renderer {%s}", c.Renderer)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("STYLESENSE_TIMEOUT must not be negative")
	}
	if c.WordWrap < 0 {
		return fmt.Errorf("STYLESENSE_WORD_WRAP must not be negative")
	}
	return nil
}
