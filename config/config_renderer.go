package config

import (
	"strings"

	"github.com/pixelmux/pixelmux/pkg/provider"
	"github.com/pixelmux/pixelmux/pkg/provider/bailian"
	"github.com/pixelmux/pixelmux/pkg/provider/google"
	"github.com/pixelmux/pixelmux/pkg/provider/zhipu"
)

// RegisterRenderer installs an adapter under id, replacing the one the
// configuration would construct.
func (cfg *Config) RegisterRenderer(id string, r provider.Renderer) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	if cfg.renderer == nil {
		cfg.renderer = make(map[string]provider.Renderer)
	}

	cfg.renderer[strings.ToLower(id)] = r
}

// Renderer resolves a provider id to its adapter and canonical id. An empty
// id selects the configured provider. Adapters are constructed on first use
// and cached for the process lifetime.
func (cfg *Config) Renderer(id string) (provider.Renderer, string, error) {
	if id == "" {
		id = cfg.Provider
	}

	id = strings.ToLower(id)

	if id == "" {
		return nil, "", provider.NewError(provider.ErrorConfig, "", "no image provider configured")
	}

	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	if r, ok := cfg.renderer[id]; ok {
		return r, id, nil
	}

	r, err := cfg.createRenderer(id)

	if err != nil {
		return nil, "", err
	}

	if cfg.renderer == nil {
		cfg.renderer = make(map[string]provider.Renderer)
	}

	cfg.renderer[id] = r

	return r, id, nil
}

func (cfg *Config) createRenderer(id string) (provider.Renderer, error) {
	switch id {
	case "google":
		if cfg.googleToken == "" {
			return nil, provider.NewError(provider.ErrorConfig, "google", "GEMINI_API_KEY not set")
		}

		options := []google.Option{
			google.WithToken(cfg.googleToken),
		}

		if cfg.HTTPClient != nil {
			options = append(options, google.WithClient(cfg.HTTPClient))
		}

		return google.NewRenderer(cfg.GoogleModel, options...)

	case "zhipuai":
		if cfg.zhipuToken == "" {
			return nil, provider.NewError(provider.ErrorConfig, "zhipuai", "ZHIPU_API_KEY not set")
		}

		options := []zhipu.Option{
			zhipu.WithToken(cfg.zhipuToken),
		}

		if cfg.HTTPClient != nil {
			options = append(options, zhipu.WithClient(cfg.HTTPClient))
		}

		return zhipu.NewRenderer(options...)

	case "bailian":
		if cfg.bailianToken == "" {
			return nil, provider.NewError(provider.ErrorConfig, "bailian", "DASHSCOPE_API_KEY not set")
		}

		options := []bailian.Option{
			bailian.WithToken(cfg.bailianToken),
		}

		if cfg.HTTPClient != nil {
			options = append(options, bailian.WithClient(cfg.HTTPClient))
		}

		return bailian.NewRenderer(options...)

	default:
		return nil, provider.NewError(provider.ErrorConfig, id, "invalid image provider: "+id)
	}
}
