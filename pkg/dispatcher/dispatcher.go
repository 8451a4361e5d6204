// Package dispatcher routes one generation request to the configured image
// backend: resolve the adapter, check its capability, optimize the prompt,
// make a single remote call, persist the artifact. Retries and deadlines
// belong to the caller.
package dispatcher

import (
	"context"

	"github.com/pixelmux/pixelmux/config"
	"github.com/pixelmux/pixelmux/pkg/codec"
	"github.com/pixelmux/pixelmux/pkg/prompt"
	"github.com/pixelmux/pixelmux/pkg/provider"
)

type Request struct {
	Prompt string

	// Model is an optional sub-model hint for providers with more than one.
	Model string

	// Image is set for transform requests only.
	Image *provider.File

	// Path overrides the configured output location.
	Path string
}

type Result struct {
	Content []byte

	Path string

	Provider string
	Model    string
}

type Client struct {
	config *config.Config

	storage *codec.Storage
}

func New(cfg *config.Config) (*Client, error) {
	return &Client{
		config: cfg,

		storage: cfg.Storage(),
	}, nil
}

func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	renderer, id, err := c.config.Renderer("")

	if err != nil {
		return nil, err
	}

	// Capability is checked per provider/model pair before any remote call.
	capabilities := renderer.Capabilities(req.Model)

	if req.Image != nil && !capabilities.Has(provider.CapabilityEdit) {
		return nil, provider.NewError(provider.ErrorUnsupported, id, "image editing is not supported")
	}

	if req.Image == nil && !capabilities.Has(provider.CapabilityRender) {
		return nil, provider.NewError(provider.ErrorUnsupported, id, "image generation is not supported")
	}

	if limiter := c.config.Limiter(); limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, provider.WrapError(provider.ErrorProvider, id, err)
		}
	}

	options := &provider.RenderOptions{
		Model: req.Model,
	}

	var image *provider.Image

	if req.Image != nil {
		image, err = renderer.Edit(ctx, *req.Image, prompt.OptimizeEdit(req.Prompt, id), options)
	} else {
		image, err = renderer.Render(ctx, prompt.Optimize(req.Prompt, id), options)
	}

	if err != nil {
		return nil, err
	}

	path, err := c.storage.Save(image.Content, image.ContentType, req.Path)

	if err != nil {
		return nil, err
	}

	return &Result{
		Content: image.Content,

		Path: path,

		Provider: id,
		Model:    image.Model,
	}, nil
}
