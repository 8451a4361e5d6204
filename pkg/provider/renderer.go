package provider

import (
	"context"
)

// Renderer is the common contract of all image backends. Capabilities reports
// what the provider supports for a given sub-model hint (empty for the
// provider default) - support may differ between models of one provider.
type Renderer interface {
	Capabilities(model string) Capability

	Render(ctx context.Context, input string, options *RenderOptions) (*Image, error)
	Edit(ctx context.Context, source File, input string, options *RenderOptions) (*Image, error)
}

type RenderOptions struct {
	// Model is a soft sub-model preference. Unknown values fall back to the
	// provider default instead of failing.
	Model string
}

type Image struct {
	ID string

	Content     []byte
	ContentType string

	Model string
}
