package google

import (
	"context"
	"strings"

	"github.com/pixelmux/pixelmux/pkg/provider"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Renderer = (*Renderer)(nil)

const (
	ModelGemini = "gemini"
	ModelImagen = "imagen"

	geminiImageModel = "gemini-2.0-flash-preview-image-generation"
	imagenModel      = "imagen-4.0-generate-preview-06-06"
)

type Renderer struct {
	*Config
}

// NewRenderer creates a Google adapter. model is the default sub-model
// ("gemini" or "imagen") used when a request carries no model preference.
func NewRenderer(model string, options ...Option) (*Renderer, error) {
	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.model == "" {
		cfg.model = ModelGemini
	}

	return &Renderer{
		Config: cfg,
	}, nil
}

// Capabilities depends on the effective sub-model: Imagen is generation-only,
// Gemini also edits.
func (r *Renderer) Capabilities(model string) provider.Capability {
	if r.resolveModel(model) == ModelImagen {
		return provider.CapabilityRender
	}

	return provider.CapabilityRender | provider.CapabilityEdit
}

// resolveModel maps a sub-model hint to the effective sub-model. The hint is
// a soft preference: anything other than "imagen" uses the Gemini default.
func (r *Renderer) resolveModel(model string) string {
	if model == "" {
		model = r.model
	}

	if strings.EqualFold(model, ModelImagen) {
		return ModelImagen
	}

	return ModelGemini
}

func (r *Renderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Image, error) {
	if options == nil {
		options = new(provider.RenderOptions)
	}

	if r.resolveModel(options.Model) == ModelImagen {
		return r.renderImagen(ctx, input)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(input),
	}

	return r.generate(ctx, parts, ModelGemini)
}

func (r *Renderer) Edit(ctx context.Context, source provider.File, input string, options *provider.RenderOptions) (*provider.Image, error) {
	if options == nil {
		options = new(provider.RenderOptions)
	}

	if r.resolveModel(options.Model) == ModelImagen {
		return nil, provider.NewError(provider.ErrorUnsupported, "google", "imagen does not support image editing")
	}

	parts := []*genai.Part{
		genai.NewPartFromText(input),
		{
			InlineData: &genai.Blob{
				MIMEType: source.ContentType,
				Data:     source.Content,
			},
		},
	}

	return r.generate(ctx, parts, ModelGemini)
}

func (r *Renderer) generate(ctx context.Context, parts []*genai.Part, model string) (*provider.Image, error) {
	client, err := r.newClient(ctx)

	if err != nil {
		return nil, provider.WrapError(provider.ErrorProvider, "google", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := client.Models.GenerateContent(ctx, geminiImageModel, contents, config)

	if err != nil {
		return nil, provider.WrapError(provider.ErrorProvider, "google", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, provider.NewError(provider.ErrorProvider, "google", "no candidates in response")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}

		return &provider.Image{
			ID: uuid.NewString(),

			Content:     part.InlineData.Data,
			ContentType: part.InlineData.MIMEType,

			Model: model,
		}, nil
	}

	return nil, provider.NewError(provider.ErrorProvider, "google", "no image data in response")
}

func (r *Renderer) renderImagen(ctx context.Context, input string) (*provider.Image, error) {
	client, err := r.newClient(ctx)

	if err != nil {
		return nil, provider.WrapError(provider.ErrorProvider, "google", err)
	}

	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	}

	resp, err := client.Models.GenerateImages(ctx, imagenModel, input, config)

	if err != nil {
		return nil, provider.WrapError(provider.ErrorProvider, "google", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, provider.NewError(provider.ErrorProvider, "google", "no images returned")
	}

	image := resp.GeneratedImages[0].Image

	contentType := image.MIMEType

	if contentType == "" {
		contentType = "image/png"
	}

	return &provider.Image{
		ID: uuid.NewString(),

		Content:     image.ImageBytes,
		ContentType: contentType,

		Model: ModelImagen,
	}, nil
}
