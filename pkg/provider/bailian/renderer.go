package bailian

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/pixelmux/pixelmux/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

var _ provider.Renderer = (*Renderer)(nil)

// Bailian serves both models through DashScope's OpenAI-compatible mode.
const (
	renderModel = "qwen-image"
	editModel   = "qwen-image-edit"
)

type Renderer struct {
	*Config

	images openai.ImageService
}

func NewRenderer(options ...Option) (*Renderer, error) {
	cfg := &Config{}

	for _, option := range options {
		option(cfg)
	}

	return &Renderer{
		Config: cfg,

		images: openai.NewImageService(cfg.Options()...),
	}, nil
}

func (r *Renderer) Capabilities(string) provider.Capability {
	return provider.CapabilityRender | provider.CapabilityEdit
}

func (r *Renderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Image, error) {
	if options == nil {
		options = new(provider.RenderOptions)
	}

	image, err := r.images.Generate(ctx, openai.ImageGenerateParams{
		Model:  renderModel,
		Prompt: input,
	})

	if err != nil {
		return nil, provider.WrapError(provider.ErrorProvider, "bailian", err)
	}

	if len(image.Data) == 0 {
		return nil, provider.NewError(provider.ErrorProvider, "bailian", "no images returned")
	}

	data, err := r.getData(ctx, image.Data[0])

	if err != nil {
		return nil, provider.WrapError(provider.ErrorProvider, "bailian", err)
	}

	return &provider.Image{
		ID: uuid.NewString(),

		Content:     data,
		ContentType: http.DetectContentType(data),

		Model: renderModel,
	}, nil
}

func (r *Renderer) Edit(ctx context.Context, source provider.File, input string, options *provider.RenderOptions) (*provider.Image, error) {
	if options == nil {
		options = new(provider.RenderOptions)
	}

	name := source.Name

	if name == "" {
		name = "image.png"
	}

	contentType := source.ContentType

	if contentType == "" {
		contentType = http.DetectContentType(source.Content)
	}

	image, err := r.images.Edit(ctx, openai.ImageEditParams{
		Model:  editModel,
		Prompt: input,

		Image: openai.ImageEditParamsImageUnion{
			OfFile: openai.File(bytes.NewReader(source.Content), name, contentType),
		},
	})

	if err != nil {
		return nil, provider.WrapError(provider.ErrorProvider, "bailian", err)
	}

	if len(image.Data) == 0 {
		return nil, provider.NewError(provider.ErrorProvider, "bailian", "no images returned")
	}

	data, err := r.getData(ctx, image.Data[0])

	if err != nil {
		return nil, provider.WrapError(provider.ErrorProvider, "bailian", err)
	}

	return &provider.Image{
		ID: uuid.NewString(),

		Content:     data,
		ContentType: http.DetectContentType(data),

		Model: editModel,
	}, nil
}

func (r *Renderer) getData(ctx context.Context, image openai.Image) ([]byte, error) {
	if image.URL != "" {
		if strings.HasPrefix(image.URL, "data:") {
			re := regexp.MustCompile(`data:([a-zA-Z]+\/[a-zA-Z0-9.+_-]+);base64,\s*(.+)`)

			match := re.FindStringSubmatch(image.URL)

			if len(match) != 3 {
				return nil, fmt.Errorf("invalid data url")
			}

			return base64.StdEncoding.DecodeString(match[2])
		}

		req, err := http.NewRequestWithContext(ctx, "GET", image.URL, nil)

		if err != nil {
			return nil, err
		}

		resp, err := r.client.Do(req)

		if err != nil {
			return nil, err
		}

		defer resp.Body.Close()

		return io.ReadAll(resp.Body)
	}

	if image.B64JSON != "" {
		return base64.StdEncoding.DecodeString(image.B64JSON)
	}

	return nil, fmt.Errorf("invalid image data")
}
