package dispatcher_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixelmux/pixelmux/config"
	"github.com/pixelmux/pixelmux/pkg/dispatcher"
	"github.com/pixelmux/pixelmux/pkg/provider"

	"github.com/stretchr/testify/require"
)

var pngPayload = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

type fakeRenderer struct {
	caps provider.Capability

	image *provider.Image
	err   error

	renderCalls int
	editCalls   int

	lastInput   string
	lastSource  provider.File
	lastOptions *provider.RenderOptions
}

func (f *fakeRenderer) Capabilities(string) provider.Capability {
	return f.caps
}

func (f *fakeRenderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Image, error) {
	f.renderCalls++
	f.lastInput = input
	f.lastOptions = options

	return f.image, f.err
}

func (f *fakeRenderer) Edit(ctx context.Context, source provider.File, input string, options *provider.RenderOptions) (*provider.Image, error) {
	f.editCalls++
	f.lastInput = input
	f.lastSource = source
	f.lastOptions = options

	return f.image, f.err
}

func newClient(t *testing.T, id string, fake *fakeRenderer) (*dispatcher.Client, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "out", "images")

	t.Setenv("IMAGE_PROVIDER", id)
	t.Setenv("OUTPUT_IMAGE_PATH", dir)

	cfg := config.FromEnv()
	cfg.RegisterRenderer(id, fake)

	client, err := dispatcher.New(cfg)
	require.NoError(t, err)

	return client, dir
}

func TestGenerate(t *testing.T) {
	fake := &fakeRenderer{
		caps: provider.CapabilityRender,

		image: &provider.Image{
			ID: "test",

			Content:     pngPayload,
			ContentType: "image/png",

			Model: "cogview-4",
		},
	}

	client, dir := newClient(t, "zhipuai", fake)

	result, err := client.Generate(context.Background(), dispatcher.Request{
		Prompt: "a red bicycle",
	})

	require.NoError(t, err)
	require.Equal(t, 1, fake.renderCalls)
	require.Zero(t, fake.editCalls)

	require.Equal(t, "zhipuai", result.Provider)
	require.Equal(t, "cogview-4", result.Model)
	require.Equal(t, pngPayload, result.Content)

	require.True(t, strings.HasPrefix(result.Path, dir))
	require.True(t, strings.HasSuffix(result.Path, ".png"))

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	require.Equal(t, pngPayload, data)

	// prompt reaches the adapter optimized, original text preserved
	require.Contains(t, fake.lastInput, "a red bicycle")
	require.Contains(t, fake.lastInput, "专业的AI图像生成助手")
}

func TestGenerateForwardsModelHint(t *testing.T) {
	fake := &fakeRenderer{
		caps: provider.CapabilityRender | provider.CapabilityEdit,

		image: &provider.Image{
			Content:     pngPayload,
			ContentType: "image/png",

			Model: "imagen",
		},
	}

	client, _ := newClient(t, "google", fake)

	result, err := client.Generate(context.Background(), dispatcher.Request{
		Prompt: "a red bicycle",
		Model:  "imagen",
	})

	require.NoError(t, err)
	require.Equal(t, "imagen", fake.lastOptions.Model)
	require.Equal(t, "imagen", result.Model)
}

func TestTransform(t *testing.T) {
	fake := &fakeRenderer{
		caps: provider.CapabilityRender | provider.CapabilityEdit,

		image: &provider.Image{
			Content:     pngPayload,
			ContentType: "image/png",

			Model: "qwen-image-edit",
		},
	}

	client, _ := newClient(t, "bailian", fake)

	source := &provider.File{
		Name: "bicycle.png",

		Content:     pngPayload,
		ContentType: "image/png",
	}

	result, err := client.Generate(context.Background(), dispatcher.Request{
		Prompt: "make it blue",
		Image:  source,
	})

	require.NoError(t, err)
	require.Equal(t, 1, fake.editCalls)
	require.Zero(t, fake.renderCalls)

	require.Equal(t, *source, fake.lastSource)
	require.Contains(t, fake.lastInput, "make it blue")
	require.Contains(t, fake.lastInput, "expert image editing AI")
	require.NotEmpty(t, result.Path)
}

func TestTransformRejectedWithoutEditCapability(t *testing.T) {
	fake := &fakeRenderer{
		caps: provider.CapabilityRender,
	}

	client, dir := newClient(t, "zhipuai", fake)

	_, err := client.Generate(context.Background(), dispatcher.Request{
		Prompt: "make it blue",

		Image: &provider.File{
			Content:     pngPayload,
			ContentType: "image/png",
		},
	})

	require.Error(t, err)
	require.Equal(t, provider.ErrorUnsupported, provider.KindOf(err))

	// rejected before any adapter call, nothing written
	require.Zero(t, fake.renderCalls)
	require.Zero(t, fake.editCalls)
	require.NoDirExists(t, dir)
}

func TestProviderErrorPropagatesUnchanged(t *testing.T) {
	cause := provider.NewError(provider.ErrorProvider, "zhipuai", "no images returned")

	fake := &fakeRenderer{
		caps: provider.CapabilityRender,
		err:  cause,
	}

	client, dir := newClient(t, "zhipuai", fake)

	_, err := client.Generate(context.Background(), dispatcher.Request{
		Prompt: "a red bicycle",
	})

	require.ErrorIs(t, err, cause)
	require.Equal(t, provider.ErrorProvider, provider.KindOf(err))

	// no partial artifact on failure
	require.NoDirExists(t, dir)
}

func TestConfigErrorSurfaces(t *testing.T) {
	t.Setenv("IMAGE_PROVIDER", "midjourney")
	t.Setenv("GEMINI_API_KEY", "")

	client, err := dispatcher.New(config.FromEnv())
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), dispatcher.Request{
		Prompt: "a red bicycle",
	})

	require.Error(t, err)
	require.Equal(t, provider.ErrorConfig, provider.KindOf(err))
}
