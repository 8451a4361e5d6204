package bailian_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixelmux/pixelmux/pkg/provider"
	"github.com/pixelmux/pixelmux/pkg/provider/bailian"

	"github.com/stretchr/testify/require"
)

var pngPayload = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func imageResponse(t *testing.T, w http.ResponseWriter) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(map[string]any{
		"created": 1,
		"data": []map[string]any{
			{"b64_json": base64.StdEncoding.EncodeToString(pngPayload)},
		},
	})
}

func TestCapabilities(t *testing.T) {
	r, err := bailian.NewRenderer(bailian.WithToken("test"))
	require.NoError(t, err)

	caps := r.Capabilities("")
	require.True(t, caps.Has(provider.CapabilityRender))
	require.True(t, caps.Has(provider.CapabilityEdit))
}

func TestRender(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/generations", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "qwen-image", body["model"])

		imageResponse(t, w)
	}))
	defer server.Close()

	r, err := bailian.NewRenderer(bailian.WithToken("test"), bailian.WithURL(server.URL))
	require.NoError(t, err)

	image, err := r.Render(context.Background(), "a red bicycle", nil)
	require.NoError(t, err)

	require.Equal(t, pngPayload, image.Content)
	require.Equal(t, "qwen-image", image.Model)
}

func TestEdit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/edits", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "qwen-image-edit", r.FormValue("model"))
		require.NotEmpty(t, r.FormValue("prompt"))

		_, _, err := r.FormFile("image")
		require.NoError(t, err)

		imageResponse(t, w)
	}))
	defer server.Close()

	r, err := bailian.NewRenderer(bailian.WithToken("test"), bailian.WithURL(server.URL))
	require.NoError(t, err)

	source := provider.File{
		Name: "bicycle.png",

		Content:     pngPayload,
		ContentType: "image/png",
	}

	image, err := r.Edit(context.Background(), source, "make it blue", nil)
	require.NoError(t, err)

	require.Equal(t, pngPayload, image.Content)
	require.Equal(t, "qwen-image-edit", image.Model)
}

func TestRenderNoImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		json.NewEncoder(w).Encode(map[string]any{
			"created": 1,
			"data":    []map[string]any{},
		})
	}))
	defer server.Close()

	r, err := bailian.NewRenderer(bailian.WithToken("test"), bailian.WithURL(server.URL))
	require.NoError(t, err)

	_, err = r.Render(context.Background(), "a red bicycle", nil)
	require.Error(t, err)
	require.Equal(t, provider.ErrorProvider, provider.KindOf(err))
}
