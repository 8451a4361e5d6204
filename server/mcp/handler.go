// Package mcp exposes the dispatcher as MCP tools, over stdio or as a
// streamable HTTP handler.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pixelmux/pixelmux/config"
	"github.com/pixelmux/pixelmux/pkg/codec"
	"github.com/pixelmux/pixelmux/pkg/dispatcher"
	"github.com/pixelmux/pixelmux/pkg/provider"

	"github.com/go-chi/chi/v5"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	http.Handler

	client  *dispatcher.Client
	storage *codec.Storage

	server *mcp.Server
}

func New(cfg *config.Config) (*Server, error) {
	client, err := dispatcher.New(cfg)

	if err != nil {
		return nil, err
	}

	serverImpl := &mcp.Implementation{
		Name:    "pixelmux",
		Version: "1.0.0",
	}

	serverOpts := &mcp.ServerOptions{
		KeepAlive: time.Second * 30,
	}

	server := mcp.NewServer(serverImpl, serverOpts)

	handlerOpts := &mcp.StreamableHTTPOptions{
		Stateless: true,
	}

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, handlerOpts)

	s := &Server{
		Handler: handler,

		client:  client,
		storage: cfg.Storage(),

		server: server,
	}

	s.addTools()

	return s, nil
}

// Run serves the tools over stdio until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) Attach(r chi.Router) {
	r.Handle("/mcp", s.Handler)
}

func (s *Server) addTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "generate_image_from_text",
		Description: "Generate an image from a text prompt using the configured provider and return the saved file path",

		InputSchema: &jsonschema.Schema{
			Type: "object",

			Properties: map[string]*jsonschema.Schema{
				"prompt": {
					Type:        "string",
					Description: "Text description of the image to generate",
				},

				"model_type": {
					Type:        "string",
					Description: "Optional sub-model preference, e.g. \"gemini\" or \"imagen\" for the google provider",
				},
			},

			Required: []string{"prompt"},
		},
	}, s.handleGenerate)

	s.server.AddTool(&mcp.Tool{
		Name:        "transform_image_from_encoded",
		Description: "Transform a base64-encoded image according to a text prompt and return the saved file path",

		InputSchema: &jsonschema.Schema{
			Type: "object",

			Properties: map[string]*jsonschema.Schema{
				"encoded_image": {
					Type:        "string",
					Description: "Source image as base64 or data URL",
				},

				"prompt": {
					Type:        "string",
					Description: "Edit instructions",
				},
			},

			Required: []string{"encoded_image", "prompt"},
		},
	}, s.handleTransformEncoded)

	s.server.AddTool(&mcp.Tool{
		Name:        "transform_image_from_file",
		Description: "Transform an image file according to a text prompt and return the saved file path",

		InputSchema: &jsonschema.Schema{
			Type: "object",

			Properties: map[string]*jsonschema.Schema{
				"image_file_path": {
					Type:        "string",
					Description: "Path of the source image file",
				},

				"prompt": {
					Type:        "string",
					Description: "Edit instructions",
				},
			},

			Required: []string{"image_file_path", "prompt"},
		},
	}, s.handleTransformFile)
}

func (s *Server) handleGenerate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(req)

	input, _ := args["prompt"].(string)
	model, _ := args["model_type"].(string)

	if input == "" {
		return errorResult(errors.New("prompt is required")), nil
	}

	result, err := s.client.Generate(ctx, dispatcher.Request{
		Prompt: input,
		Model:  model,
	})

	if err != nil {
		slog.Error("generate_image_from_text failed", "error", err)
		return errorResult(err), nil
	}

	return textResult(result.Path), nil
}

func (s *Server) handleTransformEncoded(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(req)

	input, _ := args["prompt"].(string)
	encoded, _ := args["encoded_image"].(string)

	if input == "" || encoded == "" {
		return errorResult(errors.New("encoded_image and prompt are required")), nil
	}

	data, err := codec.Decode(encoded)

	if err != nil {
		return errorResult(err), nil
	}

	source := &provider.File{
		Content:     data,
		ContentType: http.DetectContentType(data),
	}

	result, err := s.client.Generate(ctx, dispatcher.Request{
		Prompt: input,
		Image:  source,
	})

	if err != nil {
		slog.Error("transform_image_from_encoded failed", "error", err)
		return errorResult(err), nil
	}

	return textResult(result.Path), nil
}

func (s *Server) handleTransformFile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(req)

	input, _ := args["prompt"].(string)
	path, _ := args["image_file_path"].(string)

	if input == "" || path == "" {
		return errorResult(errors.New("image_file_path and prompt are required")), nil
	}

	source, err := s.storage.Load(path)

	if err != nil {
		return errorResult(err), nil
	}

	result, err := s.client.Generate(ctx, dispatcher.Request{
		Prompt: input,
		Image:  source,
	})

	if err != nil {
		slog.Error("transform_image_from_file failed", "error", err)
		return errorResult(err), nil
	}

	return textResult(result.Path), nil
}

func arguments(req *mcp.CallToolRequest) map[string]any {
	var args map[string]any

	json.Unmarshal(req.Params.Arguments, &args)

	return args
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: text,
			},
		},
	}
}

// errorResult turns a dispatcher failure into a tool error instead of a
// protocol fault, keeping the kind-prefixed message visible to the caller.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,

		Content: []mcp.Content{
			&mcp.TextContent{
				Text: err.Error(),
			},
		},
	}
}
