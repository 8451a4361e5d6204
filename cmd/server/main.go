package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/pixelmux/pixelmux/config"
	"github.com/pixelmux/pixelmux/server/mcp"

	"github.com/go-chi/chi/v5"
)

func main() {
	addrFlag := flag.String("addr", "", "serve MCP over streamable HTTP on this address instead of stdio")

	flag.Parse()

	// stdout carries the stdio MCP framing, logs go to stderr
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := config.FromEnv()

	server, err := mcp.New(cfg)

	if err != nil {
		slog.Error("unable to start server", "error", err)
		os.Exit(1)
	}

	if *addrFlag != "" {
		r := chi.NewRouter()

		server.Attach(r)

		slog.Info("listening", "addr", *addrFlag)

		if err := http.ListenAndServe(*addrFlag, r); err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}

		return
	}

	if err := server.Run(context.Background()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
