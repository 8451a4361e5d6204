package config

import (
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/pixelmux/pixelmux/pkg/codec"
	"github.com/pixelmux/pixelmux/pkg/provider"

	"golang.org/x/time/rate"
)

// Config is read from the environment once at process start and stays
// immutable afterwards, except for the renderer cache which is populated
// lazily under the mutex.
type Config struct {
	Provider string

	GoogleModel string

	OutputDir string

	// HTTPClient replaces the transport of every adapter. Nil means the
	// default client; tests inject a mock here.
	HTTPClient *http.Client

	googleToken  string
	zhipuToken   string
	bailianToken string

	limiter *rate.Limiter

	mu       sync.Mutex
	renderer map[string]provider.Renderer
}

func FromEnv() *Config {
	return &Config{
		Provider: os.Getenv("IMAGE_PROVIDER"),

		GoogleModel: os.Getenv("GOOGLE_MODEL"),

		OutputDir: os.Getenv("OUTPUT_IMAGE_PATH"),

		googleToken:  os.Getenv("GEMINI_API_KEY"),
		zhipuToken:   os.Getenv("ZHIPU_API_KEY"),
		bailianToken: os.Getenv("DASHSCOPE_API_KEY"),

		limiter: createLimiter(os.Getenv("IMAGE_RATE_LIMIT")),
	}
}

func (cfg *Config) Storage() *codec.Storage {
	return codec.NewStorage(cfg.OutputDir)
}

func (cfg *Config) Limiter() *rate.Limiter {
	return cfg.limiter
}

func createLimiter(val string) *rate.Limiter {
	limit, err := strconv.Atoi(val)

	if err != nil || limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(limit), limit)
}
