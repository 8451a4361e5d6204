package codec

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/pixelmux/pixelmux/pkg/provider"

	"github.com/google/uuid"
)

type Storage struct {
	Dir string
}

func NewStorage(dir string) *Storage {
	if dir == "" {
		dir = "images"
	}

	return &Storage{
		Dir: dir,
	}
}

// Save writes content to path, creating missing directories. An empty path
// resolves to the storage directory with a generated name whose extension
// matches the payload type.
func (s *Storage) Save(content []byte, contentType, path string) (string, error) {
	if path == "" {
		path = filepath.Join(s.Dir, uuid.NewString()+extension(content, contentType))
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", provider.WrapError(provider.ErrorIO, "", err)
		}
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", provider.WrapError(provider.ErrorIO, "", err)
	}

	return path, nil
}

func (s *Storage) Load(path string) (*provider.File, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, provider.WrapError(provider.ErrorIO, "", err)
	}

	return &provider.File{
		Name: filepath.Base(path),

		Content:     data,
		ContentType: http.DetectContentType(data),
	}, nil
}

func extension(content []byte, contentType string) string {
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}

	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
