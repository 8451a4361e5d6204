// Package codec moves image bytes between their transport-safe base64 form
// and files on disk.
package codec

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/pixelmux/pixelmux/pkg/provider"
)

var dataURL = regexp.MustCompile(`data:([a-zA-Z]+\/[a-zA-Z0-9.+_-]+);base64,\s*(.+)`)

func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode accepts plain base64 as well as data URLs, since MCP clients send
// both. Surrounding whitespace and line breaks are tolerated.
func Decode(text string) ([]byte, error) {
	value := strings.TrimSpace(text)

	if strings.HasPrefix(value, "data:") {
		match := dataURL.FindStringSubmatch(value)

		if len(match) != 3 {
			return nil, provider.NewError(provider.ErrorIO, "", "invalid data url")
		}

		value = match[2]
	}

	value = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}

		return r
	}, value)

	data, err := base64.StdEncoding.DecodeString(value)

	if err != nil {
		return nil, provider.WrapError(provider.ErrorIO, "", err)
	}

	return data, nil
}
