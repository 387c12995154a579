package lookup

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
)

// Base64Encoder returns the standard base64 encoding of the key.
type Base64Encoder struct{}

// Resolve implements interpolate.Resolver.
func (Base64Encoder) Resolve(_ context.Context, text string) (string, bool, error) {
	return base64.StdEncoding.EncodeToString([]byte(text)), true, nil
}

// Base64Decoder decodes a standard base64 key. Invalid input is an error.
type Base64Decoder struct{}

// Resolve implements interpolate.Resolver.
func (Base64Decoder) Resolve(_ context.Context, encoded string) (string, bool, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false, fmt.Errorf("base64 decode: %w", err)
	}
	return string(b), true, nil
}

// URLEncoder query-escapes the key ("a b" -> "a+b").
type URLEncoder struct{}

// Resolve implements interpolate.Resolver.
func (URLEncoder) Resolve(_ context.Context, text string) (string, bool, error) {
	return url.QueryEscape(text), true, nil
}

// URLDecoder reverses URLEncoder. Malformed escapes are an error.
type URLDecoder struct{}

// Resolve implements interpolate.Resolver.
func (URLDecoder) Resolve(_ context.Context, escaped string) (string, bool, error) {
	s, err := url.QueryUnescape(escaped)
	if err != nil {
		return "", false, fmt.Errorf("url decode: %w", err)
	}
	return s, true, nil
}
