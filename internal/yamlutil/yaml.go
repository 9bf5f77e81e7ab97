// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Config files and page front matter both decode through here.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData             = errors.New("yamlutil: nil or empty data")
	ErrNilDestination      = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge       = errors.New("yamlutil: input exceeds maximum size")
	ErrUnclosedFrontMatter = errors.New("yamlutil: front matter is missing its closing fence")
)

var frontMatterFence = []byte("---")

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// SplitFrontMatter separates a leading "---" fenced YAML block from the body.
// Content without an opening fence is returned whole as the body with ok=false.
// CRLF line endings are accepted.
func SplitFrontMatter(content []byte) (frontMatter, body []byte, ok bool, err error) {
	first, rest, _ := cutLine(content)
	if !bytes.Equal(first, frontMatterFence) {
		return nil, content, false, nil
	}

	start := len(content) - len(rest)
	for pos := start; pos < len(content); {
		line, next, _ := cutLine(content[pos:])
		end := len(content) - len(next)
		if bytes.Equal(line, frontMatterFence) {
			return content[start:pos], content[end:], true, nil
		}
		pos = end
	}
	return nil, nil, false, ErrUnclosedFrontMatter
}

// UnmarshalFrontMatter decodes the front matter of content into v and returns the body.
// Content without front matter leaves v untouched.
func UnmarshalFrontMatter(content []byte, v any) ([]byte, error) {
	fm, body, ok, err := SplitFrontMatter(content)
	if err != nil {
		return nil, err
	}
	if !ok || len(bytes.TrimSpace(fm)) == 0 {
		return body, nil
	}
	if err := Unmarshal(fm, v); err != nil {
		return nil, err
	}
	return body, nil
}

// cutLine splits off the first line, trimming "\n" or "\r\n".
func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}
