package batch

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TemplateSource tells where resolved template content came from.
type TemplateSource int

const (
	SourceLiteral TemplateSource = iota
	SourceFile
)

// Template is job-input or submission-script content. The -i/-s flag value is
// either a path that happens to exist or literal text; the ambiguity is
// resolved exactly once here, so downstream code never re-checks the
// filesystem.
type Template struct {
	Source TemplateSource
	Path   string // set when Source == SourceFile
	Text   string
}

// ResolveTemplate interprets value as a file path when it names an existing
// regular file, otherwise as literal text. A missing-file-shaped string is
// not an error; it falls through to literal interpretation.
func ResolveTemplate(value string) (Template, error) {
	info, err := os.Stat(value)
	if err != nil || !info.Mode().IsRegular() {
		return Template{Source: SourceLiteral, Text: value}, nil
	}
	b, err := os.ReadFile(value)
	if err != nil {
		return Template{}, fmt.Errorf("read template %s: %w", value, err)
	}
	return Template{Source: SourceFile, Path: value, Text: decodeText(b)}, nil
}

// ReadLines reads the geometry ensemble file and splits it into lines
// without terminators. A trailing newline does not produce an extra empty
// line; an empty file yields no lines.
func ReadLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geometry list: %w", err)
	}
	text := strings.ReplaceAll(decodeText(b), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return nil, nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n"), nil
}

// decodeText decodes file bytes as UTF-8 first, falling back to ISO-8859-1,
// which maps every byte and therefore cannot fail.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(out)
}
