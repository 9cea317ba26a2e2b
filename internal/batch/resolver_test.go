package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolveTemplateLiteral(t *testing.T) {
	text := "! B3LYP def2-SVP Opt\n* xyzfile 0 1 geometry.xyz\n"
	tpl, err := ResolveTemplate(text)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if tpl.Source != SourceLiteral {
		t.Fatalf("expected literal source")
	}
	if tpl.Text != text {
		t.Fatalf("literal text changed: %q", tpl.Text)
	}
}

func TestResolveTemplateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orca6.inp")
	content := "! wB97X-D3 def2-TZVP\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	tpl, err := ResolveTemplate(path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if tpl.Source != SourceFile || tpl.Path != path {
		t.Fatalf("expected file source for %s", path)
	}
	if tpl.Text != content {
		t.Fatalf("got %q want %q", tpl.Text, content)
	}
}

func TestResolveTemplateDirectoryIsLiteral(t *testing.T) {
	dir := t.TempDir()
	tpl, err := ResolveTemplate(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if tpl.Source != SourceLiteral || tpl.Text != dir {
		t.Fatalf("directory path should resolve as literal, got %+v", tpl)
	}
}

func TestResolveTemplateLatin1Fallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.slurm")
	// 0xE9 is not valid UTF-8 on its own; ISO-8859-1 maps it to 'é'.
	if err := os.WriteFile(path, []byte{'c', 0xE9, '\n'}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tpl, err := ResolveTemplate(path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if tpl.Text != "cé\n" {
		t.Fatalf("fallback decode failed: %q", tpl.Text)
	}
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geometrylist.xyz")

	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{"trailing newline", "a\nb\nc\n", []string{"a", "b", "c"}},
		{"no trailing newline", "a\nb\nc", []string{"a", "b", "c"}},
		{"crlf endings", "a\r\nb\r\n", []string{"a", "b"}},
		{"classic mac endings", "a\rb\rc", []string{"a", "b", "c"}},
		{"mixed endings", "a\r\nb\rc\n", []string{"a", "b", "c"}},
		{"blank interior line", "a\n\nb\n", []string{"a", "", "b"}},
		{"empty file", "", nil},
	}
	for _, tc := range cases {
		if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
			t.Fatalf("%s: write: %v", tc.name, err)
		}
		got, err := ReadLines(path)
		if err != nil {
			t.Fatalf("%s: read: %v", tc.name, err)
		}
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	if _, err := ReadLines(filepath.Join(t.TempDir(), "nope.xyz")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
