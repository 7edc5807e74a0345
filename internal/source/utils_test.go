package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanFlags(t *testing.T) {
	tests := []struct {
		in   string
		want FileFlags
	}{
		{"plain\n", 0},
		{"a\rb", 0},
		{"a\r\nb", FileHasCRLF},
		{"\ufefflet x;", FileHasBOM},
		{"\ufeffa\r\n", FileHasBOM | FileHasCRLF},
		{"a\ufeff", 0},
	}
	for _, tt := range tests {
		if got := scanFlags([]byte(tt.in)); got != tt.want {
			t.Errorf("scanFlags(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	for _, d := range []string{baseDir, otherDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}

	target := filepath.Join(otherDir, "file.js")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("RelativePath = %q, want %q", got, want)
	}

	inside := filepath.Join(baseDir, "sub", "main.js")
	got, err = RelativePath(inside, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "sub/main.js" {
		t.Fatalf("RelativePath inside base = %q", got)
	}
}
