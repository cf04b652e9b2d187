package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out", "leaderboard.csv")

	for _, body := range []string{"first", "second"} {
		err := WriteAtomic(target, 0o644, func(w io.Writer) error {
			_, err := io.WriteString(w, body)
			return err
		})
		if err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}
		got, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != body {
			t.Fatalf("content = %q, want %q", got, body)
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("mode = %v", info.Mode().Perm())
	}
}

func TestWriteAtomicKeepsOriginalOnRenderError(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "leaderboard.html")
	if err := os.WriteFile(target, []byte("original"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	boom := errors.New("render failed")
	err := WriteAtomic(target, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	got, _ := os.ReadFile(target)
	if string(got) != "original" {
		t.Fatalf("original overwritten: %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.html")
	dst := filepath.Join(dir, "snapshots", "dst.html")
	if err := os.WriteFile(src, []byte("<table></table>"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "<table></table>" {
		t.Fatalf("copy = %q, %v", got, err)
	}
}
