package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func collect(t *testing.T, lines <-chan string, errs <-chan error) []string {
	t.Helper()
	var out []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case l, ok := <-lines:
			if !ok {
				return out
			}
			out = append(out, l)
		case err, ok := <-errs:
			if ok && err != nil {
				t.Fatalf("unexpected ingest error: %v", err)
			}
		case <-timeout:
			t.Fatal("timed out waiting for ingest to finish")
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.log")
	if err := os.WriteFile(path, []byte("one\ntwo\n\nfour\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, errs := Read(context.Background(), Options{Source: SourceFile, Path: path})
	got := collect(t, lines, errs)

	want := []string{"one", "two", "", "four"}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestReadMissingFile(t *testing.T) {
	lines, errs := Read(context.Background(), Options{Source: SourceFile, Path: "/nonexistent/loupe.log"})

	select {
	case err := <-errs:
		if err == nil {
			t.Error("expected an error for missing file")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
	// Line channel must close without output.
	for range lines {
		t.Error("expected no lines from missing file")
	}
}

func TestReadUnknownSource(t *testing.T) {
	_, errs := Read(context.Background(), Options{Source: SourceKind("bogus")})
	select {
	case err := <-errs:
		if err == nil {
			t.Error("expected an error for unknown source kind")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}
