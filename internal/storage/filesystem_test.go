package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreWriteAndPublicURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/static/")
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	key, err := store.Write(context.Background(), "suno_track1_1700000000.mp3", []byte("audio"))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if key != "suno_track1_1700000000.mp3" {
		t.Fatalf("unexpected key: %s", key)
	}

	data, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "audio" {
		t.Fatalf("unexpected content: %q", data)
	}

	if got := store.PublicURL(key); got != "http://localhost:8080/static/suno_track1_1700000000.mp3" {
		t.Fatalf("unexpected public url: %s", got)
	}

	back, err := store.Read(context.Background(), key)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(back) != "audio" {
		t.Fatalf("unexpected read content: %q", back)
	}
}

func TestFileStoreReadMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if _, err := store.Read(context.Background(), "absent.mp3"); err == nil {
		t.Fatalf("expected error for missing key")
	}
	if _, err := store.Read(context.Background(), "../escape.mp3"); err == nil {
		t.Fatalf("expected error for traversal key")
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if _, err := store.Write(context.Background(), "../escape.mp3", []byte("x")); err == nil {
		t.Fatalf("expected error for traversal key")
	}
	if _, err := store.Write(context.Background(), "", []byte("x")); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestFileStoreRequiresBasePath(t *testing.T) {
	if _, err := NewFileStore("", ""); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}
