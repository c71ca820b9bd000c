package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/flixanalytics/flixrec/core"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := fs.Set(ctx, "profile:alice", []byte(`{"username":"alice"}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := fs.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// 重新打开：数据必须还在
	fs2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer fs2.Close()

	got, err := fs2.Get(ctx, "profile:alice")
	if err != nil || string(got) != `{"username":"alice"}` {
		t.Errorf("Get after reopen = (%q, %v)", got, err)
	}
}

func TestFileStore_MissingKey(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer fs.Close()

	if _, err := fs.Get(context.Background(), "nope"); !core.IsStoreNotFound(err) {
		t.Errorf("Get missing = %v, want store not found", err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer fs.Close()

	if err := fs.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := fs.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fs.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after delete = %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	// 损坏的文件按空存储处理，不报错
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore on corrupt file: %v", err)
	}
	defer fs.Close()

	if _, err := fs.Get(context.Background(), "any"); !core.IsStoreNotFound(err) {
		t.Errorf("corrupt file should behave as empty store, got %v", err)
	}
}

func TestFileStore_BatchSet(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer fs.Close()

	if err := fs.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatalf("BatchSet: %v", err)
	}
	got, err := fs.BatchGet(ctx, []string{"a", "b"})
	if err != nil || len(got) != 2 {
		t.Errorf("BatchGet = (%v, %v)", got, err)
	}
}
