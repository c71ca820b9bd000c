package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/flixanalytics/flixrec/core"
)

// FileStore 是单机 JSON 文件实现的 Store：整个键空间序列化为一个
// JSON 对象（key -> base64 bytes，encoding/json 默认编码）。
//
// 适合单实例部署的用户档案持久化。每次写入整体落盘：
// 先写临时文件再 rename，保证崩溃时不会留下半个文件。
// 不支持 TTL（传入的 ttl 被忽略）。
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string][]byte
}

// NewFileStore 打开（或创建）path 处的文件存储并加载现有数据。
// 文件内容损坏时按空存储处理，首次写入会覆盖。
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path: path,
		data: make(map[string][]byte),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	var data map[string][]byte
	if err := json.Unmarshal(raw, &data); err == nil && data != nil {
		fs.data = data
	}
	return fs, nil
}

func (f *FileStore) Name() string { return "file" }

func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.data[key]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return v, nil
}

func (f *FileStore) Set(ctx context.Context, key string, value []byte, _ ...int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value
	return f.flushLocked()
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data, key)
	return f.flushLocked()
}

func (f *FileStore) BatchGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := f.data[k]; ok {
			result[k] = v
		}
	}
	return result, nil
}

func (f *FileStore) BatchSet(ctx context.Context, kvs map[string][]byte, _ ...int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for k, v := range kvs {
		f.data[k] = v
	}
	return f.flushLocked()
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushLocked()
}

// flushLocked 整体落盘：临时文件 + rename。调用方必须持有写锁。
func (f *FileStore) flushLocked() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".flixrec-store-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, f.path)
}

var _ core.Store = (*FileStore)(nil)
