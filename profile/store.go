// Package profile 实现用户档案存储：core.Store 之上的 JSON 编码档案，
// 同一 username 的 read-modify-write 经分片锁串行化，避免并发丢失更新。
package profile

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"sync"

	"github.com/flixanalytics/flixrec/core"
)

// lockShards 是分片锁数量。跨用户操作互不相关，只需按 username 串行。
const lockShards = 64

// keyPrefix 是档案在 KV 后端中的 key 前缀。
const keyPrefix = "profile:"

// Store 是 core.ProfileStore 的实现。
type Store struct {
	kv    core.Store
	locks [lockShards]sync.Mutex
}

// NewStore 在任意 core.Store 后端之上创建档案存储。
func NewStore(kv core.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) lock(username string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(username))
	return &s.locks[h.Sum32()%lockShards]
}

// Get 读取档案；不存在时返回 NOT_FOUND 领域错误。
func (s *Store) Get(ctx context.Context, username string) (*core.UserProfile, error) {
	raw, err := s.kv.Get(ctx, keyPrefix+username)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrProfileNotFound
		}
		return nil, err
	}

	var p core.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, core.NewDomainError(core.ModuleProfile, core.ErrorCodeInvalidInput,
			"profile: corrupt record for "+username)
	}
	return &p, nil
}

// Put 覆盖写入档案。
func (s *Store) Put(ctx context.Context, p *core.UserProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyPrefix+p.Username, raw)
}

// Register 注册新用户；username 已存在时返回 ALREADY_EXISTS 领域错误。
func (s *Store) Register(ctx context.Context, username, pin string) error {
	mu := s.lock(username)
	mu.Lock()
	defer mu.Unlock()

	_, err := s.Get(ctx, username)
	if err == nil {
		return core.ErrProfileExists
	}
	if !core.IsNotFound(err) {
		return err
	}
	return s.Put(ctx, core.NewUserProfile(username, pin))
}

// Login 校验用户凭证并返回档案。PIN 仅做不透明等值比较。
// 用户不存在或 PIN 不匹配统一返回 INVALID_CREDENTIAL，不区分两种情况。
func (s *Store) Login(ctx context.Context, username, pin string) (*core.UserProfile, error) {
	p, err := s.Get(ctx, username)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, core.ErrInvalidCredential
		}
		return nil, err
	}
	if p.PIN != pin {
		return nil, core.ErrInvalidCredential
	}
	return p, nil
}

// AppendSearch 把一次成功的推荐查询追加进用户的检索历史
// （保留最近 5 条）。整个 read-modify-write 持有该用户的分片锁。
func (s *Store) AppendSearch(ctx context.Context, username, title string) error {
	mu := s.lock(username)
	mu.Lock()
	defer mu.Unlock()

	p, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	p.AddSearch(title)
	return s.Put(ctx, p)
}

var _ core.ProfileStore = (*Store)(nil)
