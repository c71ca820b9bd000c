package core

import "context"

// MaxSearchHistory 是检索历史的容量上限：只保留最近 5 次检索，
// 超出时淘汰最旧的一条（最近一次在切片末尾）。
const MaxSearchHistory = 5

// UserProfile 是用户档案：username 为唯一键，PIN 仅做不透明等值比较
// （不是加密凭证），Searches 是滚动检索历史，驱动 Top Picks 个性化。
type UserProfile struct {
	Username string   `json:"username"`
	PIN      string   `json:"pin"`
	Searches []string `json:"searches"`
}

// NewUserProfile 创建一个新的用户档案。
func NewUserProfile(username, pin string) *UserProfile {
	return &UserProfile{
		Username: username,
		PIN:      pin,
		Searches: make([]string, 0, MaxSearchHistory),
	}
}

// AddSearch 追加一次检索记录，保持最近 MaxSearchHistory 条（最近的在末尾）。
func (p *UserProfile) AddSearch(title string) {
	p.Searches = append(p.Searches, title)
	if len(p.Searches) > MaxSearchHistory {
		p.Searches = p.Searches[len(p.Searches)-MaxSearchHistory:]
	}
}

// LastSearch 返回最近一次检索的条目标题；历史为空时 ok 为 false。
func (p *UserProfile) LastSearch() (string, bool) {
	if len(p.Searches) == 0 {
		return "", false
	}
	return p.Searches[len(p.Searches)-1], true
}

// ProfileStore 是用户档案的领域接口（外部协作者的最小契约）。
// 持久化格式（文件、Redis）是实现方的事情；实现方必须保证同一
// username 的 read-modify-write 串行化，避免并发请求丢失更新。
type ProfileStore interface {
	// Get 读取档案；不存在时返回 NOT_FOUND 领域错误
	Get(ctx context.Context, username string) (*UserProfile, error)

	// Put 覆盖写入档案
	Put(ctx context.Context, profile *UserProfile) error
}

// Profile 错误定义
var (
	// ErrProfileNotFound 表示用户档案不存在
	ErrProfileNotFound = NewDomainError(ModuleProfile, ErrorCodeNotFound, "profile: user not found")

	// ErrProfileExists 表示 username 已被注册
	ErrProfileExists = NewDomainError(ModuleProfile, ErrorCodeAlreadyExists, "profile: username already exists")

	// ErrInvalidCredential 表示 PIN 不匹配
	ErrInvalidCredential = NewDomainError(ModuleProfile, ErrorCodeInvalidCredential, "profile: invalid username or PIN")
)
