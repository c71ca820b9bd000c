// Package feast 提供 Feast Feature Store 的客户端，用于拉取用户口味特征
// （如 user_taste:genre_affinity），作为推荐结果的解释标签来源。
//
// 口味特征只做解释与观测，不参与相似度排序：推荐顺序始终由
// TF-IDF 余弦检索决定，特征服务不可用时整条链路照常工作。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Store 的客户端接口（领域层定义，基础设施层实现）。
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时个性化）
	//
	// 参数：
	//   - features: 特征名称列表，例如 ["user_taste:genre_affinity"]
	//   - entityRows: 实体行，例如 [{"username": "alice"}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["user_taste:genre_affinity"]
	Features []string

	// EntityRows 实体行，例如 [{"username": "alice"}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，缺省用客户端配置）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// ClientOption Feast 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	// Endpoint 服务端点
	Endpoint string

	// Project 项目名称
	Project string

	// Timeout 请求超时时间
	Timeout time.Duration

	// Auth 认证配置（可选）
	Auth *AuthConfig
}

// AuthConfig 认证配置
type AuthConfig struct {
	// Type 认证类型："static"（固定 Token）
	Type string

	// Token 认证 Token
	Token string
}

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}
