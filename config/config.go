// Package config 提供 flixrec 的配置加载（YAML）与配置驱动的
// Pipeline Node 构建（registry + factory）。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是引擎的顶层配置。
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Store     StoreConfig     `yaml:"store"`
	Recommend RecommendConfig `yaml:"recommend"`
	Feast     FeastConfig     `yaml:"feast"`
}

// CatalogConfig 指定目录快照来源：本地 CSV 或 HTTP 地址（二选一，Path 优先）。
type CatalogConfig struct {
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
}

// StoreConfig 指定用户档案与榜单的存储后端。
type StoreConfig struct {
	// Backend: memory / file / redis
	Backend string `yaml:"backend"`

	// Path 是 file 后端的 JSON 文件路径
	Path string `yaml:"path"`

	// Addr / DB 是 redis 后端的连接参数
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// RecommendConfig 是推荐行为配置。
type RecommendConfig struct {
	// TopN 是检索页每个模型的默认推荐数量
	TopN int `yaml:"top_n"`

	// TopPicks 是个性化 Top Picks 的数量
	TopPicks int `yaml:"top_picks"`

	// KeepExpr 是候选保留条件（CEL 表达式，空则不过滤）
	KeepExpr string `yaml:"keep_expr"`

	// Blacklist 是标题黑名单
	Blacklist []string `yaml:"blacklist"`
}

// FeastConfig 是口味特征服务配置（可选；Endpoint 为空则不启用）。
type FeastConfig struct {
	Endpoint string   `yaml:"endpoint"`
	Project  string   `yaml:"project"`
	Features []string `yaml:"features"`
}

// Default 返回带默认值的配置。
func Default() *Config {
	return &Config{
		Store:     StoreConfig{Backend: "memory"},
		Recommend: RecommendConfig{TopN: 10, TopPicks: 5},
	}
}

// Load 从 YAML 文件加载配置，未出现的字段保持默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Recommend.TopN <= 0 {
		cfg.Recommend.TopN = 10
	}
	if cfg.Recommend.TopPicks <= 0 {
		cfg.Recommend.TopPicks = 5
	}
	return cfg, nil
}
