package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - Feature 错误：EMPTY_CORPUS（某个变体下无可索引条目）
//   - Index 错误：UNKNOWN_ITEM（条目不在该变体的存活集合中）
//   - Profile 错误：NOT_FOUND, ALREADY_EXISTS, INVALID_CREDENTIAL
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "EMPTY_CORPUS"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "feature", "index"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError（穿透 %w 包装），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound           = "NOT_FOUND"           // 资源不存在
	ErrorCodeNotSupported       = "NOT_SUPPORTED"       // 操作不支持
	ErrorCodeUnavailable        = "UNAVAILABLE"         // 服务不可用
	ErrorCodeInvalidInput       = "INVALID_INPUT"       // 输入无效
	ErrorCodeEmptyCorpus        = "EMPTY_CORPUS"        // 变体语料为空，索引无法构建
	ErrorCodeUnknownItem        = "UNKNOWN_ITEM"        // 条目不在索引的存活集合中
	ErrorCodeAlreadyExists      = "ALREADY_EXISTS"      // 资源已存在
	ErrorCodeInvalidCredential  = "INVALID_CREDENTIAL"  // 凭证不匹配
)

// 模块名称常量
const (
	ModuleStore   = "store"   // 存储模块
	ModuleCatalog = "catalog" // 目录模块
	ModuleFeature = "feature" // 特征模块（TF-IDF 构建）
	ModuleIndex   = "index"   // 相似度索引模块
	ModuleProfile = "profile" // 用户档案模块
	ModuleService = "service" // 服务模块
)

// 通用错误检查函数

func hasCode(err error, module, code string) bool {
	domainErr := GetDomainError(err)
	if domainErr == nil {
		return false
	}
	if module != "" && domainErr.Module != module {
		return false
	}
	return domainErr.Code == code
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, "", ErrorCodeNotFound)
}

// IsEmptyCorpus 检查错误是否为 EMPTY_CORPUS（构建期，该变体索引不可用）
func IsEmptyCorpus(err error) bool {
	return hasCode(err, ModuleFeature, ErrorCodeEmptyCorpus)
}

// IsUnknownItem 检查错误是否为 UNKNOWN_ITEM（查询期，可回退另一变体）
func IsUnknownItem(err error) bool {
	return hasCode(err, ModuleIndex, ErrorCodeUnknownItem)
}

// IsAlreadyExists 检查错误是否为 ALREADY_EXISTS
func IsAlreadyExists(err error) bool {
	return hasCode(err, "", ErrorCodeAlreadyExists)
}

// IsInvalidCredential 检查错误是否为 INVALID_CREDENTIAL
func IsInvalidCredential(err error) bool {
	return hasCode(err, ModuleProfile, ErrorCodeInvalidCredential)
}

// NewEmptyCorpusError 构建期错误：variant 变体下没有任何存活条目。
func NewEmptyCorpusError(variant string) *DomainError {
	return NewDomainError(ModuleFeature, ErrorCodeEmptyCorpus,
		"feature: variant "+variant+" has no surviving items")
}

// NewUnknownItemError 查询期错误：title 不在 variant 变体的存活集合中。
func NewUnknownItemError(title, variant string) *DomainError {
	return NewDomainError(ModuleIndex, ErrorCodeUnknownItem,
		"index: item "+title+" not indexed by variant "+variant)
}
