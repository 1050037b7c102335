package utils

import (
	"regexp"
	"strings"
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateID 验证实体 ID 格式
// 只允许字母、数字、连字符、下划线,最长 64 字符
func ValidateID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if !idPattern.MatchString(id) {
		return ErrInvalidIDFormat
	}
	if len(id) > 64 {
		return ErrIDTooLong
	}
	return nil
}

// TrimAndValidate 清理并验证字符串
func TrimAndValidate(s string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrEmptyString
	}
	if maxLen > 0 && len(trimmed) > maxLen {
		return "", ErrStringTooLong
	}
	return trimmed, nil
}

// 错误定义
var (
	ErrEmptyID         = &ValidationError{Code: "EMPTY_ID", Message: "id cannot be empty"}
	ErrInvalidIDFormat = &ValidationError{Code: "INVALID_ID_FORMAT", Message: "id contains invalid characters"}
	ErrIDTooLong       = &ValidationError{Code: "ID_TOO_LONG", Message: "id exceeds maximum length"}
	ErrEmptyString     = &ValidationError{Code: "EMPTY_STRING", Message: "string cannot be empty"}
	ErrStringTooLong   = &ValidationError{Code: "STRING_TOO_LONG", Message: "string exceeds maximum length"}
)

// ValidationError 验证错误
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
