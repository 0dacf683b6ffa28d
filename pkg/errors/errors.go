package errors

import (
	"errors"
	"strings"
)

// ErrDuplicateKey 唯一约束冲突：记录已存在
var ErrDuplicateKey = errors.New("记录已存在，违反唯一约束")

// IsUniqueViolation 判断 GORM / PostgreSQL 返回的错误是否为唯一约束冲突。
// 同时兼容 pgx 的 SQLSTATE 23505 文本与 GORM 的 ErrDuplicatedKey。
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) {
		return true
	}
	if strings.Contains(err.Error(), "SQLSTATE 23505") ||
		strings.Contains(err.Error(), "duplicate key value") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}
	return false
}
