package xfile

import "errors"

var (
	// ErrEmptyPath 路径为空
	ErrEmptyPath = errors.New("xfile: path is required")

	// ErrInvalidPath 路径格式无效（如目录路径）
	ErrInvalidPath = errors.New("xfile: invalid path")

	// ErrNullByte 路径包含空字节，内核会在空字节处截断路径。
	ErrNullByte = errors.New("xfile: path contains null byte")

	// ErrInvalidPerm 目录权限缺少所有者执行位
	ErrInvalidPerm = errors.New("xfile: invalid directory permission")
)
