package xfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirPerm 默认目录权限
const DefaultDirPerm = 0o750

// DefaultFilePerm 输出文件权限
const DefaultFilePerm = 0o644

// EnsureDir 确保文件的父目录存在，使用 [DefaultDirPerm]。
func EnsureDir(filename string) error {
	return EnsureDirWithPerm(filename, DefaultDirPerm)
}

// EnsureDirWithPerm 确保文件的父目录存在。已存在的目录不修改权限。
func EnsureDirWithPerm(filename string, perm os.FileMode) error {
	if filename == "" {
		return ErrEmptyPath
	}
	if perm&0o100 == 0 {
		return fmt.Errorf("directory permission %04o missing owner execute bit: %w", perm, ErrInvalidPerm)
	}
	dir := filepath.Dir(filename)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("xfile: create dir: %w", err)
	}
	return nil
}

// Create 规范化路径、创建父目录后以截断方式打开文件写入。
func Create(filename string) (*os.File, error) {
	cleaned, err := CleanPath(filename)
	if err != nil {
		return nil, err
	}
	if err := EnsureDir(cleaned); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(cleaned, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, DefaultFilePerm)
	if err != nil {
		return nil, fmt.Errorf("xfile: create: %w", err)
	}
	return f, nil
}
