// Package xfile 提供命令行输入路径的规范化和输出文件的创建。
//
// [CleanPath] 去掉交互输入中常见的首尾空白和成对引号（例如从资源管理器拖入的路径），
// 拒绝空路径、含空字节的路径和显式目录路径（尾随 "/" 或 "\"）。
// 相对路径中的 ".." 是合法的，本包不做目录隔离。
//
// [Create] 和 [EnsureDir] 在写文件前创建缺失的父目录（默认权限 0750）。
package xfile
