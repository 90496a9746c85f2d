//go:build !windows

package keystore

import "os"

// restrictPermissions 把文件权限收紧为仅属主可读写。
// 每次写入后都要重新设置：部分写入方式会重置权限。
func restrictPermissions(path string) error {
	return os.Chmod(path, 0o600)
}
