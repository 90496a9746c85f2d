//go:build windows

package keystore

// Windows 没有 POSIX 权限位；此处不做等价的 ACL 收紧。
func restrictPermissions(string) error {
	return nil
}
