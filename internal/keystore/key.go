package keystore

import (
	"crypto/rand"
	"encoding/hex"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/zx06/keystore/internal/errors"
)

const (
	// KeySize 是 AES-256 密钥长度。
	KeySize = 32
	// NonceSize 是 GCM 标准 nonce 长度（96 bit）。
	NonceSize = 12
)

// GetOrCreateKey 读取 path 处的密钥；文件不存在或长度不为 KeySize 时生成新密钥并写入。
// 其它读取错误（如权限不足）原样返回，不会覆盖已有文件。
//
// 已存在且长度正确的文件原样返回，不做其它校验：内容损坏的 32 字节文件
// 只会导致已有记录全部无法解密。密钥文件丢失后已有记录不可恢复。
func GetOrCreateKey(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	switch {
	case err == nil && len(b) == KeySize:
		return b, nil
	case err != nil && !stderrors.Is(err, fs.ErrNotExist):
		// 读不到已有密钥时不能覆盖它，否则已有记录全部丢失
		return nil, errors.WrapFS("failed to read key file", path, err)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(errors.CodePlatform, "failed to generate encryption key", nil, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.WrapFS("failed to create key directory", dir, err)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, errors.WrapFS("failed to write key file", path, err)
	}
	if err := restrictPermissions(path); err != nil {
		return nil, errors.WrapFS("failed to restrict key file permissions", path, err)
	}
	return key, nil
}

// Fingerprint 返回密钥的短指纹（BLAKE2b-256 前 8 字节的 hex），用于展示，不泄露密钥本身。
func Fingerprint(key []byte) string {
	sum := blake2b.Sum256(key)
	return hex.EncodeToString(sum[:8])
}
